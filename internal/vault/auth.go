package vault

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/iudanet/gophvault/internal/crypto"
	"github.com/iudanet/gophvault/internal/storage"
	"github.com/iudanet/gophvault/internal/validation"
)

// State is the position of a session in the master password gate.
//
//	Unconfigured --SetMasterPassword--> Configuring --Verify--> Verified
//	Locked       --Verify-------------> Verified    --Lock----> Locked
type State int

const (
	// StateUnknown means Load has not run yet.
	StateUnknown State = iota
	// StateUnconfigured means no master password exists.
	StateUnconfigured
	// StateConfiguring means a master password was just set and awaits confirmation.
	StateConfiguring
	// StateLocked means a master password exists but was not verified in this session.
	StateLocked
	// StateVerified means the session may use the vault.
	StateVerified
)

func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateConfiguring:
		return "configuring"
	case StateLocked:
		return "locked"
	case StateVerified:
		return "verified"
	default:
		return "unknown"
	}
}

// Auth guards the vault with the single master password.
type Auth struct {
	store     storage.MasterStorage
	logger    *slog.Logger
	sessionID string
	state     State
}

// NewAuth creates an Auth in StateUnknown; call Load before use.
func NewAuth(store storage.MasterStorage, logger *slog.Logger) *Auth {
	return &Auth{
		store:  store,
		logger: logger,
	}
}

// State returns the current gate state.
func (a *Auth) State() State {
	return a.state
}

// SessionID identifies the current verified session; empty when not verified.
func (a *Auth) SessionID() string {
	return a.sessionID
}

// Load reads whether a master password exists and moves to Unconfigured or Locked.
func (a *Auth) Load(ctx context.Context) (State, error) {
	configured, err := a.IsConfigured(ctx)
	if err != nil {
		return a.state, err
	}

	a.sessionID = ""
	if configured {
		a.state = StateLocked
	} else {
		a.state = StateUnconfigured
	}

	return a.state, nil
}

// IsConfigured reports whether a master password record exists.
func (a *Auth) IsConfigured(ctx context.Context) (bool, error) {
	_, err := a.store.GetMasterPassword(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrMasterPasswordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read master password: %w", err)
	}
	return true, nil
}

// SetMasterPassword stores the first master password. It fails with
// ErrAlreadyConfigured when one exists. On success the state is Configuring.
func (a *Auth) SetMasterPassword(ctx context.Context, password string) error {
	hash, err := hashMaster(password)
	if err != nil {
		return err
	}

	if err := a.store.CreateMasterPassword(ctx, hash); err != nil {
		if errors.Is(err, storage.ErrMasterPasswordExists) {
			return err
		}
		return fmt.Errorf("failed to save master password: %w", err)
	}

	a.state = StateConfiguring
	a.sessionID = ""
	a.logger.InfoContext(ctx, "master password configured")

	return nil
}

// ReplaceMasterPassword overwrites the master password and moves to
// Configuring, so the new password has to be confirmed with Verify.
// It is allowed only before any password exists or in a verified session;
// otherwise it returns ErrLocked.
func (a *Auth) ReplaceMasterPassword(ctx context.Context, password string) error {
	if a.state != StateUnconfigured {
		if err := a.requireVerified(); err != nil {
			return err
		}
	}

	hash, err := hashMaster(password)
	if err != nil {
		return err
	}

	if err := a.store.ReplaceMasterPassword(ctx, hash); err != nil {
		return fmt.Errorf("failed to replace master password: %w", err)
	}

	a.state = StateConfiguring
	a.sessionID = ""
	a.logger.InfoContext(ctx, "master password replaced")

	return nil
}

// ChangeMasterPassword replaces the master password after checking current.
// The encryption key is independent of the master password and is not touched.
// The session stays Verified.
func (a *Auth) ChangeMasterPassword(ctx context.Context, current, next string) error {
	if err := a.requireVerified(); err != nil {
		return err
	}

	ok, err := a.Verify(ctx, current)
	if err != nil {
		return err
	}
	if !ok {
		return crypto.ErrInvalidPassword
	}

	hash, err := hashMaster(next)
	if err != nil {
		return err
	}

	if err := a.store.ReplaceMasterPassword(ctx, hash); err != nil {
		return fmt.Errorf("failed to replace master password: %w", err)
	}

	a.logger.InfoContext(ctx, "master password changed", slog.String("session_id", a.sessionID))

	return nil
}

// Verify checks candidate against the stored hash. A match moves the session to
// Verified; a mismatch returns false and leaves the state unchanged.
// Without a stored master password it returns ErrNotConfigured.
func (a *Auth) Verify(ctx context.Context, candidate string) (bool, error) {
	mp, err := a.store.GetMasterPassword(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrMasterPasswordNotFound) {
			a.state = StateUnconfigured
			return false, err
		}
		return false, fmt.Errorf("failed to read master password: %w", err)
	}

	if err := crypto.VerifyMasterPassword(candidate, mp.PasswordHash); err != nil {
		if errors.Is(err, crypto.ErrInvalidPassword) {
			a.logger.WarnContext(ctx, "invalid master password")
			return false, nil
		}
		return false, err
	}

	if a.state != StateVerified {
		a.sessionID = uuid.New().String()
		a.state = StateVerified
		a.logger.InfoContext(ctx, "vault unlocked", slog.String("session_id", a.sessionID))
	}

	return true, nil
}

// Lock ends a verified session.
func (a *Auth) Lock() {
	if a.state == StateVerified {
		a.state = StateLocked
		a.sessionID = ""
	}
}

func (a *Auth) requireVerified() error {
	if a.state != StateVerified {
		return fmt.Errorf("%w: state is %s", ErrLocked, a.state)
	}
	return nil
}

func hashMaster(password string) ([]byte, error) {
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("master password: %w", err)
	}
	return crypto.HashMasterPassword(password)
}
