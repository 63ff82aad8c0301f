// Package vault is the credential vault core: the master password gate and the
// encrypted credential store built on a crypto.KeyStore and a storage backend.
package vault

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"github.com/iudanet/gophvault/internal/crypto"
	"github.com/iudanet/gophvault/internal/models"
	"github.com/iudanet/gophvault/internal/storage"
	"github.com/iudanet/gophvault/internal/validation"
)

// Vault performs credential operations. Every operation requires the Auth
// gate to be in StateVerified.
type Vault struct {
	keys   *crypto.KeyStore
	store  storage.CredentialStorage
	auth   *Auth
	logger *slog.Logger
}

// UpdateRequest lists the fields to change; nil fields keep their stored value.
type UpdateRequest struct {
	Username *string
	Password *string
}

// New creates a Vault over store, sealing passwords with keys.
func New(keys *crypto.KeyStore, store storage.Storage, logger *slog.Logger) *Vault {
	return &Vault{
		keys:   keys,
		store:  store,
		auth:   NewAuth(store, logger),
		logger: logger,
	}
}

// Auth returns the master password gate of this vault.
func (v *Vault) Auth() *Auth {
	return v.auth
}

// Add encrypts password and stores a new credential, returning its ID.
// Empty passwords are rejected; callers generate one with passgen first.
func (v *Vault) Add(ctx context.Context, website, username, password string) (int64, error) {
	if err := v.auth.requireVerified(); err != nil {
		return 0, err
	}

	if err := validation.ValidateWebsite(website); err != nil {
		return 0, err
	}
	if err := validation.ValidateUsername(username); err != nil {
		return 0, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return 0, err
	}

	sealed, err := v.keys.EncryptString(password)
	if err != nil {
		return 0, fmt.Errorf("failed to encrypt password: %w", err)
	}

	id, err := v.store.AddCredential(ctx, &models.Credential{
		Website:  website,
		Username: username,
		Password: sealed,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add credential: %w", err)
	}

	v.log().InfoContext(ctx, "credential added", slog.String("website", website), slog.Int64("id", id))

	return id, nil
}

// Find returns the credentials stored for website, decrypting each password as
// it is yielded. Every range over the sequence queries the store again.
// A record that fails to decrypt is yielded with its password empty and an error
// wrapping crypto.ErrDecryption; iteration continues unless the caller stops.
func (v *Vault) Find(ctx context.Context, website string) iter.Seq2[models.Entry, error] {
	return func(yield func(models.Entry, error) bool) {
		if err := v.auth.requireVerified(); err != nil {
			yield(models.Entry{}, err)
			return
		}

		creds, err := v.store.FindCredentials(ctx, website)
		if err != nil {
			yield(models.Entry{}, fmt.Errorf("failed to find credentials: %w", err))
			return
		}

		for _, cred := range creds {
			entry := models.Entry{
				ID:       cred.ID,
				Website:  cred.Website,
				Username: cred.Username,
			}

			password, err := v.keys.DecryptString(cred.Password)
			if err != nil {
				v.log().WarnContext(ctx, "credential cannot be decrypted",
					slog.String("website", cred.Website), slog.Int64("id", cred.ID))
				if !yield(entry, fmt.Errorf("credential %d: %w", cred.ID, err)) {
					return
				}
				continue
			}

			entry.Password = password
			if !yield(entry, nil) {
				return
			}
		}
	}
}

// Update changes the first credential stored for website (lowest ID).
// Other credentials with the same website are left alone.
// Returns ErrNotFound when nothing matches; the store is then unchanged.
func (v *Vault) Update(ctx context.Context, website string, req UpdateRequest) error {
	if err := v.auth.requireVerified(); err != nil {
		return err
	}

	if req.Username != nil {
		if err := validation.ValidateUsername(*req.Username); err != nil {
			return err
		}
	}
	if req.Password != nil {
		if err := validation.ValidatePassword(*req.Password); err != nil {
			return err
		}
	}

	cred, err := v.store.FirstCredential(ctx, website)
	if err != nil {
		return fmt.Errorf("failed to update %q: %w", website, err)
	}

	if req.Username != nil {
		cred.Username = *req.Username
	}
	if req.Password != nil {
		sealed, err := v.keys.EncryptString(*req.Password)
		if err != nil {
			return fmt.Errorf("failed to encrypt password: %w", err)
		}
		cred.Password = sealed
	}

	if err := v.store.UpdateCredential(ctx, cred); err != nil {
		return fmt.Errorf("failed to update %q: %w", website, err)
	}

	v.log().InfoContext(ctx, "credential updated", slog.String("website", website), slog.Int64("id", cred.ID))

	return nil
}

// Delete removes every credential stored for website and reports how many.
// Zero is not an error.
func (v *Vault) Delete(ctx context.Context, website string) (int64, error) {
	if err := v.auth.requireVerified(); err != nil {
		return 0, err
	}

	n, err := v.store.DeleteCredentials(ctx, website)
	if err != nil {
		return 0, fmt.Errorf("failed to delete %q: %w", website, err)
	}

	v.log().InfoContext(ctx, "credentials deleted", slog.String("website", website), slog.Int64("count", n))

	return n, nil
}

// List returns every stored credential with passwords still encrypted.
func (v *Vault) List(ctx context.Context) ([]models.Credential, error) {
	if err := v.auth.requireVerified(); err != nil {
		return nil, err
	}

	creds, err := v.store.ListCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}

	return creds, nil
}

func (v *Vault) log() *slog.Logger {
	return v.logger.With(slog.String("session_id", v.auth.SessionID()))
}
