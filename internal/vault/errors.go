package vault

import (
	"errors"

	"github.com/iudanet/gophvault/internal/storage"
)

var (
	// ErrNotFound aliases the storage sentinel so callers need only this package.
	ErrNotFound = storage.ErrCredentialNotFound
	// ErrAlreadyConfigured is returned when a master password is set twice without replace.
	ErrAlreadyConfigured = storage.ErrMasterPasswordExists
	// ErrNotConfigured is returned by Verify before any master password is set.
	ErrNotConfigured = storage.ErrMasterPasswordNotFound
	// ErrLocked is returned by credential operations outside a verified session.
	ErrLocked = errors.New("vault is locked")
)
