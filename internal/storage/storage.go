package storage

import (
	"context"

	"github.com/iudanet/gophvault/internal/models"
)

// CredentialStorage defines interface for credential persistence.
// It works with already encrypted passwords and never decrypts them.
type CredentialStorage interface {
	// AddCredential inserts a new credential and returns its ID
	AddCredential(ctx context.Context, cred *models.Credential) (int64, error)

	// FindCredentials returns all credentials with exactly this website, ordered by ID
	FindCredentials(ctx context.Context, website string) ([]models.Credential, error)

	// FirstCredential returns the matching credential with the lowest ID
	// Returns ErrCredentialNotFound if nothing matches
	FirstCredential(ctx context.Context, website string) (*models.Credential, error)

	// UpdateCredential updates username and password of the credential with cred.ID
	// Returns ErrCredentialNotFound if the ID doesn't exist
	UpdateCredential(ctx context.Context, cred *models.Credential) error

	// DeleteCredentials removes every credential with this website and reports how many
	DeleteCredentials(ctx context.Context, website string) (int64, error)

	// ListCredentials returns every credential ordered by ID
	ListCredentials(ctx context.Context) ([]models.Credential, error)

	// ImportCredentials appends all credentials in a single transaction
	ImportCredentials(ctx context.Context, creds []models.Credential) (int, error)
}

// MasterStorage defines interface for the single master password record.
type MasterStorage interface {
	// GetMasterPassword returns the stored record
	// Returns ErrMasterPasswordNotFound if none is configured
	GetMasterPassword(ctx context.Context) (*models.MasterPassword, error)

	// CreateMasterPassword stores the hash
	// Returns ErrMasterPasswordExists if a record already exists
	CreateMasterPassword(ctx context.Context, hash []byte) error

	// ReplaceMasterPassword stores the hash, overwriting any existing record
	ReplaceMasterPassword(ctx context.Context, hash []byte) error
}

// Storage is a persisted vault backend.
type Storage interface {
	CredentialStorage
	MasterStorage
	Close() error
}
