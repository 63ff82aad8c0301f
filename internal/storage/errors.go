package storage

import "errors"

// Common storage errors
var (
	// ErrCredentialNotFound indicates that no credential matched the query
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrMasterPasswordNotFound indicates that the master password is not configured
	ErrMasterPasswordNotFound = errors.New("master password not found")

	// ErrMasterPasswordExists indicates that a master password record already exists
	ErrMasterPasswordExists = errors.New("master password already exists")
)
