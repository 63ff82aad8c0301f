// Package validation checks user-supplied vault fields before they are stored.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrEmptyField indicates that a required field is empty
	ErrEmptyField = errors.New("field cannot be empty")
	// ErrWhitespace indicates that a field contains whitespace, which the backup format cannot carry
	ErrWhitespace = errors.New("field cannot contain whitespace")
	// ErrEmptyPassword indicates that a password is empty
	ErrEmptyPassword = errors.New("password cannot be empty")
)

// ValidateWebsite проверяет website: непустой, без пробельных символов
func ValidateWebsite(website string) error {
	return validateToken("website", website)
}

// ValidateUsername проверяет username: непустой, без пробельных символов
func ValidateUsername(username string) error {
	return validateToken("username", username)
}

// ValidatePassword checks that a credential or master password is set.
// Passwords may contain any characters, whitespace included.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	return nil
}

func validateToken(field, value string) error {
	if value == "" {
		return fmt.Errorf("%s: %w", field, ErrEmptyField)
	}

	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%s %q: %w", field, value, ErrWhitespace)
	}

	return nil
}
