package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidPassword indicates that a candidate does not match the stored hash.
var ErrInvalidPassword = errors.New("invalid master password")

// HashMasterPassword хеширует master password с использованием bcrypt.
// Соль генерируется bcrypt и хранится внутри хеша; cost фиксирован на bcrypt.DefaultCost.
func HashMasterPassword(password string) ([]byte, error) {
	if password == "" {
		return nil, fmt.Errorf("master password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash master password: %w", err)
	}

	return hash, nil
}

// VerifyMasterPassword проверяет, соответствует ли password сохраненному хешу.
// Сравнение выполняется bcrypt за постоянное время.
func VerifyMasterPassword(password string, hash []byte) error {
	if len(hash) == 0 {
		return fmt.Errorf("stored hash cannot be empty")
	}

	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}
		return fmt.Errorf("failed to compare master password: %w", err)
	}

	return nil
}
