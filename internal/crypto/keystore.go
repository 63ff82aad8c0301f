package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrKeyLoad indicates that the key file exists but cannot be used.
var ErrKeyLoad = errors.New("failed to load encryption key")

// KeyStore owns the symmetric key used to seal credential passwords.
// It is constructed once per process and passed explicitly to the vault.
type KeyStore struct {
	key []byte
}

// NewKeyStore creates a KeyStore from existing key material.
func NewKeyStore(key []byte) (*KeyStore, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeySize, len(key))
	}

	k := make([]byte, KeySize)
	copy(k, key)

	return &KeyStore{key: k}, nil
}

// GenerateKey генерирует криптографически случайный ключ AES-256
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

// EnsureKey loads the key stored at path, creating it on first use.
// A file that exists but cannot be read or has the wrong size yields ErrKeyLoad.
func EnsureKey(path string) (*KeyStore, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if len(data) != KeySize {
			return nil, fmt.Errorf("%w: %s: expected %d bytes, got %d", ErrKeyLoad, path, KeySize, len(data))
		}
		return NewKeyStore(data)
	case errors.Is(err, fs.ErrNotExist):
		return createKey(path)
	default:
		return nil, fmt.Errorf("%w: %s: %w", ErrKeyLoad, path, err)
	}
}

func createKey(path string) (*KeyStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create key directory: %w", err)
		}
	}

	key, err := GenerateKey()
	if err != nil {
		return nil, err
	}

	// O_EXCL: ключ создается ровно один раз
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create key file: %w", err)
	}
	if _, err := f.Write(key); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write key file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close key file: %w", err)
	}

	return NewKeyStore(key)
}

// Encrypt seals plaintext with the store's key.
func (k *KeyStore) Encrypt(plaintext []byte) ([]byte, error) {
	return Encrypt(plaintext, k.key)
}

// Decrypt opens ciphertext produced by Encrypt. Errors wrap ErrDecryption.
func (k *KeyStore) Decrypt(ciphertext []byte) ([]byte, error) {
	return Decrypt(ciphertext, k.key)
}

// EncryptString returns the base64 ciphertext of plaintext.
func (k *KeyStore) EncryptString(plaintext string) (string, error) {
	return EncryptToBase64([]byte(plaintext), k.key)
}

// DecryptString reverses EncryptString.
func (k *KeyStore) DecryptString(ciphertext string) (string, error) {
	plaintext, err := DecryptFromBase64(ciphertext, k.key)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
