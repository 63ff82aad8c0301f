package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	// NonceSize - размер nonce для AES-GCM (12 bytes стандартный размер)
	NonceSize = 12
	// KeySize - размер ключа AES-256
	KeySize = 32
	// tagSize - размер authentication tag GCM
	tagSize = 16
)

// ErrDecryption is returned when ciphertext cannot be opened: the data was
// tampered with, truncated, or sealed under a different key.
var ErrDecryption = errors.New("decryption failed")

// Encrypt шифрует данные с использованием AES-256-GCM
// Формат результата: nonce (12 bytes) + ciphertext + auth_tag (16 bytes)
func Encrypt(plaintext, key []byte) ([]byte, error) {
	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Seal дописывает ciphertext + tag к nonce
	return aesGCM.Seal(nonce, nonce, plaintext, nil), nil
}

// EncryptToBase64 шифрует данные и возвращает результат в Base64.
// Base64 form is what the credential store persists in its password column.
func EncryptToBase64(plaintext, key []byte) (string, error) {
	encrypted, err := Encrypt(plaintext, key)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(encrypted), nil
}

// Decrypt дешифрует данные, зашифрованные с помощью Encrypt
// Ожидает формат: nonce (12 bytes) + ciphertext + auth_tag (16 bytes)
func Decrypt(encrypted, key []byte) ([]byte, error) {
	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(encrypted) < NonceSize+tagSize {
		return nil, fmt.Errorf("%w: encrypted data too short", ErrDecryption)
	}

	nonce, ciphertext := encrypted[:NonceSize], encrypted[NonceSize:]

	// Дешифруем и проверяем authentication tag
	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: authentication failed or corrupted data: %w", ErrDecryption, err)
	}
	if plaintext == nil {
		plaintext = []byte{}
	}

	return plaintext, nil
}

// DecryptFromBase64 дешифрует данные из Base64
func DecryptFromBase64(encryptedBase64 string, key []byte) ([]byte, error) {
	encrypted, err := base64.StdEncoding.DecodeString(encryptedBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode base64: %w", ErrDecryption, err)
	}
	return Decrypt(encrypted, key)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return aesGCM, nil
}
