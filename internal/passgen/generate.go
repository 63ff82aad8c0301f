// Package passgen generates random passwords and classifies password strength.
package passgen

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Character classes, appended to the alphabet in this order.
const (
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits    = "0123456789"
	Special   = "!@#$%^&*()"
)

// DefaultLength is the length used when the caller does not pick one.
const DefaultLength = 12

// ErrInvalidLength is returned for a non-positive length.
var ErrInvalidLength = errors.New("password length must be positive")

// Options selects the alphabet and length of a generated password.
// Lowercase letters are always included.
type Options struct {
	Length    int
	Special   bool
	Digits    bool
	Uppercase bool
}

// DefaultOptions returns 12 characters drawn from every character class.
func DefaultOptions() Options {
	return Options{
		Length:    DefaultLength,
		Special:   true,
		Digits:    true,
		Uppercase: true,
	}
}

// Alphabet returns the characters Generate draws from for opts.
func Alphabet(opts Options) string {
	var b strings.Builder
	b.WriteString(Lowercase)
	if opts.Uppercase {
		b.WriteString(Uppercase)
	}
	if opts.Digits {
		b.WriteString(Digits)
	}
	if opts.Special {
		b.WriteString(Special)
	}
	return b.String()
}

// Generate draws each character independently and uniformly from Alphabet(opts)
// using crypto/rand.
func Generate(opts Options) (string, error) {
	if opts.Length < 1 {
		return "", fmt.Errorf("%w: got %d", ErrInvalidLength, opts.Length)
	}

	alphabet := Alphabet(opts)
	max := big.NewInt(int64(len(alphabet)))

	out := make([]byte, opts.Length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random: %w", err)
		}
		out[i] = alphabet[n.Int64()]
	}

	return string(out), nil
}
