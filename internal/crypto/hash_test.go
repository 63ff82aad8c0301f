package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashMasterPassword(t *testing.T) {
	hash, err := HashMasterPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	cost, err := bcrypt.Cost(hash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)

	_, err = HashMasterPassword("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "master password cannot be empty")
}

func TestHashMasterPassword_Salted(t *testing.T) {
	hash1, err := HashMasterPassword("same")
	require.NoError(t, err)
	hash2, err := HashMasterPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2, "каждый хеш должен иметь свою соль")
}

func TestVerifyMasterPassword(t *testing.T) {
	const password = "s3cret-Master"
	hash, err := HashMasterPassword(password)
	require.NoError(t, err)

	tests := []struct {
		name      string
		candidate string
		hash      []byte
		wantErr   error
		errMsg    string
	}{
		{name: "exact password", candidate: password, hash: hash},
		{name: "wrong password", candidate: "other", hash: hash, wantErr: ErrInvalidPassword},
		{name: "empty candidate", candidate: "", hash: hash, wantErr: ErrInvalidPassword},
		{name: "trailing whitespace", candidate: password + " ", hash: hash, wantErr: ErrInvalidPassword},
		{name: "different case", candidate: "S3CRET-MASTER", hash: hash, wantErr: ErrInvalidPassword},
		{name: "empty hash", candidate: password, hash: nil, errMsg: "stored hash cannot be empty"},
		{name: "garbage hash", candidate: password, hash: []byte("not-a-bcrypt-hash"), errMsg: "failed to compare"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyMasterPassword(tt.candidate, tt.hash)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				assert.NoError(t, err)
			}
		})
	}
}
