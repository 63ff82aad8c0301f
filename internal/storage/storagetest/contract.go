// Package storagetest holds behaviour checks shared by every storage backend.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophvault/internal/models"
	"github.com/iudanet/gophvault/internal/storage"
)

// Factory returns a fresh, empty backend. The backend is closed by the caller's cleanup.
type Factory func(t *testing.T) storage.Storage

// Run exercises s against the storage.Storage contract.
func Run(t *testing.T, newStorage Factory) {
	t.Run("add and find", func(t *testing.T) { testAddFind(t, newStorage(t)) })
	t.Run("find is exact and case sensitive", func(t *testing.T) { testFindExact(t, newStorage(t)) })
	t.Run("first credential", func(t *testing.T) { testFirst(t, newStorage(t)) })
	t.Run("update by id", func(t *testing.T) { testUpdate(t, newStorage(t)) })
	t.Run("delete all matches", func(t *testing.T) { testDelete(t, newStorage(t)) })
	t.Run("list and import", func(t *testing.T) { testListImport(t, newStorage(t)) })
	t.Run("master password", func(t *testing.T) { testMaster(t, newStorage(t)) })
}

func add(t *testing.T, s storage.Storage, website, username, password string) int64 {
	t.Helper()
	id, err := s.AddCredential(context.Background(), &models.Credential{
		Website:  website,
		Username: username,
		Password: password,
	})
	require.NoError(t, err)
	return id
}

func testAddFind(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	id1 := add(t, s, "example.com", "alice", "c1")
	id2 := add(t, s, "example.com", "bob", "c2")
	add(t, s, "other.org", "carol", "c3")
	assert.Greater(t, id2, id1, "ids must auto-increment")

	creds, err := s.FindCredentials(ctx, "example.com")
	require.NoError(t, err)
	require.Len(t, creds, 2)
	assert.Equal(t, models.Credential{ID: id1, Website: "example.com", Username: "alice", Password: "c1"}, creds[0])
	assert.Equal(t, models.Credential{ID: id2, Website: "example.com", Username: "bob", Password: "c2"}, creds[1])

	creds, err = s.FindCredentials(ctx, "missing.net")
	require.NoError(t, err)
	assert.Empty(t, creds)
}

func testFindExact(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	add(t, s, "Example.com", "alice", "c1")
	add(t, s, "example.com.evil", "mallory", "c2")

	creds, err := s.FindCredentials(ctx, "example.com")
	require.NoError(t, err)
	assert.Empty(t, creds)
}

func testFirst(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	_, err := s.FirstCredential(ctx, "example.com")
	require.ErrorIs(t, err, storage.ErrCredentialNotFound)

	first := add(t, s, "example.com", "alice", "c1")
	add(t, s, "example.com", "bob", "c2")

	cred, err := s.FirstCredential(ctx, "example.com")
	require.NoError(t, err)
	assert.Equal(t, first, cred.ID)
	assert.Equal(t, "alice", cred.Username)
}

func testUpdate(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	first := add(t, s, "example.com", "alice", "c1")
	second := add(t, s, "example.com", "bob", "c2")

	err := s.UpdateCredential(ctx, &models.Credential{ID: first, Website: "example.com", Username: "alice2", Password: "n1"})
	require.NoError(t, err)

	creds, err := s.FindCredentials(ctx, "example.com")
	require.NoError(t, err)
	require.Len(t, creds, 2)
	assert.Equal(t, "alice2", creds[0].Username)
	assert.Equal(t, "n1", creds[0].Password)
	assert.Equal(t, second, creds[1].ID)
	assert.Equal(t, "bob", creds[1].Username, "other records with the same website are untouched")
	assert.Equal(t, "c2", creds[1].Password)

	err = s.UpdateCredential(ctx, &models.Credential{ID: second + 100, Username: "x", Password: "y"})
	assert.ErrorIs(t, err, storage.ErrCredentialNotFound)
}

func testDelete(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	add(t, s, "example.com", "alice", "c1")
	add(t, s, "example.com", "bob", "c2")
	keep := add(t, s, "other.org", "carol", "c3")

	n, err := s.DeleteCredentials(ctx, "example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = s.DeleteCredentials(ctx, "example.com")
	require.NoError(t, err)
	assert.Zero(t, n)

	all, err := s.ListCredentials(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep, all[0].ID)
}

func testListImport(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	all, err := s.ListCredentials(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	existing := add(t, s, "example.com", "alice", "c1")

	n, err := s.ImportCredentials(ctx, []models.Credential{
		{Website: "example.com", Username: "alice", Password: "c1"},
		{Website: "b.org", Username: "bob", Password: "c2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err = s.ListCredentials(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3, "imported rows are appended, not deduplicated")
	assert.Equal(t, existing, all[0].ID)
	assert.Equal(t, "example.com", all[1].Website)
	assert.Equal(t, "b.org", all[2].Website)
	assert.Greater(t, all[2].ID, all[1].ID)

	n, err = s.ImportCredentials(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func testMaster(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	_, err := s.GetMasterPassword(ctx)
	require.ErrorIs(t, err, storage.ErrMasterPasswordNotFound)

	require.NoError(t, s.CreateMasterPassword(ctx, []byte("hash-1")))

	mp, err := s.GetMasterPassword(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(models.MasterPasswordID), mp.ID)
	assert.Equal(t, []byte("hash-1"), mp.PasswordHash)

	err = s.CreateMasterPassword(ctx, []byte("hash-2"))
	require.ErrorIs(t, err, storage.ErrMasterPasswordExists)

	mp, err = s.GetMasterPassword(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("hash-1"), mp.PasswordHash, "failed create must not overwrite")

	require.NoError(t, s.ReplaceMasterPassword(ctx, []byte("hash-3")))
	mp, err = s.GetMasterPassword(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("hash-3"), mp.PasswordHash)
}
