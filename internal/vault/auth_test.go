package vault

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophvault/internal/crypto"
	"github.com/iudanet/gophvault/internal/validation"
)

func TestAuth_StateTransitions(t *testing.T) {
	ctx := context.Background()
	v, _ := newTestVault(t)
	auth := v.Auth()

	assert.Equal(t, StateUnknown, auth.State())

	state, err := auth.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateUnconfigured, state)

	configured, err := auth.IsConfigured(ctx)
	require.NoError(t, err)
	assert.False(t, configured)

	ok, err := auth.Verify(ctx, testMaster)
	require.ErrorIs(t, err, ErrNotConfigured)
	assert.False(t, ok)

	require.NoError(t, auth.SetMasterPassword(ctx, testMaster))
	assert.Equal(t, StateConfiguring, auth.State())
	assert.Empty(t, auth.SessionID())

	configured, err = auth.IsConfigured(ctx)
	require.NoError(t, err)
	assert.True(t, configured)

	ok, err = auth.Verify(ctx, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, StateConfiguring, auth.State(), "failed verify keeps the state")

	ok, err = auth.Verify(ctx, testMaster)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, StateVerified, auth.State())
	assert.NotEmpty(t, auth.SessionID())

	auth.Lock()
	assert.Equal(t, StateLocked, auth.State())
	assert.Empty(t, auth.SessionID())

	state, err = auth.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateLocked, state)
}

func TestAuth_VerifyCandidates(t *testing.T) {
	ctx := context.Background()
	v, _ := newTestVault(t)
	require.NoError(t, v.Auth().SetMasterPassword(ctx, testMaster))

	tests := []struct {
		name      string
		candidate string
		want      bool
	}{
		{name: "exact", candidate: testMaster, want: true},
		{name: "empty", candidate: "", want: false},
		{name: "trailing whitespace", candidate: testMaster + " ", want: false},
		{name: "leading whitespace", candidate: " " + testMaster, want: false},
		{name: "prefix", candidate: testMaster[:5], want: false},
		{name: "upper case", candidate: "CORRECT HORSE BATTERY STAPLE", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := v.Auth().Verify(ctx, tt.candidate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestAuth_SetTwice(t *testing.T) {
	ctx := context.Background()
	v, _ := newTestVault(t)

	require.NoError(t, v.Auth().SetMasterPassword(ctx, testMaster))
	err := v.Auth().SetMasterPassword(ctx, "another")
	require.ErrorIs(t, err, ErrAlreadyConfigured)

	ok, err := v.Auth().Verify(ctx, testMaster)
	require.NoError(t, err)
	assert.True(t, ok, "the first password stays in place")
}

func TestAuth_SetEmpty(t *testing.T) {
	ctx := context.Background()
	v, _ := newTestVault(t)

	err := v.Auth().SetMasterPassword(ctx, "")
	require.ErrorIs(t, err, validation.ErrEmptyPassword)

	configured, err := v.Auth().IsConfigured(ctx)
	require.NoError(t, err)
	assert.False(t, configured)
}

func TestAuth_Replace(t *testing.T) {
	ctx := context.Background()
	v, _ := newUnlockedVault(t)
	auth := v.Auth()

	require.NoError(t, auth.ReplaceMasterPassword(ctx, "replacement"))
	assert.Equal(t, StateConfiguring, auth.State())

	ok, err := auth.Verify(ctx, testMaster)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = auth.Verify(ctx, "replacement")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuth_ReplaceRequiresSession(t *testing.T) {
	ctx := context.Background()
	v, store := newUnlockedVault(t)
	_, err := v.Add(ctx, "example.com", "alice", "pw1")
	require.NoError(t, err)

	// новая сессия над тем же хранилищем
	other := New(newTestKeyStore(t), store, setupTestLogger())
	state, err := other.Auth().Load(ctx)
	require.NoError(t, err)
	require.Equal(t, StateLocked, state)

	err = other.Auth().ReplaceMasterPassword(ctx, "intruder")
	require.ErrorIs(t, err, ErrLocked)
	assert.Equal(t, StateLocked, other.Auth().State())

	ok, err := other.Auth().Verify(ctx, "intruder")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = other.Auth().Verify(ctx, testMaster)
	require.NoError(t, err)
	assert.True(t, ok, "the stored password is untouched")

	// до Load состояние неизвестно
	fresh := New(newTestKeyStore(t), store, setupTestLogger())
	require.ErrorIs(t, fresh.Auth().ReplaceMasterPassword(ctx, "intruder"), ErrLocked)
}

func TestAuth_ReplaceUnconfigured(t *testing.T) {
	ctx := context.Background()
	v, _ := newTestVault(t)

	state, err := v.Auth().Load(ctx)
	require.NoError(t, err)
	require.Equal(t, StateUnconfigured, state)

	require.NoError(t, v.Auth().ReplaceMasterPassword(ctx, testMaster))
	assert.Equal(t, StateConfiguring, v.Auth().State())

	ok, err := v.Auth().Verify(ctx, testMaster)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuth_Change(t *testing.T) {
	ctx := context.Background()
	v, _ := newUnlockedVault(t)
	auth := v.Auth()

	_, err := v.Add(ctx, "example.com", "alice", "pw1")
	require.NoError(t, err)

	err = auth.ChangeMasterPassword(ctx, "wrong", "next-master")
	require.ErrorIs(t, err, crypto.ErrInvalidPassword)

	err = auth.ChangeMasterPassword(ctx, testMaster, "")
	require.ErrorIs(t, err, validation.ErrEmptyPassword)

	sessionID := auth.SessionID()
	require.NoError(t, auth.ChangeMasterPassword(ctx, testMaster, "next-master"))
	assert.Equal(t, StateVerified, auth.State())
	assert.Equal(t, sessionID, auth.SessionID())

	// ключ шифрования не зависит от master password
	entries := collect(t, v, "example.com")
	require.Len(t, entries, 1)
	assert.Equal(t, "pw1", entries[0].Password)

	auth.Lock()
	ok, err := auth.Verify(ctx, testMaster)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = auth.Verify(ctx, "next-master")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "unknown", StateUnknown.String())
	assert.Equal(t, "unconfigured", StateUnconfigured.String())
	assert.Equal(t, "configuring", StateConfiguring.String())
	assert.Equal(t, "locked", StateLocked.String())
	assert.Equal(t, "verified", StateVerified.String())
}
