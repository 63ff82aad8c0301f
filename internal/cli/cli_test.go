package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophvault/internal/crypto"
	"github.com/iudanet/gophvault/internal/iocli"
	"github.com/iudanet/gophvault/internal/storage/sqlite"
	"github.com/iudanet/gophvault/internal/vault"
)

const testMaster = "master-password-1"

// fakeTerminal отдает заранее заданные ответы и собирает вывод
type fakeTerminal struct {
	inputs    []string
	passwords []string
	out       strings.Builder
}

func (f *fakeTerminal) mock() *iocli.IOMock {
	return &iocli.IOMock{
		PrintlnFunc: func(a ...any) {
			fmt.Fprintln(&f.out, a...)
		},
		PrintfFunc: func(format string, a ...any) {
			fmt.Fprintf(&f.out, format, a...)
		},
		ReadInputFunc: func(string) (string, error) {
			if len(f.inputs) == 0 {
				return "", io.EOF
			}
			v := f.inputs[0]
			f.inputs = f.inputs[1:]
			return v, nil
		},
		ReadPasswordFunc: func(string) (string, error) {
			if len(f.passwords) == 0 {
				return "", io.EOF
			}
			v := f.passwords[0]
			f.passwords = f.passwords[1:]
			return v, nil
		},
		WriteFunc: func(p []byte) (int, error) {
			return f.out.Write(p)
		},
	}
}

type testEnv struct {
	cli   *Cli
	term  *fakeTerminal
	mock  *iocli.IOMock
	vault *vault.Vault
	store *sqlite.Storage
}

func newTestEnv(t *testing.T, inputs, passwords []string) *testEnv {
	t.Helper()
	t.Setenv(MasterPasswordEnv, "")

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	keys, err := crypto.NewKeyStore(key)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	v := vault.New(keys, store, logger)

	term := &fakeTerminal{inputs: inputs, passwords: passwords}
	mock := term.mock()

	return &testEnv{
		cli:   New(mock, v, logger),
		term:  term,
		mock:  mock,
		vault: v,
		store: store,
	}
}

// unlock configures and verifies the master password directly.
func (e *testEnv) unlock(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.vault.Auth().SetMasterPassword(ctx, testMaster))
	ok, err := e.vault.Auth().Verify(ctx, testMaster)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCli_Run_SetupAddView(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t,
		[]string{"1", "example.com", "alice", "2", "example.com", "8"},
		[]string{testMaster, testMaster, testMaster, ""},
	)

	require.NoError(t, env.cli.Run(ctx, Passwords{}))

	out := env.term.out.String()
	assert.Contains(t, out, "No master password found, please set one.")
	assert.Contains(t, out, "Master password set.")
	assert.Contains(t, out, "Generated password: ")
	assert.Contains(t, out, "Credentials for example.com saved.")
	assert.Contains(t, out, "Website: example.com, Username: alice, Password: ")

	prompts := env.mock.ReadPasswordCalls()
	require.Len(t, prompts, 4)
	assert.Equal(t, "Set master password: ", prompts[0].Prompt)
	assert.Equal(t, "Confirm master password: ", prompts[1].Prompt)
	assert.Equal(t, "Enter master password: ", prompts[2].Prompt)

	creds, err := env.store.ListCredentials(ctx)
	require.NoError(t, err)
	require.Len(t, creds, 1)
	assert.Equal(t, "alice", creds[0].Username)

	assert.Equal(t, vault.StateLocked, env.vault.Auth().State(), "session is locked on exit")
}

func TestCli_Run_ConfiguredVault(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, []string{"8"}, []string{testMaster})
	require.NoError(t, env.vault.Auth().SetMasterPassword(ctx, testMaster))

	require.NoError(t, env.cli.Run(ctx, Passwords{}))

	assert.NotContains(t, env.term.out.String(), "please set one")
	require.Len(t, env.mock.ReadPasswordCalls(), 1)
}

func TestCli_Run_SetupMismatch(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil, []string{testMaster, "something-else"})

	err := env.cli.Run(ctx, Passwords{})
	require.ErrorIs(t, err, ErrPasswordMismatch)

	configured, err := env.vault.Auth().IsConfigured(ctx)
	require.NoError(t, err)
	assert.False(t, configured)
}

func TestCli_Run_WrongPassword(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, []string{"8"}, []string{"wrong-password"})
	require.NoError(t, env.vault.Auth().SetMasterPassword(ctx, testMaster))

	err := env.cli.Run(ctx, Passwords{})
	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Contains(t, env.term.out.String(), "Invalid password.")
	assert.Empty(t, env.mock.ReadInputCalls(), "menu is not shown")
}

func TestCli_Run_EnvMasterPassword(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, []string{"8"}, nil)
	t.Setenv(MasterPasswordEnv, "env-master")

	require.NoError(t, env.cli.Run(ctx, Passwords{}))
	assert.Empty(t, env.mock.ReadPasswordCalls(), "no prompt when env is set")

	env.vault.Auth().Lock()
	ok, err := env.vault.Auth().Verify(ctx, "env-master")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCli_MenuExitKey(t *testing.T) {
	env := newTestEnv(t, []string{"8", "1"}, nil)
	env.unlock(t)

	require.NoError(t, env.cli.menu(context.Background()))
	assert.Len(t, env.mock.ReadInputCalls(), 1, "8 exits before the next choice is read")
	assert.Contains(t, env.term.out.String(), "7. Restore Credentials\n8. Exit\n")
}

func TestCli_Menu(t *testing.T) {
	tests := []struct {
		name   string
		inputs []string
		want   string
	}{
		{name: "invalid option", inputs: []string{"42", "8"}, want: "Invalid option. Please try again."},
		{name: "zero is not exit", inputs: []string{"0", "8"}, want: "Invalid option. Please try again."},
		{name: "quit alias", inputs: []string{"q"}, want: "10. Change Master Password"},
		{name: "end of input", inputs: nil, want: "8. Exit\n9. Check Password Strength\n"},
		{name: "action error continues", inputs: []string{"1", "bad site", "alice", "8"}, want: "Error: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.inputs, []string{"pw"})
			env.unlock(t)

			require.NoError(t, env.cli.menu(context.Background()))
			assert.Contains(t, env.term.out.String(), tt.want)
		})
	}
}

// TestGetMasterPassword_Priority проверяет приоритет источников
func TestGetMasterPassword_Priority(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "password.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("file_password \n"), 0o600))
	emptyPath := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(emptyPath, []byte("\n"), 0o600))

	tests := []struct {
		name      string
		env       string
		passwords Passwords
		prompt    []string
		want      string
		wantErr   string
	}{
		{name: "env wins", env: "env_password", passwords: Passwords{FromFile: filePath, FromArgs: "cli"}, want: "env_password"},
		{name: "file over args", passwords: Passwords{FromFile: filePath, FromArgs: "cli"}, want: "file_password "},
		{name: "args", passwords: Passwords{FromArgs: "cli_password"}, want: "cli_password"},
		{name: "prompt fallback", prompt: []string{"typed"}, want: "typed"},
		{name: "empty prompt", prompt: []string{""}, wantErr: "password cannot be empty"},
		{name: "missing file", passwords: Passwords{FromFile: filepath.Join(dir, "missing")}, wantErr: "failed to read password file"},
		{name: "empty file", passwords: Passwords{FromFile: emptyPath}, wantErr: "password file is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil, tt.prompt)
			t.Setenv(MasterPasswordEnv, tt.env)

			got, err := env.cli.getMasterPassword(tt.passwords, "Master password: ")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
