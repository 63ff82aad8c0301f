// Package cli is the interactive shell and the command tree of gophvault.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/iudanet/gophvault/internal/iocli"
	"github.com/iudanet/gophvault/internal/vault"
)

// MasterPasswordEnv overrides every other master password source.
const MasterPasswordEnv = "GOPHVAULT_MASTER_PASSWORD"

var (
	ErrAccessDenied     = errors.New("access denied")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// Passwords are the non-interactive master password sources given on the command line.
type Passwords struct {
	FromFile string
	FromArgs string
}

type Cli struct {
	io     iocli.IO
	vault  *vault.Vault
	logger *slog.Logger
}

func New(io iocli.IO, v *vault.Vault, logger *slog.Logger) *Cli {
	return &Cli{
		io:     io,
		vault:  v,
		logger: logger,
	}
}

// Run opens the vault session and serves the menu until the user exits.
// An unconfigured vault is set up first. A wrong master password ends the
// session with ErrAccessDenied.
func (c *Cli) Run(ctx context.Context, passwords Passwords) error {
	c.io.Println("Password Manager")

	state, err := c.vault.Auth().Load(ctx)
	if err != nil {
		return err
	}

	if state == vault.StateUnconfigured {
		c.io.Println("No master password found, please set one.")
		if err := c.runSetup(ctx, passwords); err != nil {
			return err
		}
	}

	if err := c.runUnlock(ctx, passwords); err != nil {
		return err
	}
	defer c.vault.Auth().Lock()

	return c.menu(ctx)
}

// getMasterPassword retrieves master password from various sources with priority:
// 1. Environment variable GOPHVAULT_MASTER_PASSWORD
// 2. File specified in passwords.FromFile
// 3. Command-line parameter passwords.FromArgs
// 4. Interactive prompt (fallback)
func (c *Cli) getMasterPassword(passwords Passwords, prompt string) (string, error) {
	if password, ok, err := passwords.lookup(); ok || err != nil {
		return password, err
	}

	password, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	return password, nil
}

// lookup returns the first non-interactive source that is set.
func (p Passwords) lookup() (string, bool, error) {
	if envPassword := os.Getenv(MasterPasswordEnv); envPassword != "" {
		return envPassword, true, nil
	}

	if p.FromFile != "" {
		content, err := os.ReadFile(p.FromFile)
		if err != nil {
			return "", true, fmt.Errorf("failed to read password file: %w", err)
		}
		// Убираем trailing newline
		password := strings.TrimRight(string(content), "\r\n")
		if password == "" {
			return "", true, fmt.Errorf("password file is empty")
		}
		return password, true, nil
	}

	if p.FromArgs != "" {
		return p.FromArgs, true, nil
	}

	return "", false, nil
}
