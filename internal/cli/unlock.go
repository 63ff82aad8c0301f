package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runSetup(ctx context.Context, passwords Passwords) error {
	password, ok, err := passwords.lookup()
	if err != nil {
		return err
	}

	if !ok {
		password, err = c.getMasterPassword(passwords, "Set master password: ")
		if err != nil {
			return err
		}
		confirm, err := c.io.ReadPassword("Confirm master password: ")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if password != confirm {
			return ErrPasswordMismatch
		}
	}

	if err := c.vault.Auth().SetMasterPassword(ctx, password); err != nil {
		return err
	}

	c.io.Println("Master password set.")
	c.io.Println("IMPORTANT: it cannot be recovered if you lose it.")

	return nil
}

func (c *Cli) runUnlock(ctx context.Context, passwords Passwords) error {
	password, err := c.getMasterPassword(passwords, "Enter master password: ")
	if err != nil {
		return err
	}

	ok, err := c.vault.Auth().Verify(ctx, password)
	if err != nil {
		return err
	}
	if !ok {
		c.io.Println("Invalid password.")
		return ErrAccessDenied
	}

	return nil
}
