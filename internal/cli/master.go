package cli

import (
	"context"
	"errors"

	"github.com/iudanet/gophvault/internal/crypto"
)

func (c *Cli) runChangeMaster(ctx context.Context) error {
	current, err := c.io.ReadPassword("Current master password: ")
	if err != nil {
		return err
	}

	next, err := c.io.ReadPassword("New master password: ")
	if err != nil {
		return err
	}

	confirm, err := c.io.ReadPassword("Confirm new master password: ")
	if err != nil {
		return err
	}
	if next != confirm {
		return ErrPasswordMismatch
	}

	if err := c.vault.Auth().ChangeMasterPassword(ctx, current, next); err != nil {
		if errors.Is(err, crypto.ErrInvalidPassword) {
			c.io.Println("Invalid password.")
			return nil
		}
		return err
	}

	c.io.Println("Master password changed.")

	return nil
}
