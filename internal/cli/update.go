package cli

import (
	"context"
	"errors"

	"github.com/iudanet/gophvault/internal/crypto"
	"github.com/iudanet/gophvault/internal/models"
	"github.com/iudanet/gophvault/internal/vault"
)

func (c *Cli) runUpdate(ctx context.Context) error {
	website, err := c.io.ReadInput("Enter website to update credentials: ")
	if err != nil {
		return err
	}

	current, ok, err := c.firstEntry(ctx, website)
	if err != nil {
		return err
	}
	if !ok {
		c.io.Printf("No credentials found for %s.\n", website)
		return nil
	}

	var req vault.UpdateRequest

	username, err := c.io.ReadInput("New Username (leave blank to keep '" + current.Username + "'): ")
	if err != nil {
		return err
	}
	if username != "" {
		req.Username = &username
	}

	password, err := c.io.ReadPassword("New Password (leave blank to keep current): ")
	if err != nil {
		return err
	}
	if password != "" {
		req.Password = &password
	}

	if err := c.vault.Update(ctx, website, req); err != nil {
		if errors.Is(err, vault.ErrNotFound) {
			c.io.Printf("No credentials found for %s.\n", website)
			return nil
		}
		return err
	}

	c.io.Printf("Credentials for %s updated.\n", website)

	return nil
}

// firstEntry returns the record Update will change. Its password is not needed,
// so a decryption failure still counts as found.
func (c *Cli) firstEntry(ctx context.Context, website string) (models.Entry, bool, error) {
	for entry, err := range c.vault.Find(ctx, website) {
		if err != nil && !errors.Is(err, crypto.ErrDecryption) {
			return models.Entry{}, false, err
		}
		return entry, true, nil
	}
	return models.Entry{}, false, nil
}
