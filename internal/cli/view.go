package cli

import (
	"context"
	"errors"

	"github.com/iudanet/gophvault/internal/crypto"
)

func (c *Cli) runView(ctx context.Context) error {
	website, err := c.io.ReadInput("Enter website to search for credentials: ")
	if err != nil {
		return err
	}

	found := 0
	for entry, err := range c.vault.Find(ctx, website) {
		if err != nil {
			if !errors.Is(err, crypto.ErrDecryption) {
				return err
			}
			// запись повреждена или зашифрована другим ключом
			c.io.Printf("Website: %s, Username: %s, Password: <cannot decrypt>\n", entry.Website, entry.Username)
			found++
			continue
		}

		c.io.Printf("Website: %s, Username: %s, Password: %s\n", entry.Website, entry.Username, entry.Password)
		found++
	}

	if found == 0 {
		c.io.Printf("No credentials found for %s.\n", website)
	}

	return nil
}
