package cli

import (
	"context"

	"github.com/iudanet/gophvault/internal/passgen"
)

func (c *Cli) runAdd(ctx context.Context) error {
	website, err := c.io.ReadInput("Website: ")
	if err != nil {
		return err
	}

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return err
	}

	password, err := c.io.ReadPassword("Password (leave blank to generate): ")
	if err != nil {
		return err
	}

	if password == "" {
		password, err = passgen.Generate(passgen.DefaultOptions())
		if err != nil {
			return err
		}
		c.io.Printf("Generated password: %s\n", password)
	}
	c.io.Printf("Password strength: %s\n", passgen.ClassifyStrength(password))

	if _, err := c.vault.Add(ctx, website, username, password); err != nil {
		return err
	}

	c.io.Printf("Credentials for %s saved.\n", website)

	return nil
}
