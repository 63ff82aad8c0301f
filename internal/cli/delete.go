package cli

import (
	"context"
)

func (c *Cli) runDelete(ctx context.Context) error {
	website, err := c.io.ReadInput("Enter website to delete credentials: ")
	if err != nil {
		return err
	}

	confirm, err := c.io.ReadInput("Delete all credentials for " + website + "? (yes/no): ")
	if err != nil {
		return err
	}
	if confirm != "yes" && confirm != "y" {
		c.io.Println("Deletion cancelled.")
		return nil
	}

	n, err := c.vault.Delete(ctx, website)
	if err != nil {
		return err
	}

	if n == 0 {
		c.io.Printf("No credentials found for %s.\n", website)
		return nil
	}

	c.io.Printf("Deleted %d credential(s) for %s.\n", n, website)

	return nil
}
