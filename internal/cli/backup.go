package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runBackup(ctx context.Context) error {
	path, err := c.io.ReadInput("Enter backup file name: ")
	if err != nil {
		return err
	}
	if path == "" {
		return fmt.Errorf("backup file name cannot be empty")
	}

	n, err := c.vault.BackupToFile(ctx, path)
	if err != nil {
		return err
	}

	c.io.Printf("Backup of %d credential(s) saved to %s.\n", n, path)

	return nil
}

func (c *Cli) runRestore(ctx context.Context) error {
	path, err := c.io.ReadInput("Enter backup file name to restore: ")
	if err != nil {
		return err
	}
	if path == "" {
		return fmt.Errorf("backup file name cannot be empty")
	}

	n, err := c.vault.RestoreFromFile(ctx, path)
	if err != nil {
		return err
	}

	c.io.Printf("Backup restored: %d credential(s) added.\n", n)

	return nil
}
