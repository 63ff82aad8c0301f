package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/iudanet/gophvault/internal/passgen"
)

func (c *Cli) runGenerate(_ context.Context) error {
	opts := passgen.DefaultOptions()

	length, err := c.io.ReadInput(fmt.Sprintf("Length (default %d): ", passgen.DefaultLength))
	if err != nil {
		return err
	}
	if length != "" {
		opts.Length, err = strconv.Atoi(length)
		if err != nil {
			return fmt.Errorf("invalid length %q", length)
		}
	}

	if opts.Uppercase, err = c.askYesNo("Include uppercase letters? (Y/n): "); err != nil {
		return err
	}
	if opts.Digits, err = c.askYesNo("Include digits? (Y/n): "); err != nil {
		return err
	}
	if opts.Special, err = c.askYesNo("Include special characters? (Y/n): "); err != nil {
		return err
	}

	password, err := passgen.Generate(opts)
	if err != nil {
		return err
	}

	c.io.Printf("Generated password: %s\n", password)
	c.io.Printf("Password strength: %s\n", passgen.ClassifyStrength(password))

	return nil
}

func (c *Cli) runStrength(_ context.Context) error {
	password, err := c.io.ReadPassword("Password to check: ")
	if err != nil {
		return err
	}

	c.io.Printf("Password strength: %s\n", passgen.ClassifyStrength(password))

	return nil
}

// askYesNo treats a blank answer as yes.
func (c *Cli) askYesNo(prompt string) (bool, error) {
	answer, err := c.io.ReadInput(prompt)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "", "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("unexpected answer %q", answer)
	}
}
