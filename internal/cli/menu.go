package cli

import (
	"context"
	"errors"
	"io"
)

type menuItem struct {
	key   string
	title string
	run   func(c *Cli, ctx context.Context) error
}

var menuItems = []menuItem{
	{key: "1", title: "Add Credential", run: (*Cli).runAdd},
	{key: "2", title: "View Credential", run: (*Cli).runView},
	{key: "3", title: "Update Credential", run: (*Cli).runUpdate},
	{key: "4", title: "Delete Credential", run: (*Cli).runDelete},
	{key: "5", title: "Generate Password", run: (*Cli).runGenerate},
	{key: "6", title: "Backup Credentials", run: (*Cli).runBackup},
	{key: "7", title: "Restore Credentials", run: (*Cli).runRestore},
	{key: exitKey, title: "Exit"},
	{key: "9", title: "Check Password Strength", run: (*Cli).runStrength},
	{key: "10", title: "Change Master Password", run: (*Cli).runChangeMaster},
}

// Exit остается пунктом 8, новые пункты идут после него
const exitKey = "8"

func (c *Cli) printMenu() {
	c.io.Println()
	c.io.Println("Menu:")
	for _, item := range menuItems {
		c.io.Printf("%s. %s\n", item.key, item.title)
	}
}

// menu loops until Exit or end of input. Action errors are reported and the
// loop goes on.
func (c *Cli) menu(ctx context.Context) error {
	for {
		c.printMenu()

		choice, err := c.io.ReadInput("Choose an option: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if choice == exitKey || choice == "q" {
			return nil
		}

		item, ok := findMenuItem(choice)
		if !ok || item.run == nil {
			c.io.Println("Invalid option. Please try again.")
			continue
		}

		if err := item.run(c, ctx); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			c.logger.DebugContext(ctx, "menu action failed", "action", item.title, "error", err)
			c.io.Printf("Error: %v\n", err)
		}
	}
}

func findMenuItem(key string) (menuItem, bool) {
	for _, item := range menuItems {
		if item.key == key {
			return item, true
		}
	}
	return menuItem{}, false
}
