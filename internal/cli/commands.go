package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophvault/internal/config"
	"github.com/iudanet/gophvault/internal/iocli"
	"github.com/iudanet/gophvault/internal/passgen"
)

// BuildInfo is printed by the version command.
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// NewRootCmd builds the gophvault command tree. The root command runs the
// interactive shell.
func NewRootCmd(info BuildInfo) *cobra.Command {
	var (
		configFile string
		passwords  Passwords
	)

	root := &cobra.Command{
		Use:   "gophvault",
		Short: "Local encrypted password vault",
		Long: `gophvault keeps website credentials encrypted on the local disk behind a master password.

Master password priority (highest to lowest):
  1. ` + MasterPasswordEnv + ` environment variable
  2. --master-password-file (file path)
  3. --master-password (command line, not recommended)
  4. Interactive prompt (fallback)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags(), configFile)
			if err != nil {
				return err
			}

			logger, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			v, store, err := OpenVault(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					logger.Error("failed to close database", "error", err)
				}
			}()

			shell := New(iocli.NewStream(cmd.InOrStdin(), cmd.OutOrStdout()), v, logger)
			return shell.Run(ctx, passwords)
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: gophvault.yaml in the user config dir or .)")
	config.RegisterFlags(root.PersistentFlags())
	root.Flags().StringVar(&passwords.FromFile, "master-password-file", "", "path to a file containing the master password")
	root.Flags().StringVar(&passwords.FromArgs, "master-password", "", "master password (not recommended, use env var or file)")

	root.AddCommand(
		newGenerateCmd(),
		newStrengthCmd(),
		newVersionCmd(info),
	)

	return root
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})), nil
}

func newGenerateCmd() *cobra.Command {
	var (
		opts                         = passgen.DefaultOptions()
		noSpecial, noDigits, noUpper bool
		showStrength                 bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Special = !noSpecial
			opts.Digits = !noDigits
			opts.Uppercase = !noUpper

			password, err := passgen.Generate(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if showStrength {
				_, err = fmt.Fprintf(out, "%s\t%s\n", password, passgen.ClassifyStrength(password))
				return err
			}
			_, err = fmt.Fprintln(out, password)
			return err
		},
	}

	cmd.Flags().IntVarP(&opts.Length, "length", "l", passgen.DefaultLength, "password length")
	cmd.Flags().BoolVar(&noSpecial, "no-special", false, "exclude special characters")
	cmd.Flags().BoolVar(&noDigits, "no-digits", false, "exclude digits")
	cmd.Flags().BoolVar(&noUpper, "no-uppercase", false, "exclude uppercase letters")
	cmd.Flags().BoolVarP(&showStrength, "strength", "s", false, "print the strength next to the password")

	return cmd
}

func newStrengthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strength [password]",
		Short: "Classify the strength of a password",
		Long:  "Classify a password as Weak, Medium or Strong. Without an argument the password is read from stdin.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				stream := iocli.NewStream(cmd.InOrStdin(), cmd.ErrOrStderr())
				read, err := stream.ReadPassword("Password: ")
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = read
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), passgen.ClassifyStrength(password))
			return err
		},
	}
}

func newVersionCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var b strings.Builder
			b.WriteString("GophVault\n")
			fmt.Fprintf(&b, "Version:    %s\n", info.Version)
			fmt.Fprintf(&b, "Build Date: %s\n", info.BuildDate)
			fmt.Fprintf(&b, "Git Commit: %s\n", info.GitCommit)
			_, err := fmt.Fprint(cmd.OutOrStdout(), b.String())
			return err
		},
	}
}
