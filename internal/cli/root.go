// Package cli implements the admin-console command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/99minutos/admin-console/internal/pkg/config"
	"github.com/99minutos/admin-console/pkg/logger"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
)

// options are the persistent flags shared by every command.
type options struct {
	apiURL     string
	jsonOutput bool
	cfg        *config.Config
}

// NewRootCommand builds the command tree. Configuration is loaded from the
// environment (and a local .env) before any subcommand runs; --api-url
// overrides API_BASE_URL.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "admin-console",
		Short: "Administer users of the remote user service",
		Long: `admin-console serves the web console for logging in, registering users and
editing the user list, and offers the same operations from the command line.

Configuration is read from environment variables (and a .env file when present).`,
		Version:       fmt.Sprintf("%s (%s)", Version, Commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("api-url") {
				cfg.API.BaseURL = opts.apiURL
			}
			opts.cfg = cfg

			logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  cfg.IsDevelopment(),
				Service: "admin-console",
			})
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "Remote user API base URL (default: $API_BASE_URL)")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output command results in JSON format")

	root.AddCommand(
		newServeCmd(opts),
		newUsersCmd(opts),
		newRegisterCmd(opts),
		newStatesCmd(opts),
		newCitiesCmd(opts),
		newLoginCmd(opts),
	)
	return root
}

// Execute runs the command tree and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
