package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

// Login-specific flags
var loginTimeout time.Duration

// authLoginCmd represents the auth login command.
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate to the BAND Open API",
	Long: `Authenticate to the BAND Open API using OAuth.

This command opens your browser on the BAND consent screen, waits for
the redirect on the configured local address, exchanges the granted
code for an access token, and stores both for later commands.

By default the command waits for the redirect indefinitely; pass
--timeout to bound the wait.

Examples:
  openband auth login                  # Wait for consent indefinitely
  openband auth login --timeout 2m     # Give up after two minutes`,
	RunE: runAuthLogin,
}

func init() {
	authLoginCmd.Flags().DurationVar(&loginTimeout, "timeout", 0, "maximum time to wait for the browser redirect (0 waits forever)")
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := newStore()
	if err != nil {
		return err
	}
	coordinator, err := newCoordinator(cfg, store)
	if err != nil {
		return err
	}

	if coordinator.HasToken() {
		infoPrint("Already authenticated. Run 'openband auth logout' first to re-authenticate.\n")
		return nil
	}

	ctx := cmd.Context()
	if loginTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, loginTimeout)
		defer cancel()
	}

	infoPrint("Opening browser for BAND authorization...\n")
	stop := startSpinner("Waiting for authorization...")
	_, err = coordinator.EnsureAccessToken(ctx)
	stop()
	if err != nil {
		return err
	}

	infoPrint("Authenticated successfully.\n")
	return nil
}
