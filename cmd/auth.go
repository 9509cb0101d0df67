package cmd

import (
	"github.com/spf13/cobra"
)

// authCmd represents the auth command group.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage BAND authentication",
	Long: `Manage OAuth authentication for the BAND Open API.

The auth command group provides subcommands to login via the browser
consent flow, check the stored token, and clear stored credentials.

Examples:
  openband auth login                  # Run the browser consent flow
  openband auth login --timeout 2m     # Abort if no redirect arrives in time
  openband auth status                 # Show stored credential state
  openband auth logout                 # Clear the stored code and token`,
}

// authLogoutCmd represents the auth logout command.
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear stored credentials",
	Long: `Clear the stored authorization code and access token.

The next API command will require running 'openband auth login' again.`,
	RunE: runAuthLogout,
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
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

	if !coordinator.HasToken() {
		infoPrint("No stored credentials.\n")
		return nil
	}
	if err := coordinator.ClearToken(); err != nil {
		return err
	}
	infoPrint("Stored credentials cleared.\n")
	return nil
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
	rootCmd.AddCommand(authCmd)
}
