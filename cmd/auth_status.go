package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/search5/openband/internal/cli"
)

// Status-specific flags
var statusVerify bool

// authStatusCmd represents the auth status command.
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	Long: `Show whether an access token is stored.

With --verify the token is additionally checked against the API by
fetching the user profile, which catches tokens revoked server-side.

Examples:
  openband auth status                 # Show stored credential state
  openband auth status --verify        # Also verify the token with the API`,
	RunE: runAuthStatus,
}

func init() {
	authStatusCmd.Flags().BoolVar(&statusVerify, "verify", false, "verify the stored token against the API")
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
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
		fmt.Printf("%s Not authenticated. Run 'openband auth login'.\n", cli.Crossmark())
		return nil
	}

	if !statusVerify {
		fmt.Printf("%s Access token stored.\n", cli.Checkmark())
		return nil
	}

	client := newBandClient(cfg, store)
	profile, err := client.Profile(cmd.Context(), "")
	if err != nil {
		fmt.Printf("%s Access token stored but rejected by the API: %v\n", cli.Crossmark(), err)
		return nil
	}

	fmt.Printf("%s Authenticated as %s\n", cli.Checkmark(), profile.Name)
	return nil
}
