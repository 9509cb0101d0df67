package cmd

import (
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/search5/openband/internal/cli"
)

var profileBandKey string

// profileCmd shows the authenticated user's profile.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile",
	Long: `Show the authenticated user's profile.

With --band the profile is scoped to that band, which adds the date
you joined it.

Examples:
  openband profile                     # App-level profile
  openband profile --band BAND_KEY     # Band-scoped profile`,
	RunE: runProfile,
}

func init() {
	profileCmd.Flags().StringVar(&profileBandKey, "band", "", "band key to scope the profile to")
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	client, err := buildClient()
	if err != nil {
		return err
	}

	profile, err := client.Profile(cmd.Context(), profileBandKey)
	if err != nil {
		return err
	}

	t := cli.NewTable(os.Stdout)
	t.AppendHeader(table.Row{"KEY", "VALUE"})
	t.AppendRow(table.Row{"name", profile.Name})
	t.AppendRow(table.Row{"user_key", profile.UserKey})
	t.AppendRow(table.Row{"is_app_member", strconv.FormatBool(profile.IsAppMember)})
	t.AppendRow(table.Row{"message_allowed", strconv.FormatBool(profile.MessageAllowed)})
	if profileBandKey != "" {
		t.AppendRow(table.Row{"member_joined_at", cli.FormatTime(profile.MemberJoinedAt)})
	}
	t.Render()
	return nil
}
