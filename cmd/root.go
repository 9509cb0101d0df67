package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/search5/openband/internal/band"
	"github.com/search5/openband/internal/oauth"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeAuthRequired indicates authentication is required but not available.
	ExitCodeAuthRequired = 2
	// ExitCodeAuthFailed indicates the OAuth flow failed.
	ExitCodeAuthFailed = 3
)

var (
	configPath string
	quiet      bool
)

// rootCmd represents the base command for the openband application.
var rootCmd = &cobra.Command{
	Use:   "openband",
	Short: "Interact with Naver BAND from the command line",
	Long: `openband talks to the Naver BAND Open API.

It handles the OAuth consent flow in your browser, stores the obtained
token locally, and lets you list bands, read and write posts, manage
comments, and browse photo albums.`,
	// SilenceUsage keeps handled errors from dumping the usage text.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command. Called from the main
// package to inject the build version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "openband version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode maps error types to semantic exit codes for scripting.
func getExitCode(err error) int {
	if errors.Is(err, band.ErrNoAccessToken) {
		return ExitCodeAuthRequired
	}

	var authFailed *oauth.AuthorizationError
	if errors.As(err, &authFailed) {
		return ExitCodeAuthFailed
	}

	return ExitCodeError
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", "", "config directory (default is $HOME/.config/openband)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress informational output")

	rootCmd.AddCommand(newVersionCmd())
}
