package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/search5/openband/internal/band"
	"github.com/search5/openband/internal/oauth"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"generic error", errors.New("boom"), ExitCodeError},
		{"missing token", band.ErrNoAccessToken, ExitCodeAuthRequired},
		{"wrapped missing token", fmt.Errorf("listing bands: %w", band.ErrNoAccessToken), ExitCodeAuthRequired},
		{"auth flow failure", &oauth.AuthorizationError{Status: 401, Message: "token request rejected"}, ExitCodeAuthFailed},
		{"wrapped auth failure", fmt.Errorf("login: %w", &oauth.AuthorizationError{Message: "consent denied"}), ExitCodeAuthFailed},
		{"permission refusal", &band.PermissionError{BandKey: "b1", Capability: band.CapPosting}, ExitCodeError},
		{"configuration error", &oauth.ConfigurationError{Field: "client_id"}, ExitCodeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getExitCode(tt.err))
		})
	}
}

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	expected := []string{"auth", "bands", "profile", "posts", "comments", "albums", "photos", "version"}
	for _, name := range expected {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "missing subcommand %s", name)
	}
}

func TestVersion(t *testing.T) {
	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", GetVersion())
}
