package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"

	"github.com/search5/openband/internal/band"
	"github.com/search5/openband/internal/config"
	"github.com/search5/openband/internal/oauth"
	"github.com/search5/openband/internal/secrets"
	"github.com/search5/openband/pkg/logging"
)

// loadConfig reads the configuration honoring --config-path and initializes
// logging from it.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = config.GetDefaultConfigPathOrPanic()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, err
	}

	logging.Init(logging.ParseLevel(cfg.LogLevel), os.Stderr)

	return cfg, nil
}

// newStore opens the file-backed secret store next to the config directory.
func newStore() (*secrets.FileStore, error) {
	return secrets.NewFileStore("")
}

// newBandClient builds an API client from the configuration and the store.
func newBandClient(cfg config.Config, store secrets.Store) *band.Client {
	opts := []band.Option{}
	if cfg.APIBaseURL != "" {
		opts = append(opts, band.WithAPIBaseURL(cfg.APIBaseURL))
	}
	if cfg.Locale != "" {
		opts = append(opts, band.WithLocale(cfg.Locale))
	}
	return band.NewClient(store, opts...)
}

// buildClient wires config, store, and API client for read/write commands.
func buildClient() (*band.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := newStore()
	if err != nil {
		return nil, err
	}
	return newBandClient(cfg, store), nil
}

// newCoordinator builds the authorization coordinator for auth commands.
func newCoordinator(cfg config.Config, store secrets.Store) (*oauth.Coordinator, error) {
	if err := cfg.ValidateCredentials(); err != nil {
		return nil, err
	}
	return oauth.NewCoordinator(oauth.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURI:  cfg.RedirectURI,
		AuthBaseURL:  cfg.AuthBaseURL,
	}, store), nil
}

// infoPrint writes informational output unless --quiet is set.
func infoPrint(format string, args ...any) {
	if quiet {
		return
	}
	fmt.Printf(format, args...)
}

// startSpinner shows a progress spinner unless --quiet is set. The returned
// stop function is safe to call when no spinner was started.
func startSpinner(suffix string) func() {
	if quiet {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + suffix
	s.Start()
	return s.Stop
}
