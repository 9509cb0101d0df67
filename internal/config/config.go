package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/search5/openband/internal/band"
	"github.com/search5/openband/internal/oauth"
	"github.com/search5/openband/pkg/logging"
)

const (
	userConfigDir  = ".config/openband"
	configFileName = "config.yaml"
)

// Environment variables that override the file-based credentials. Useful
// for CI and for keeping secrets out of the config file.
const (
	EnvClientID     = "BAND_CLIENT_ID"
	EnvClientSecret = "BAND_CLIENT_SECRET"
)

// Config is the application configuration, read from
// ~/.config/openband/config.yaml.
type Config struct {
	// ClientID and ClientSecret identify the registered BAND application.
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`

	// RedirectURI is where the consent flow sends the browser back to.
	RedirectURI string `yaml:"redirect_uri,omitempty"`

	// AuthBaseURL and APIBaseURL override the BAND hosts. Used by tests.
	AuthBaseURL string `yaml:"auth_base_url,omitempty"`
	APIBaseURL  string `yaml:"api_base_url,omitempty"`

	// Locale is sent with listing requests (default: en_US).
	Locale string `yaml:"locale,omitempty"`

	// LogLevel controls diagnostic output (debug, info, warn, error).
	LogLevel string `yaml:"log_level,omitempty"`
}

// GetDefaultConfigPathOrPanic returns ~/.config/openband, panicking when the
// home directory cannot be resolved.
func GetDefaultConfigPathOrPanic() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Errorf("could not determine user config directory: %w", err))
	}

	return filepath.Join(homeDir, userConfigDir)
}

// GetDefaultConfig returns the configuration defaults applied before the
// file and the environment are consulted.
func GetDefaultConfig() Config {
	return Config{
		RedirectURI: oauth.DefaultRedirectURI,
		AuthBaseURL: oauth.DefaultAuthBaseURL,
		APIBaseURL:  band.DefaultAPIBaseURL,
		Locale:      band.DefaultLocale,
		LogLevel:    "info",
	}
}

// LoadConfig loads configuration from the specified directory. A missing
// config.yaml is not an error; defaults plus environment overrides apply.
func LoadConfig(configPath string) (Config, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("Config", "No config.yaml found at %s, using defaults", configFilePath)
			return applyEnv(config), nil
		}
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
	}

	logging.Debug("Config", "Loaded configuration from %s", configFilePath)
	return applyEnv(config), nil
}

// applyEnv lets the credential environment variables win over the file.
func applyEnv(config Config) Config {
	if v := os.Getenv(EnvClientID); v != "" {
		config.ClientID = v
	}
	if v := os.Getenv(EnvClientSecret); v != "" {
		config.ClientSecret = v
	}
	return config
}

// ValidateCredentials checks that the fields the authorization flow needs
// are present, naming the first missing one.
func (c Config) ValidateCredentials() error {
	if c.ClientID == "" {
		return &oauth.ConfigurationError{Field: "client_id", Value: ""}
	}
	if c.ClientSecret == "" {
		return &oauth.ConfigurationError{Field: "client_secret", Value: ""}
	}
	return nil
}
