package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment overrides
const (
	EnvConfigFile = "DRAGBOARD_CONFIG"
	EnvAPIURL     = "DRAGBOARD_API_URL"
	EnvToken      = "DRAGBOARD_TOKEN"
	EnvThemeFile  = "DRAGBOARD_THEME_FILE"
)

// Defaults
const (
	DefaultBaseURL        = "http://127.0.0.1:8080"
	DefaultTimeout        = 10 * time.Second
	DefaultMaxRetries     = 2
	DefaultRetryBaseDelay = 200 * time.Millisecond
)

// Config represents the application configuration
type Config struct {
	API         APIConfig   `yaml:"api"`
	Sync        SyncConfig  `yaml:"sync"`
	KeyMappings KeyMappings `yaml:"key_mappings"`
	ColorScheme ColorScheme `yaml:"theme"`
}

// APIConfig locates the board API and the credential used to call it
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	// Token is the opaque bearer credential. TokenFile is read when Token is empty.
	Token     string `yaml:"token,omitempty"`
	TokenFile string `yaml:"token_file,omitempty"`
	// Board is opened when no board id is given on the command line
	Board string `yaml:"board,omitempty"`
}

// SyncConfig bounds persistence requests
type SyncConfig struct {
	Timeout        time.Duration `yaml:"timeout"`
	MaxRetries     *int          `yaml:"max_retries"`
	RetryBaseDelay time.Duration `yaml:"retry_base_delay"`
}

// Retries returns the configured retry count
func (s SyncConfig) Retries() int {
	if s.MaxRetries == nil {
		return DefaultMaxRetries
	}
	return *s.MaxRetries
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads config from the user's config directory.
// Returns default config if file doesn't exist.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		config := Default()
		config.applyEnv()
		return config, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads config from path. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	loadThemeFile(&config)
	config.applyEnv()
	config.applyDefaults()

	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// may hold a token
	return os.WriteFile(configPath, data, 0o600)
}

// ResolveToken returns the bearer credential, reading TokenFile if needed.
// An empty result with a nil error means no credential is configured.
func (c *Config) ResolveToken() (string, error) {
	if c.API.Token != "" {
		return c.API.Token, nil
	}
	if c.API.TokenFile == "" {
		return "", nil
	}
	data, err := os.ReadFile(expandHome(c.API.TokenFile))
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if path := os.Getenv(EnvConfigFile); path != "" {
		return path, nil
	}

	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "dragboard", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "dragboard", "config.yaml"), nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// applyEnv lets the environment override file values
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		c.API.Token = v
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.Sync.Timeout <= 0 {
		c.Sync.Timeout = DefaultTimeout
	}
	if c.Sync.MaxRetries == nil || *c.Sync.MaxRetries < 0 {
		retries := DefaultMaxRetries
		c.Sync.MaxRetries = &retries
	}
	if c.Sync.RetryBaseDelay <= 0 {
		c.Sync.RetryBaseDelay = DefaultRetryBaseDelay
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}
