// Package config loads and persists the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Server configuration
	Server ServerConfig `toml:"server"`

	// Database configuration
	Database DatabaseConfig `toml:"database"`

	// Scryfall client configuration
	Scryfall ScryfallConfig `toml:"scryfall"`

	// Builder configuration
	Builder BuilderConfig `toml:"builder"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int `toml:"port"` // API listen port
}

// DatabaseConfig contains SQLite settings.
type DatabaseConfig struct {
	Path        string `toml:"path"`         // Database file (empty = default location)
	AutoMigrate bool   `toml:"auto_migrate"` // Apply pending migrations on startup
}

// ScryfallConfig contains upstream API client settings.
type ScryfallConfig struct {
	BaseURL string `toml:"base_url"` // Override for testing (empty = production API)
}

// BuilderConfig contains deck assembler settings.
type BuilderConfig struct {
	VocabularyFile    string `toml:"vocabulary_file"`    // Keyword tables override (empty = built-in)
	WatchVocabulary   bool   `toml:"watch_vocabulary"`   // Hot-reload the vocabulary file on change
	StapleFetch       bool   `toml:"staple_fetch"`       // Suggest generic staples from Scryfall
	SignatureFetch    bool   `toml:"signature_fetch"`    // Search for strategy signature cards
	FinisherDetection bool   `toml:"finisher_detection"` // Reserve slots for finishers
	DensityCheck      bool   `toml:"density_check"`      // Aristocrats sacrifice-outlet floor
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Database: DatabaseConfig{
			Path:        "",
			AutoMigrate: true,
		},
		Scryfall: ScryfallConfig{
			BaseURL: "",
		},
		Builder: BuilderConfig{
			VocabularyFile:    "",
			WatchVocabulary:   false,
			StapleFetch:       true,
			SignatureFetch:    true,
			FinisherDetection: true,
			DensityCheck:      true,
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// Dir returns the application's configuration directory, creating it if
// needed.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".commander-companion")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return configDir, nil
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DefaultDatabasePath returns the default SQLite database location.
func DefaultDatabasePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "companion.db"), nil
}

// Load loads the configuration from disk. Returns default config if file
// doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from the given path. A missing file
// yields the defaults.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Absent tables keep their defaults.
	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo saves the configuration to the given path.
func (c *Config) SaveTo(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Builder.WatchVocabulary && c.Builder.VocabularyFile == "" {
		return fmt.Errorf("watch_vocabulary requires vocabulary_file to be set")
	}

	return nil
}
