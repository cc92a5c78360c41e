// Package config loads and persists the tool's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the clipvault configuration. All values are consumed
// read-only by the core.
type Config struct {
	// MaxHistoryItems caps how many entries listings show. It is a
	// read-time cap only, never a storage cap.
	MaxHistoryItems int `yaml:"max_history_items"`

	// StoragePath overrides the vault directory. Empty selects the
	// default under ~/.config/clipvault/.
	StoragePath string `yaml:"storage_path,omitempty"`

	// EncryptionEnabled controls encryption at rest for entry bodies.
	EncryptionEnabled bool `yaml:"encryption_enabled"`

	// MaxItemSizeMB is the poller's capture size gate in MiB.
	MaxItemSizeMB int `yaml:"max_item_size_mb"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		MaxHistoryItems:   1000,
		EncryptionEnabled: true,
		MaxItemSizeMB:     10,
	}
}

// MaxItemBytes converts the size gate to bytes.
func (c *Config) MaxItemBytes() int {
	return c.MaxItemSizeMB << 20
}

// Manager manages configuration persistence.
type Manager struct {
	configPath string
}

// NewManager creates a manager over the default config path,
// ~/.config/clipvault/config.yaml.
func NewManager() (*Manager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	configPath := filepath.Join(homeDir, ".config", "clipvault", "config.yaml")
	return &Manager{configPath: configPath}, nil
}

// NewManagerWithPath creates a manager over an explicit config file path.
func NewManagerWithPath(path string) *Manager {
	return &Manager{configPath: path}
}

// Path returns the config file path.
func (m *Manager) Path() string {
	return m.configPath
}

// Load reads the configuration. A missing file yields the defaults. Values
// present in the file are unmarshaled over the defaults, so omitted keys
// keep their default values (in particular, encryption stays enabled unless
// explicitly turned off).
func (m *Manager) Load() (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration, creating the parent directory if needed.
func (m *Manager) Save(cfg *Config) error {
	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
