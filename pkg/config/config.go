/*
Package config manages the TOML configuration for the completion engine.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/hawklogic/ccserve/internal/utils"
)

// Config holds the entire config structure.
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Dict   DictConfig   `toml:"dict"`
	Panel  PanelConfig  `toml:"panel"`
}

// EngineConfig tunes matching and debounce behavior.
type EngineConfig struct {
	MaxResults int `toml:"max_results"`
	DebounceMs int `toml:"debounce_ms"`
	MinPrefix  int `toml:"min_prefix"`
	MaxPrefix  int `toml:"max_prefix"`
}

// DictConfig says where dictionary documents come from. When BaseURL is
// set it wins over the local directory.
type DictConfig struct {
	Dir     string `toml:"dir"`
	BaseURL string `toml:"base_url"`
}

// PanelConfig sizes the suggestion panel for viewport clamping.
type PanelConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// DefaultConfig returns a Config with builtin defaults.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			MaxResults: 10,
			DebounceMs: 150,
			MinPrefix:  1,
			MaxPrefix:  60,
		},
		Dict: DictConfig{
			Dir: "dicts/",
		},
		Panel: PanelConfig{
			Width:  280,
			Height: 200,
		},
	}
}

// DefaultPath returns the default location of config.toml, falling back
// to the executable directory when no user config dir is available.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Failed to get home directory: %v", err)
		execDir, execErr := utils.ExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return filepath.Join(execDir, "config.toml"), nil
	}
	return filepath.Join(home, ".config", "ccserve", "config.toml"), nil
}

// Init loads the config at path, creating it with defaults when missing.
// Unreadable or malformed files fall back to builtin defaults; Init never
// fails the caller over a bad config.
func Init(path string) *Config {
	dir := filepath.Dir(path)
	if err := utils.EnsureDir(dir); err != nil {
		log.Warnf("Cannot create config directory %s: %v. Using builtin defaults.", dir, err)
		return DefaultConfig()
	}

	if !utils.FileExists(path) {
		cfg := DefaultConfig()
		if err := Save(cfg, path); err != nil {
			log.Warnf("Cannot write default config to %s: %v. Using builtin defaults.", path, err)
		} else {
			log.Debugf("Created default config at %s", path)
		}
		return cfg
	}

	cfg, err := Load(path)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using builtin defaults.", path, err)
		return DefaultConfig()
	}
	return cfg
}

// Load reads a TOML config file over the defaults, so absent keys keep
// their builtin values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := utils.LoadTOMLFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as TOML.
func Save(cfg *Config, path string) error {
	return utils.SaveTOMLFile(cfg, path)
}
