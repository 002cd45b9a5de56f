// Package config loads and persists printerm configuration.
//
// Configuration is resolved in three layers, later layers winning:
//
//  1. Built-in defaults
//  2. The user config file ($XDG_CONFIG_HOME/printerm/config.toml)
//  3. Environment variables prefixed with PRINTERM_
//
// Environment variables map onto config keys with a double underscore
// as the section separator, e.g. PRINTERM_PRINTER__IP_ADDRESS sets
// printer.ip_address.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/printerm/printerm/pkg/paths"
)

// EnvPrefix is the prefix for environment variable overrides
const EnvPrefix = "PRINTERM_"

// Config holds the complete printerm configuration
type Config struct {
	Printer PrinterConfig `koanf:"printer"`
	Scripts ScriptsConfig `koanf:"scripts"`
	Updates UpdatesConfig `koanf:"updates"`
	Web     WebConfig     `koanf:"web"`
	History HistoryConfig `koanf:"history"`
}

// PrinterConfig holds settings for the physical printer
type PrinterConfig struct {
	// IPAddress is the network address of the printer. No default exists,
	// printing fails with a configuration error until it is set.
	IPAddress string `koanf:"ip_address"`

	// CharsPerLine is the printable width of the paper roll
	CharsPerLine int `koanf:"chars_per_line"`

	// EnableSpecialLetters keeps non-ASCII letters as-is when true.
	// When false, text is transliterated to ASCII before encoding.
	EnableSpecialLetters bool `koanf:"enable_special_letters"`

	// Timeout is the connection timeout in seconds
	Timeout int `koanf:"timeout"`
}

// ScriptsConfig holds settings for script context providers
type ScriptsConfig struct {
	// Timeout is the wall-clock budget for a script run, in seconds
	Timeout int `koanf:"timeout"`

	// ShoppingListItems is the standing list the shopping_list
	// template prints
	ShoppingListItems []string `koanf:"shopping_list_items"`
}

// UpdatesConfig holds settings for the update checker
type UpdatesConfig struct {
	CheckForUpdates bool `koanf:"check_for_updates"`
}

// WebConfig holds settings for the web interface
type WebConfig struct {
	Port int `koanf:"port"`
}

// HistoryConfig holds settings for the print history store
type HistoryConfig struct {
	Enabled bool `koanf:"enabled"`
}

// defaults returns the built-in configuration values
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"printer.ip_address":             "",
		"printer.chars_per_line":         32,
		"printer.enable_special_letters": false,
		"printer.timeout":                10,
		"scripts.timeout":                10,
		"updates.check_for_updates":      true,
		"web.port":                       5555,
		"history.enabled":                true,
	}
}

// Load resolves the configuration from defaults, the user config file
// and environment variables.
func Load() (*Config, error) {
	p, err := paths.New()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(p.ConfigFilePath())
}

// LoadFromPath resolves the configuration using the given config file path
func LoadFromPath(configPath string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	// 2. Load user config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	}

	// 3. Load env vars
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		// PRINTERM_PRINTER__IP_ADDRESS -> printer.ip_address
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return &cfg, nil
}
