package config

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/printerm/printerm/pkg/errors"
)

// SetValue updates a single key in the user config file, creating the
// file and its parent directories when missing. Keys are dotted paths
// such as "printer.ip_address".
func SetValue(configPath, key string, value interface{}) error {
	return SetValues(configPath, map[string]interface{}{key: value})
}

// SetValues updates several keys in the user config file in one
// read-modify-write cycle.
func SetValues(configPath string, values map[string]interface{}) error {
	raw := make(map[string]interface{})

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return errors.Wrapf(err, errors.ErrConfigParse,
				"failed to parse config file %s", configPath)
		}
	case os.IsNotExist(err):
		// First write, start from an empty document
	default:
		return errors.Wrapf(err, errors.ErrConfigLoad,
			"failed to read config file %s", configPath)
	}

	for key, value := range values {
		setDotted(raw, key, value)
	}

	out, err := toml.Marshal(raw)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "failed to encode config")
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite,
			"failed to create config directory %s", filepath.Dir(configPath))
	}
	if err := os.WriteFile(configPath, out, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite,
			"failed to write config file %s", configPath)
	}

	return nil
}

// setDotted sets a dotted key in a nested map, creating intermediate
// sections as needed.
func setDotted(m map[string]interface{}, key string, value interface{}) {
	parts := strings.Split(key, ".")
	curr := m
	for i := 0; i < len(parts)-1; i++ {
		next, ok := curr[parts[i]].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			curr[parts[i]] = next
		}
		curr = next
	}
	curr[parts[len(parts)-1]] = value
}
