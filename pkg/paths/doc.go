// Package paths provides centralized path handling for printerm.
//
// This package implements the XDG Base Directory specification and provides
// a consistent API for all path operations throughout the printerm codebase.
// It handles:
//
//   - XDG directory structure (config, data, cache, state)
//   - User template and help topic locations
//   - History database and log file locations
//
// # Environment Variables
//
// The package respects the following environment variables:
//
//   - PRINTERM_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/printerm)
//   - PRINTERM_DATA_DIR: Override XDG data directory (default: $XDG_DATA_HOME/printerm)
//   - PRINTERM_CACHE_DIR: Override XDG cache directory (default: $XDG_CACHE_HOME/printerm)
//
// # XDG Base Directory Structure
//
// printerm follows the XDG Base Directory specification:
//
//   - Config: $XDG_CONFIG_HOME/printerm (config.toml, user templates)
//   - Data: $XDG_DATA_HOME/printerm (print history database)
//   - State: $XDG_STATE_HOME/printerm (log files)
//
// # Usage
//
//	p, err := paths.New()
//	if err != nil {
//		return err
//	}
//	configPath := p.ConfigFilePath()
package paths
