// Package paths provides centralized path handling for printerm.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/printerm/printerm/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for printerm
	EnvConfigDir = "PRINTERM_CONFIG_DIR"

	// EnvDataDir overrides the XDG data directory for printerm
	EnvDataDir = "PRINTERM_DATA_DIR"

	// EnvCacheDir overrides the XDG cache directory for printerm
	EnvCacheDir = "PRINTERM_CACHE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// PrintermDirName is the directory name for printerm-specific files
	PrintermDirName = "printerm"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// TemplatesDir is the subdirectory for user template files
	TemplatesDir = "templates"

	// TopicsDir is the subdirectory for extra help topic files
	TopicsDir = "topics"

	// HistoryDBName is the name of the print history database
	HistoryDBName = "history.db"

	// LogFileName is the name of the log file
	LogFileName = "printerm.log"
)

// Paths provides centralized path management for printerm
type Paths interface {
	ConfigDir() string
	ConfigFilePath() string
	DataDir() string
	CacheDir() string
	StateDir() string
	TemplatesDir() string
	TopicsDir() string
	HistoryDBPath() string
	LogFilePath() string
}

type paths struct {
	xdgConfig string
	xdgData   string
	xdgCache  string
	xdgState  string
}

// New creates a new Paths instance, respecting environment overrides.
func New() (Paths, error) {
	p := &paths{}
	if err := p.setupXDGDirs(); err != nil {
		return nil, err
	}
	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() error {
	// Config directory
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, PrintermDirName)
	}

	// Data directory
	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		p.xdgData = expandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, PrintermDirName)
	}

	// Cache directory
	if cacheDir := os.Getenv(EnvCacheDir); cacheDir != "" {
		p.xdgCache = expandHome(cacheDir)
	} else {
		p.xdgCache = filepath.Join(xdg.CacheHome, PrintermDirName)
	}

	// State directory - XDG doesn't provide StateHome, so we check manually
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, PrintermDirName)
	} else {
		homeDir, _ := os.UserHomeDir()
		p.xdgState = filepath.Join(homeDir, ".local", "state", PrintermDirName)
	}

	return nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// ConfigDir returns the XDG config directory for printerm
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// ConfigFilePath returns the path to the user configuration file
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

// DataDir returns the XDG data directory for printerm
func (p *paths) DataDir() string {
	return p.xdgData
}

// CacheDir returns the XDG cache directory for printerm
func (p *paths) CacheDir() string {
	return p.xdgCache
}

// StateDir returns the XDG state directory for printerm
func (p *paths) StateDir() string {
	return p.xdgState
}

// TemplatesDir returns the directory for user-supplied template files.
// Templates found here shadow the builtin templates of the same name.
func (p *paths) TemplatesDir() string {
	return filepath.Join(p.xdgConfig, TemplatesDir)
}

// TopicsDir returns the directory for user-supplied help topic files
func (p *paths) TopicsDir() string {
	return filepath.Join(p.xdgConfig, TopicsDir)
}

// HistoryDBPath returns the path to the print history database
func (p *paths) HistoryDBPath() string {
	return filepath.Join(p.xdgData, HistoryDBName)
}

// LogFilePath returns the path to the printerm log file
// Respects XDG_STATE_HOME if set
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Try the HOME environment variable as a fallback
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrInternal, "failed to get home directory")
	}
	return homeDir, nil
}
