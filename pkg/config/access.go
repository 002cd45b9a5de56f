package config

import (
	"time"

	"github.com/printerm/printerm/pkg/errors"
)

// PrinterIP returns the configured printer address. It fails when no
// address has been configured, as there is no sensible default.
func (c *Config) PrinterIP() (string, error) {
	if c.Printer.IPAddress == "" {
		return "", errors.New(errors.ErrConfigValid,
			"Printer IP address not set in the configuration file.")
	}
	return c.Printer.IPAddress, nil
}

// CharsPerLine returns the printable width of the paper roll
func (c *Config) CharsPerLine() int {
	if c.Printer.CharsPerLine <= 0 {
		return 32
	}
	return c.Printer.CharsPerLine
}

// PrinterTimeout returns the printer connection timeout
func (c *Config) PrinterTimeout() time.Duration {
	if c.Printer.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Printer.Timeout) * time.Second
}

// ScriptTimeout returns the wall-clock budget for script providers
func (c *Config) ScriptTimeout() time.Duration {
	if c.Scripts.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Scripts.Timeout) * time.Second
}

// WebPort returns the port for the web interface
func (c *Config) WebPort() int {
	if c.Web.Port <= 0 {
		return 5555
	}
	return c.Web.Port
}
