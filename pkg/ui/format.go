// Package ui decides how CLI output is rendered: rich terminal
// styling, plain text, or JSON.
package ui

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/printerm/printerm/pkg/errors"
)

// Format selects an output rendering mode.
type Format int

const (
	// FormatAuto picks FormatTerminal or FormatText from the output's
	// capabilities.
	FormatAuto Format = iota
	// FormatTerminal renders with colors and styling.
	FormatTerminal
	// FormatText renders plain text without styling.
	FormatText
	// FormatJSON renders machine-readable JSON.
	FormatJSON
)

// String returns the flag spelling of the format.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat parses a --output flag value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, errors.Newf(errors.ErrInvalidInput, "Unknown output format '%s'", s)
	}
}

// Detect returns the concrete format for output: plain text when the
// stream is piped, NO_COLOR is set, or the terminal reports no color
// support; rich terminal output otherwise.
func Detect(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}
	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}

// Resolve collapses FormatAuto to whatever Detect picks for output.
// A concrete format passes through untouched; an explicit flag wins
// over detection.
func (f Format) Resolve(output *os.File) Format {
	if f == FormatAuto {
		return Detect(output)
	}
	return f
}
