package ui_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printerm/printerm/pkg/errors"
	"github.com/printerm/printerm/pkg/ui"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		name     string
		format   ui.Format
		expected string
	}{
		{
			name:     "auto format",
			format:   ui.FormatAuto,
			expected: "auto",
		},
		{
			name:     "terminal format",
			format:   ui.FormatTerminal,
			expected: "term",
		},
		{
			name:     "text format",
			format:   ui.FormatText,
			expected: "text",
		},
		{
			name:     "json format",
			format:   ui.FormatJSON,
			expected: "json",
		},
		{
			name:     "unknown format",
			format:   ui.Format(999),
			expected: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{
			name:     "parse auto",
			input:    "auto",
			expected: ui.FormatAuto,
		},
		{
			name:     "parse empty string as auto",
			input:    "",
			expected: ui.FormatAuto,
		},
		{
			name:     "parse term",
			input:    "term",
			expected: ui.FormatTerminal,
		},
		{
			name:     "parse terminal",
			input:    "terminal",
			expected: ui.FormatTerminal,
		},
		{
			name:     "parse text",
			input:    "text",
			expected: ui.FormatText,
		},
		{
			name:     "parse plain",
			input:    "plain",
			expected: ui.FormatText,
		},
		{
			name:     "parse json",
			input:    "json",
			expected: ui.FormatJSON,
		},
		{
			name:    "parse invalid format",
			input:   "fancy",
			wantErr: true,
		},
		{
			name:     "parse uppercase term",
			input:    "TERM",
			expected: ui.FormatTerminal,
		},
		{
			name:     "parse mixed case JSON",
			input:    "Json",
			expected: ui.FormatJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				assert.Contains(t, err.Error(), "fancy")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, format)
			}
		})
	}
}

func TestDetectPipeIsText(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	assert.Equal(t, ui.FormatText, ui.Detect(w), "a pipe is not a terminal")
}

func TestDetectHonorsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, ui.FormatText, ui.Detect(os.Stdout))
}

func TestResolve(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	// auto collapses via detection, explicit choices stick
	assert.Equal(t, ui.FormatText, ui.FormatAuto.Resolve(w))
	assert.Equal(t, ui.FormatJSON, ui.FormatJSON.Resolve(w))
	assert.Equal(t, ui.FormatTerminal, ui.FormatTerminal.Resolve(w))
}
