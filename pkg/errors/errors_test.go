// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/printerm/printerm/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "template not found",
			wantStr: "[NOT_FOUND] template not found",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "invalid configuration",
			wantStr: "[INVALID_INPUT] invalid configuration",
		},
		{
			name:    "validation_error",
			code:    errors.ErrValidation,
			message: "Required field missing: Title",
			wantStr: "[VALIDATION] Required field missing: Title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		format  string
		args    []interface{}
		wantMsg string
	}{
		{
			name:    "format_with_string",
			code:    errors.ErrInvalidInput,
			format:  "invalid value: %s",
			args:    []interface{}{"test"},
			wantMsg: "invalid value: test",
		},
		{
			name:    "format_with_multiple_args",
			code:    errors.ErrTemplateSyntax,
			format:  "unclosed %s block at offset %d",
			args:    []interface{}{"if", 42},
			wantMsg: "unclosed if block at offset 42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.Newf(tt.code, tt.format, tt.args...)

			if err.Message != tt.wantMsg {
				t.Errorf("Newf() message = %q, want %q", err.Message, tt.wantMsg)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrInternal, "internal error")

		if err.Code != errors.ErrInternal {
			t.Errorf("Wrap() code = %v, want %v", err.Code, errors.ErrInternal)
		}

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[INTERNAL] internal error: base error"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		err := errors.Wrap(nil, errors.ErrInternal, "internal error")
		if err != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrTemplateNotFound, "not found").
		WithDetail("template", "ticket").
		WithDetail("search_path", "/etc/printerm/templates")

	if err.Details["template"] != "ticket" {
		t.Errorf("WithDetail() template = %v, want %v", err.Details["template"], "ticket")
	}

	if err.Details["search_path"] != "/etc/printerm/templates" {
		t.Errorf("WithDetail() search_path = %v, want %v", err.Details["search_path"], "/etc/printerm/templates")
	}
}

func TestWithDetails(t *testing.T) {
	details := map[string]interface{}{
		"template": "ticket",
		"segment":  2,
		"missing":  []string{"title"},
	}

	err := errors.New(errors.ErrValidation, "missing required variables").
		WithDetails(details)

	if err.Details["template"] != "ticket" {
		t.Errorf("WithDetails() template = %v, want ticket", err.Details["template"])
	}
	if err.Details["segment"] != 2 {
		t.Errorf("WithDetails() segment = %v, want 2", err.Details["segment"])
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrTemplateNotFound, "error 1")
	err2 := errors.New(errors.ErrTemplateNotFound, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	t.Run("same_code_is_equal", func(t *testing.T) {
		if !err1.Is(err2) {
			t.Error("Is() should return true for same code")
		}
	})

	t.Run("different_code_not_equal", func(t *testing.T) {
		if err1.Is(err3) {
			t.Error("Is() should return false for different codes")
		}
	})

	t.Run("works_with_errors_Is", func(t *testing.T) {
		if !stderrors.Is(err1, err2) {
			t.Error("errors.Is() should work with PrintermError")
		}
	})
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrScriptTimeout, "budget exceeded"),
			code:     errors.ErrScriptTimeout,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrScriptTimeout, "budget exceeded"),
			code:     errors.ErrScriptExecution,
			expected: false,
		},
		{
			name:     "wrapped_error",
			err:      errors.Wrap(stderrors.New("connection refused"), errors.ErrPrintTransport, "cannot reach printer"),
			code:     errors.ErrPrintTransport,
			expected: true,
		},
		{
			name:     "non_printerm_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrNotFound,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrNotFound,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected errors.ErrorCode
	}{
		{
			name:     "printerm_error",
			err:      errors.New(errors.ErrTemplateNotFound, "template not found"),
			expected: errors.ErrTemplateNotFound,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			expected: errors.ErrUnknown,
		},
		{
			name:     "nil_error",
			err:      nil,
			expected: errors.ErrUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	// Create a chain of errors
	rootCause := stderrors.New("root cause")
	transportErr := errors.Wrap(rootCause, errors.ErrPrintTransport, "cannot dial printer")
	renderErr := errors.Wrap(transportErr, errors.ErrRender, "failed to print template")

	t.Run("top_level_has_correct_code", func(t *testing.T) {
		if !errors.IsErrorCode(renderErr, errors.ErrRender) {
			t.Error("Top level should have ErrRender code")
		}
	})

	t.Run("can_find_middle_error", func(t *testing.T) {
		var perr *errors.PrintermError
		if stderrors.As(renderErr.Unwrap(), &perr) {
			if !errors.IsErrorCode(perr, errors.ErrPrintTransport) {
				t.Error("Middle error should have ErrPrintTransport code")
			}
		}
	})

	t.Run("can_find_root_cause", func(t *testing.T) {
		if !stderrors.Is(renderErr, rootCause) {
			t.Error("Should find root cause with errors.Is")
		}
	})
}
