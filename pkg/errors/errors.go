package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
	ErrConfigWrite ErrorCode = "CONFIG_WRITE"

	// Template errors
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrTemplateSchema   ErrorCode = "TEMPLATE_SCHEMA"
	ErrTemplateSyntax   ErrorCode = "TEMPLATE_SYNTAX"

	// Rendering errors
	ErrValidation ErrorCode = "VALIDATION"
	ErrRender     ErrorCode = "RENDER"

	// Script provider errors
	ErrScriptNotFound  ErrorCode = "SCRIPT_NOT_FOUND"
	ErrScriptExecution ErrorCode = "SCRIPT_EXECUTION"
	ErrScriptTimeout   ErrorCode = "SCRIPT_TIMEOUT"

	// Printer transport errors
	ErrPrintTransport ErrorCode = "PRINT_TRANSPORT"

	// History errors
	ErrHistoryOpen  ErrorCode = "HISTORY_OPEN"
	ErrHistoryQuery ErrorCode = "HISTORY_QUERY"
	ErrHistoryWrite ErrorCode = "HISTORY_WRITE"

	// Update check errors
	ErrUpdateCheck ErrorCode = "UPDATE_CHECK"
)

// PrintermError represents a structured error with code and details
type PrintermError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PrintermError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PrintermError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PrintermError) Is(target error) bool {
	var targetErr *PrintermError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PrintermError with the given code and message
func New(code ErrorCode, message string) *PrintermError {
	return &PrintermError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PrintermError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PrintermError {
	return &PrintermError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PrintermError
func Wrap(err error, code ErrorCode, message string) *PrintermError {
	if err == nil {
		return nil
	}
	return &PrintermError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PrintermError {
	if err == nil {
		return nil
	}
	return &PrintermError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PrintermError) WithDetail(key string, value interface{}) *PrintermError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *PrintermError) WithDetails(details map[string]interface{}) *PrintermError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var perr *PrintermError
	if errors.As(err, &perr) {
		return perr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PrintermError
func GetErrorCode(err error) ErrorCode {
	var perr *PrintermError
	if errors.As(err, &perr) {
		return perr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PrintermError
func GetErrorDetails(err error) map[string]interface{} {
	var perr *PrintermError
	if errors.As(err, &perr) {
		return perr.Details
	}
	return nil
}
