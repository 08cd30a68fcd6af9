package errors

import (
	"errors"
	"fmt"
)

// MalformedInputLabel prefixes every message produced for input the
// JSON parser rejected.
const MalformedInputLabel = "Invalid JSON"

// Standard application errors
var (
	ErrMalformedInput       = errors.New("malformed JSON input")
	ErrNoDocument           = errors.New("no JSON document loaded")
	ErrTooDeep              = errors.New("JSON document exceeds maximum nesting depth")
	ErrFileNotFound         = errors.New("file not found")
	ErrNoInput              = errors.New("no input provided: please specify a file with -i or pipe JSON data to stdin")
	ErrInvalidFilePath      = errors.New("invalid file path")
	ErrClipboardUnavailable = errors.New("clipboard is not available on this system")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput     ErrorType = "input"
	ErrorTypeParsing   ErrorType = "parsing"
	ErrorTypeConfig    ErrorType = "config"
	ErrorTypeRender    ErrorType = "render"
	ErrorTypeOutput    ErrorType = "output"
	ErrorTypeClipboard ErrorType = "clipboard"
	ErrorTypeUnknown   ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to reading input
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewMalformedInputError creates the error raised when the JSON parser
// rejects raw text. The parser's diagnostic is kept verbatim behind the
// fixed label.
func NewMalformedInputError(diagnostic string) *AppError {
	return &AppError{
		Type:    ErrorTypeParsing,
		Message: fmt.Sprintf("%s: %s", MalformedInputLabel, diagnostic),
		Err:     ErrMalformedInput,
	}
}

// NewParsingError creates a new error related to JSON parsing
func NewParsingError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeParsing,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to configuration
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// NewRenderError creates a new error related to tree or statistics rendering
func NewRenderError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeRender,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// NewClipboardError creates a new error related to clipboard access
func NewClipboardError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeClipboard,
		Message: message,
		Err:     err,
	}
}

// IsMalformedInput reports whether err was raised for unparseable input.
func IsMalformedInput(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			if errors.Is(appErr.Err, ErrMalformedInput) {
				return appErr.Message
			}
			return fmt.Sprintf("JSON parsing error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeRender:
			return fmt.Sprintf("Render error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		case ErrorTypeClipboard:
			return fmt.Sprintf("Clipboard error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrNoDocument) {
		return "Error: No JSON document is loaded."
	}
	if errors.Is(err, ErrTooDeep) {
		return "Error: The JSON document is nested too deeply."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe JSON data to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}
	if errors.Is(err, ErrClipboardUnavailable) {
		return "Error: The clipboard is not available on this system."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
