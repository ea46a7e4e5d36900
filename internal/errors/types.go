package errors

import (
	"errors"
	"fmt"
)

// ArtistError defines the base interface for all artist errors
type ArtistError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode represents the type of error that occurred
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota

	// Run configuration, stencil declarations and manifests
	ConfigurationErrorCode
	// Plugin registry lookups
	RegistrationErrorCode

	// Engine and trait failures
	GenerationErrorCode
	FormatErrorCode
	FileSystemErrorCode
)

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case ConfigurationErrorCode:
		return "ConfigurationError"
	case RegistrationErrorCode:
		return "RegistrationError"
	case GenerationErrorCode:
		return "GenerationError"
	case FormatErrorCode:
		return "FormatError"
	case FileSystemErrorCode:
		return "FileSystemError"
	default:
		return "UnknownError"
	}
}

// SourceLocation points into a manifest or generated file
type SourceLocation struct {
	File   string
	Line   int // 1-based
	Column int // 1-based
}

// String returns a formatted string representation of the location
func (s SourceLocation) String() string {
	if s.File == "" {
		return "unknown location"
	}
	if s.Line == 0 {
		return s.File
	}
	if s.Column == 0 {
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// IsEmpty returns true if the location has no useful information
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}

// BaseError provides a common implementation of the ArtistError interface
type BaseError struct {
	Code        ErrorCode
	Message     string
	Loc         SourceLocation
	Cause       error
	ContextData map[string]interface{}
	Hints       []string
}

// Error implements the error interface. The cause message is appended so
// that a single line on the console explains the whole chain.
func (e *BaseError) Error() string {
	msg := e.Message
	if !e.Loc.IsEmpty() {
		msg = fmt.Sprintf("%s: %s", e.Loc.String(), msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// ErrorCode returns the error code
func (e *BaseError) ErrorCode() ErrorCode {
	return e.Code
}

// Location returns the source location where the error occurred
func (e *BaseError) Location() SourceLocation {
	return e.Loc
}

// Context returns the error context data
func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return make(map[string]interface{})
	}
	return e.ContextData
}

// Suggestions returns helpful suggestions for fixing the error
func (e *BaseError) Suggestions() []string {
	return e.Hints
}

// Unwrap returns the underlying error cause for error chain inspection
func (e *BaseError) Unwrap() error {
	return e.Cause
}

// WithLocation adds location information to the error
func (e *BaseError) WithLocation(loc SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

// WithCause adds an underlying error cause
func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = cause
	return e
}

// WithContext adds context data to the error
func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

// WithSuggestion adds a helpful suggestion for fixing the error
func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

// New creates a new BaseError with the specified code and message
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Hints:   make([]string, 0),
	}
}

// Wrap creates a new error that wraps another error
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Hints:   make([]string, 0),
	}
}

// CodeOf returns the code of the outermost ArtistError in err's chain.
func CodeOf(err error) ErrorCode {
	var ae ArtistError
	if errors.As(err, &ae) {
		return ae.ErrorCode()
	}
	return UnknownErrorCode
}

// HasCode reports whether any ArtistError in err's chain carries code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		if ae, ok := err.(ArtistError); ok && ae.ErrorCode() == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
