// Package aterr provides standardized error handling for myairtable.
// All errors have stable, machine-readable codes, structured context, and proper wrapping.
package aterr

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// Code represents a stable, machine-readable error code.
// Format: E{category}{number} where category is 1-6 and number is 001-999.
type Code string

// Error codes organized by category.
const (
	// Config errors (E1xxx) - problems with configuration and environment
	ErrConfigInvalid  Code = "E1001" // Config file is malformed or invalid
	ErrConfigNotFound Code = "E1002" // Config file does not exist
	ErrMissingAPIKey  Code = "E1003" // API key not set in config or environment
	ErrMissingBaseID  Code = "E1004" // Base ID not set in config or environment

	// Validation errors (E2xxx) - problems with formula construction input
	ErrInvalidField     Code = "E2001" // Field name is empty or unusable
	ErrInvalidFieldName Code = "E2002" // Field name is not in the table's field set
	ErrDateParse        Code = "E2003" // Date-like operand could not be parsed
	ErrInvalidTableName Code = "E2004" // Table name is not in the base

	// Metadata errors (E3xxx) - problems talking to the metadata API
	ErrMetaRequest  Code = "E3001" // Metadata request failed
	ErrMetaStatus   Code = "E3002" // Metadata API returned a non-2xx status
	ErrMetaDecode   Code = "E3003" // Metadata response could not be decoded
	ErrEmptySchema  Code = "E3004" // Base has no tables
	ErrRecordAPI    Code = "E3005" // Records API returned an error payload
	ErrRecordDecode Code = "E3006" // Records API response could not be decoded

	// Cache errors (E4xxx) - problems with the local snapshot cache
	ErrCacheInit    Code = "E4001" // Cache initialization failed
	ErrCacheRead    Code = "E4002" // Cache read failed
	ErrCacheWrite   Code = "E4003" // Cache write failed
	ErrCacheEmpty   Code = "E4004" // No snapshot in the cache yet
	ErrCacheCorrupt Code = "E4005" // Cached snapshot is corrupted

	// Generation errors (E5xxx) - problems emitting generated files
	ErrGenerate     Code = "E5001" // Code generation failed
	ErrGenWrite     Code = "E5002" // Generated file could not be written
	ErrGenFormat    Code = "E5003" // Unknown export format
	ErrDuplicateIdent Code = "E5004" // Two fields sanitize to the same identifier

	// Drift errors (E6xxx) - problems computing schema drift
	ErrDriftHash Code = "E6001" // Merkle hash computation failed
)

// Error is the standard error type for myairtable.
// It provides structured error information with codes, context, and wrapping support.
type Error struct {
	code    Code           // Machine-readable error code
	message string         // Human-readable error message
	context map[string]any // Structured context data
	cause   error          // Wrapped underlying error
	stack   string         // Stack trace for debugging
}

// Error returns the formatted error string.
// Format:
//
//	[E2002] unknown field name
//	  field: Emial
//	  table: Contacts
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.code, e.message))

	// Write context in sorted order for deterministic output
	if len(e.context) > 0 {
		keys := make([]string, 0, len(e.context))
		for k := range e.context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			b.WriteString(fmt.Sprintf("\n  %s: %v", k, e.context[k]))
		}
	}

	if e.cause != nil {
		b.WriteString(fmt.Sprintf("\n  cause: %v", e.cause))
	}

	return b.String()
}

// Unwrap returns the underlying cause error for errors.Unwrap compatibility.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether the target error matches this error.
// It matches if target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.code == targetErr.code
	}

	return false
}

// GetCode returns the error code.
func (e *Error) GetCode() Code {
	return e.code
}

// GetMessage returns the error message.
func (e *Error) GetMessage() string {
	return e.message
}

// GetContext returns the error context map.
func (e *Error) GetContext() map[string]any {
	return e.context
}

// GetCause returns the underlying cause error.
func (e *Error) GetCause() error {
	return e.cause
}

// GetStack returns the stack trace.
func (e *Error) GetStack() string {
	return e.stack
}

// With adds a key-value pair to the error context.
// Returns the error for method chaining.
func (e *Error) With(key string, value any) *Error {
	if e.context == nil {
		e.context = make(map[string]any)
	}
	e.context[key] = value
	return e
}

// WithTable adds table context to the error.
func (e *Error) WithTable(table string) *Error {
	return e.With("table", table)
}

// WithField adds field context to the error.
func (e *Error) WithField(name string) *Error {
	return e.With("field", name)
}

// WithBase adds base-id context to the error.
func (e *Error) WithBase(baseID string) *Error {
	return e.With("base", baseID)
}

// WithHelp adds a help suggestion to the error (displayed as "help: ...").
func (e *Error) WithHelp(help string) *Error {
	helps, _ := e.context["helps"].([]string)
	helps = append(helps, help)
	return e.With("helps", helps)
}

// Helps returns all help suggestions attached to this error.
func (e *Error) Helps() []string {
	helps, _ := e.context["helps"].([]string)
	return helps
}

// captureStack captures a stack trace for debugging.
func captureStack(skip int) string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		// Skip runtime internals
		if strings.Contains(frame.File, "runtime/") {
			if !more {
				break
			}
			continue
		}
		b.WriteString(fmt.Sprintf("%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line))
		if !more {
			break
		}
	}
	return b.String()
}

// New creates a new Error with the given code and message.
func New(code Code, msg string) *Error {
	return &Error{
		code:    code,
		message: msg,
		context: make(map[string]any),
		stack:   captureStack(3),
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		code:    code,
		message: fmt.Sprintf(format, args...),
		context: make(map[string]any),
		stack:   captureStack(3),
	}
}

// Wrap creates a new Error that wraps an existing error.
func Wrap(code Code, err error, msg string) *Error {
	if err == nil {
		return New(code, msg)
	}
	return &Error{
		code:    code,
		message: msg,
		context: make(map[string]any),
		cause:   err,
		stack:   captureStack(3),
	}
}

// Wrapf creates a new Error that wraps an existing error with a formatted message.
func Wrapf(code Code, err error, format string, args ...any) *Error {
	return Wrap(code, err, fmt.Sprintf(format, args...))
}

// GetErrorCode extracts the error code from an error chain.
// Returns empty string if no code is found.
func GetErrorCode(err error) Code {
	if err == nil {
		return ""
	}

	var aerr *Error
	if errors.As(err, &aerr) {
		return aerr.code
	}

	return ""
}

// Is checks if an error has the specified code.
func Is(err error, code Code) bool {
	return GetErrorCode(err) == code
}

// HasCode checks if an error has any error code.
func HasCode(err error) bool {
	return GetErrorCode(err) != ""
}
