package apperr

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

type ErrorType int

const (
	ErrMalformedTable ErrorType = iota
	ErrEncoding
	ErrIO
	ErrUsage
	ErrNotFound
)

// Error is the error type surfaced to the command layer. Context values are
// rendered in key order so messages are stable.
type Error struct {
	Type    ErrorType
	Message string
	Context map[string]any
	Cause   error
}

func New(errorType ErrorType, message string) *Error {
	return &Error{
		Type:    errorType,
		Message: message,
		Context: make(map[string]any),
	}
}

func Newf(errorType ErrorType, format string, args ...any) *Error {
	return New(errorType, fmt.Sprintf(format, args...))
}

func NewWithCause(errorType ErrorType, message string, cause error) *Error {
	e := New(errorType, message)
	e.Cause = cause
	return e
}

// MalformedTable reports a table violation at a 1-based line.
func MalformedTable(line int, message string) *Error {
	return New(ErrMalformedTable, message).WithContext("line", line)
}

func (e *Error) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("[%s] %s", e.Type.String(), e.Message))

	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		ctxParts := make([]string, 0, len(keys))
		for _, k := range keys {
			ctxParts = append(ctxParts, fmt.Sprintf("%s=%v", k, e.Context[k]))
		}
		parts = append(parts, fmt.Sprintf("context: %s", strings.Join(ctxParts, ", ")))
	}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause: %v", e.Cause))
	}

	return strings.Join(parts, " | ")
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// Line returns the line number attached to a MalformedTable error, or 0.
func (e *Error) Line() int {
	if n, ok := e.Context["line"].(int); ok {
		return n
	}
	return 0
}

func (t ErrorType) String() string {
	switch t {
	case ErrMalformedTable:
		return "MalformedTable"
	case ErrEncoding:
		return "Encoding"
	case ErrIO:
		return "IO"
	case ErrUsage:
		return "Usage"
	case ErrNotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

// Advice returns a hint for fixing the error, shown in verbose mode.
func Advice(err error) string {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return "Run again with --verbose and check the error chain"
	}
	switch appErr.Type {
	case ErrMalformedTable:
		return "Every table line must look like ~|source|target|...|~ with the same number of fields"
	case ErrEncoding:
		return "Use --list-encodings to see supported encoding names"
	case ErrIO:
		return "Check that input files exist and the output directory is writable"
	case ErrUsage:
		return "Use --help for command usage"
	case ErrNotFound:
		return "The term has no record in the table"
	default:
		return "Review the error chain for details"
	}
}

// Chain returns err followed by every error it wraps.
func Chain(err error) []error {
	var chain []error
	for err != nil {
		chain = append(chain, err)
		err = errors.Unwrap(err)
	}
	return chain
}

func IsErrorType(err error, errorType ErrorType) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

func WrapError(err error, errorType ErrorType, message string) *Error {
	return NewWithCause(errorType, message, err)
}
