// Package errors defines the error type surfaced by every miniql API.
//
// A QueryError carries a human-readable message, an optional structured
// extensions map, and the failure it wraps (for resolver errors). Serialize
// produces the wire shape used by the HTTP server.
package errors

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// QueryError is the single error kind produced by the engine. Parse,
// schema-validation, execution and coercion failures are all QueryErrors;
// foreign resolver errors are wrapped into one with the field attached.
type QueryError struct {
	Message    string         `json:"message"`
	Extensions map[string]any `json:"extensions,omitempty"`

	// ResolverError is the original error when this QueryError wraps a
	// failure raised by a host resolver. Nil for engine-originated errors.
	ResolverError error `json:"-"`

	file  string
	line  int
	stack string
}

var _ error = (*QueryError)(nil)

func (e *QueryError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.ResolverError != nil {
		return fmt.Sprintf("graphql: %s: %s", e.Message, e.ResolverError)
	}
	return "graphql: " + e.Message
}

func (e *QueryError) Unwrap() error { return e.ResolverError }

// New formats a message and returns a QueryError carrying the caller's
// file/line and stack for the debug serialization block.
func New(format string, args ...any) *QueryError {
	e := &QueryError{Message: fmt.Sprintf(format, args...)}
	if _, file, line, ok := runtime.Caller(1); ok {
		e.file = file
		e.line = line
	}
	e.stack = string(debug.Stack())
	return e
}

// Wrap attaches a foreign error to a new QueryError without losing it.
func Wrap(err error, format string, args ...any) *QueryError {
	e := New(format, args...)
	e.ResolverError = err
	if _, file, line, ok := runtime.Caller(1); ok {
		e.file = file
		e.line = line
	}
	return e
}

// WithExtensions sets the structured extensions map and returns e.
func (e *QueryError) WithExtensions(ext map[string]any) *QueryError {
	e.Extensions = ext
	return e
}

// Serialize renders the error in the {message, extensions?} wire shape.
// With debug enabled it adds a debug block with the construction site and
// stack trace; hosts should leave debug off in production.
func (e *QueryError) Serialize(debug bool) map[string]any {
	out := map[string]any{"message": e.Message}
	if len(e.Extensions) > 0 {
		out["extensions"] = e.Extensions
	}
	if debug {
		out["debug"] = map[string]any{
			"file":  e.file,
			"line":  e.line,
			"stack": e.stack,
		}
	}
	return out
}
