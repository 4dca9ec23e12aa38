// error.go — the structured error value for laeh2.
//
// An *Error carries four things: a message, optional metadata attached at
// raise time, the origin capture taken where the error materialized, and an
// optional prev link to the asynchronous boundary crossed immediately before
// this one. prev links form a singly linked chain, one hop per crossed
// boundary; each link is created strictly before the link that references
// it, so cycles cannot occur.
//
// Interop:
//   - Error() returns the concise message; the lean multi-boundary trace is
//     Render() (or %+v via fmt.Formatter in format.go).
//   - Promoted Go errors keep their original value as Unwrap() cause, so
//     errors.Is/As traverse through laeh2 boundaries.
package laeh2

import (
	"fmt"
)

// Error is a structured error value linked to the call site that originated
// the asynchronous operation it failed in.
//
// An Error is mutated at most once per crossed boundary (to append a prev
// link) and never after it has been delivered to a completion handler.
type Error struct {
	msg   string
	meta  any
	cause error
	stack Stack
	prev  *Error
}

// New creates an *Error with the given message, capturing the call stack at
// the caller. Metadata follows the Check conventions: a single value is
// attached as-is, two or more are parsed as ordered key-value fields.
func New(msg string, meta ...any) *Error {
	e := &Error{msg: msg, stack: captureStackDefault(1)}
	if m := metaFromArgs(meta); m != nil {
		e.meta = m
	}
	return e
}

// From promotes an arbitrary value into an *Error without raising it.
//   - *Error values are returned as-is (no recapture).
//   - error values become the message via Error() and are retained as the
//     Unwrap cause.
//   - anything else is stringified with fmt.Sprint.
//
// Promotion captures the stack at the caller so the raise site is known
// even for values that carry no trace of their own.
func From(v any) *Error {
	return promote(v, 1)
}

// promote is the internal promotion path; skip counts the helper frames
// between the raise site and this call.
func promote(v any, skip int) *Error {
	switch t := v.(type) {
	case *Error:
		return t
	case error:
		return &Error{msg: t.Error(), cause: t, stack: captureStackDefault(skip + 1)}
	default:
		return &Error{msg: fmt.Sprint(v), stack: captureStackDefault(skip + 1)}
	}
}

// Error returns the concise message. Use Render (or %+v) for the full
// boundary chain.
func (e *Error) Error() string { return e.msg }

// Unwrap returns the promoted cause (if any) so errors.Is/As observe the
// original error value.
func (e *Error) Unwrap() error { return e.cause }

// Meta returns the metadata attached at raise time, or nil.
func (e *Error) Meta() any { return e.meta }

// Prev returns the link for the boundary crossed immediately before this
// one, or nil if this error has not crossed a boundary yet.
func (e *Error) Prev() *Error { return e.prev }

// Origin returns a copy of the raw origin capture.
func (e *Error) Origin() Stack {
	if len(e.stack) == 0 {
		return nil
	}
	out := make(Stack, len(e.stack))
	copy(out, e.stack)
	return out
}

// Render produces the lean multi-boundary trace using the installed default
// Formatter. The output is stable for a given FormatterConfiguration.
func (e *Error) Render() string { return Default().Render(e) }

// Interface conformance guard (keep in the file that defines the type).
var _ error = (*Error)(nil)
