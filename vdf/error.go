package vdf

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrInvalidInput      = NewError("invalid input")
	ErrSyntax            = NewError("invalid syntax")
	ErrUnbalancedBraces  = NewError("unbalanced braces")
	ErrInvalidTreeShape  = NewError("invalid tree shape")
	ErrReadInput         = NewError("failed to read input")
	ErrBaseCycle         = NewError("base file cycle")
	ErrBaseDepthExceeded = NewError("maximum base file depth exceeded")
	ErrKeyNotFound       = NewError("key not found")
	ErrQuery             = NewError("query failed")
)

// Error represents an error with an optional source line and structured
// logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	line  int         // 1-based source line, 0 if unknown
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg> on line <n>: <err>"
	//   2. "<msg>: <err>"
	//   3. "<msg>"
	//   4. "<err>"
	part := make([]string, 0, 2)

	if e.msg != "" {
		msg := e.msg
		if e.line > 0 {
			msg += " on line " + strconv.Itoa(e.line)
		}

		part = append(part, msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an Error derived from the same sentinel.
// Errors derived with [Error.Wrap], [Error.With], or [Error.WithLine] keep
// the identity of the sentinel they were made from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.msg != "" && t.msg == e.msg
}

// Line returns the 1-based source line of e, or 0 if unknown.
func (e *Error) Line() int { return e.line }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.line > 0 {
		attrs = append(attrs, slog.Int("line", e.line))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		line:  e.line,
		attrs: e.attrs, // Share attrs
	}
}

// WithLine returns a copy of e attributed to the given 1-based source line.
func (e *Error) WithLine(line int) *Error {
	return &Error{
		msg:   e.msg,
		err:   e.err,
		line:  line,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		line:  e.line,
		attrs: newAttrs,
	}
}

// LineOf returns the source line of the outermost [Error] in err's chain that
// carries one, or 0 if there is none.
func LineOf(err error) int {
	for err != nil {
		var ee *Error
		if !errors.As(err, &ee) {
			return 0
		}

		if ee.line > 0 {
			return ee.line
		}

		err = ee.err
	}

	return 0
}
