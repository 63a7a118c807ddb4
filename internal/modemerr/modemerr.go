// Package modemerr defines the modem's explicit error kinds, replacing
// substring-matching on error text (the design note in SPEC_FULL.md §9)
// with a small wrapped-error variant built on github.com/pkg/errors.
package modemerr

import "github.com/pkg/errors"

// Kind discriminates the four error categories from spec.md §7.
type Kind int

const (
	// Input errors are synchronous, pre-transmission rejections (e.g.
	// payload exceeds MaxPayloadBytes).
	Input Kind = iota
	// Recoverable receive errors trigger a decoder soft reset.
	Recoverable
	// NonRecoverable receive errors (decryption failure, session-id
	// mismatch) surface to the caller without resetting decoder state.
	NonRecoverable
	// Fatal errors move the decoder to its error state permanently.
	Fatal
)

func (k Kind) String() string {
	switch k {
	case Input:
		return "input"
	case Recoverable:
		return "recoverable"
	case NonRecoverable:
		return "non-recoverable"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Error wraps a cause with a Kind.
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string { return e.cause.Error() }
func (e *Error) Unwrap() error { return e.cause }

// Recoverable reports whether the decoder may continue processing the
// same audio stream after this error (Input and Fatal are not).
func (e *Error) Recoverable() bool { return e.Kind == Recoverable }

// Wrap builds a *Error of the given kind from cause and a plain message,
// analogous to errors.Wrap.
func Wrap(kind Kind, cause error, msg string) *Error {
	return &Error{Kind: kind, cause: errors.Wrap(cause, msg)}
}

// New builds a *Error of the given kind from a message alone.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, cause: errors.New(msg)}
}

// Newf builds a *Error of the given kind from a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, cause: errors.Errorf(format, args...)}
}

// KindOf extracts the Kind from err if it (or something it wraps) is a
// *Error, defaulting to Fatal for unrecognised errors since an
// un-classified failure should not be silently treated as recoverable.
func KindOf(err error) Kind {
	var me *Error
	if errors.As(err, &me) {
		return me.Kind
	}
	return Fatal
}

// Cause unwraps to the innermost cause, mirroring errors.Cause.
func Cause(err error) error { return errors.Cause(err) }
