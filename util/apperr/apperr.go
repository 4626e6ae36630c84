// Package apperr carries the error kinds that catalog and ledger
// operations surface instead of raw storage errors.
package apperr

import "errors"

type Kind string

const (
	KindInvalidRequest Kind = "INVALID_REQUEST"
	KindNotFound       Kind = "NOT_FOUND"
	KindConflict       Kind = "CONFLICT"
	KindUnauthorized   Kind = "UNAUTHORIZED"
	KindInternal       Kind = "INTERNAL"
)

type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }
func (e *Error) Kind() Kind    { return e.kind }

// Message is the caller-facing text, without any wrapped detail.
func (e *Error) Message() string { return e.msg }

func New(k Kind, msg string) error {
	return &Error{kind: k, msg: msg}
}

func Wrap(k Kind, msg string, err error) error {
	return &Error{kind: k, msg: msg, err: err}
}

// KindOf extracts the kind, or "" for errors from outside this scheme.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return ""
}

// Message returns the caller-facing text of err, falling back to
// err.Error() for plain errors.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.msg
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// Internal wraps unexpected storage failures; errors that already carry
// a kind pass through untouched.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != "" {
		return err
	}
	return Wrap(KindInternal, "internal error", err)
}
