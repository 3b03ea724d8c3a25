package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error for retry and transport mapping. Validation,
// NotFound and Forbidden are terminal and never retried; Conflict marks
// transient store failures the owning component may retry; Unavailable
// is what exhausted retries surface as.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindConflict
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindUnavailable:
		return "unavailable"
	}
	return "unknown"
}

// Error is a classified application error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches either the same *Error instance (sentinels) or any *Error
// of the same kind when the target carries no message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Msg == "" && t.Err == nil {
		return e.Kind == t.Kind
	}
	return e == t
}

// Validationf creates a validation error.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFoundf creates a not-found error.
func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Forbiddenf creates a forbidden error.
func Forbiddenf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Msg: fmt.Sprintf(format, args...)}
}

// Conflictf creates a retryable conflict error wrapping the cause.
func Conflictf(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Unavailablef creates an unavailable error wrapping the cause.
func Unavailablef(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindUnavailable, Msg: fmt.Sprintf(format, args...), Err: err}
}

// ErrSelfVote is returned when a voter targets their own content.
// It is a Forbidden error with a stable identity so callers can
// distinguish it from other permission failures.
var ErrSelfVote = &Error{Kind: KindForbidden, Msg: "self-vote rejected"}

// KindOf extracts the kind from an error chain, KindUnknown if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Retryable reports whether the error is safe to retry automatically.
func Retryable(err error) bool {
	return KindOf(err) == KindConflict
}
