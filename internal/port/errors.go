package port

import (
	"errors"
	"fmt"
)

// ErrorKind tags every error a boundary operation can report.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindInvalidCredentials
	KindDuplicateUser
	KindTokenInvalid
	KindRemoteUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindDuplicateUser:
		return "duplicate_user"
	case KindTokenInvalid:
		return "token_invalid"
	case KindRemoteUnavailable:
		return "remote_unavailable"
	default:
		return "unknown"
	}
}

// Error is the closed error type shared by services and adapters.
// Msg is safe to show to the user; Err carries the underlying cause.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the sentinels below work with
// errors.Is regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinel errors, one per kind.
var (
	ErrValidation         = &Error{Kind: KindValidation}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials}
	ErrDuplicateUser      = &Error{Kind: KindDuplicateUser}
	ErrTokenInvalid       = &Error{Kind: KindTokenInvalid}
	ErrRemoteUnavailable  = &Error{Kind: KindRemoteUnavailable}

	// ErrNotFound is returned by stores for a missing key or record.
	ErrNotFound = errors.New("not found")
)

// Validation builds a KindValidation error with a user-facing message.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Msg: msg}
}

// InvalidCredentials builds a KindInvalidCredentials error.
func InvalidCredentials(msg string) *Error {
	return &Error{Kind: KindInvalidCredentials, Msg: msg}
}

// DuplicateUser builds a KindDuplicateUser error.
func DuplicateUser(msg string) *Error {
	return &Error{Kind: KindDuplicateUser, Msg: msg}
}

// TokenInvalid wraps a verification failure.
func TokenInvalid(err error) *Error {
	return &Error{Kind: KindTokenInvalid, Msg: "token invalid", Err: err}
}

// RemoteUnavailable wraps a failed or blocked assistant call.
func RemoteUnavailable(msg string, err error) *Error {
	return &Error{Kind: KindRemoteUnavailable, Msg: msg, Err: err}
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
