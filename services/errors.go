package services

import (
	"errors"

	"gorm.io/gorm"
)

// Kind classifies a domain failure. The transport layer maps each kind to a
// fixed status code.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
	KindInvalidInput
	KindUnauthorized
	KindStorageFailure
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthorized:
		return "unauthorized"
	case KindStorageFailure:
		return "storage_failure"
	default:
		return "unknown"
	}
}

// Error is returned by every Service operation that fails.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind == KindStorageFailure {
		return e.Msg + ": " + e.Err.Error()
	}
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind-only sentinels below, so callers can write
// errors.Is(err, services.ErrConflict).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Msg != "" || t.Err != nil {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrConflict       = &Error{Kind: KindConflict}
	ErrInvalidInput   = &Error{Kind: KindInvalidInput}
	ErrUnauthorized   = &Error{Kind: KindUnauthorized}
	ErrStorageFailure = &Error{Kind: KindStorageFailure}
)

// KindOf returns the kind carried by err, or KindStorageFailure for errors
// that did not originate in this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorageFailure
}

func notFound(msg string) error     { return &Error{Kind: KindNotFound, Msg: msg} }
func conflict(msg string) error     { return &Error{Kind: KindConflict, Msg: msg} }
func invalidInput(msg string) error { return &Error{Kind: KindInvalidInput, Msg: msg} }
func unauthorized(msg string) error { return &Error{Kind: KindUnauthorized, Msg: msg} }

func storageFailure(op string, err error) error {
	return &Error{Kind: KindStorageFailure, Msg: op, Err: err}
}

// classify converts an error escaping a transaction into a domain error.
// Errors already produced by this package pass through untouched.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &Error{Kind: KindConflict, Msg: "record already exists", Err: err}
	}
	return storageFailure(op, err)
}
