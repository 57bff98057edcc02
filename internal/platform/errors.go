package platform

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed enumeration of provider failure categories. Raw
// provider codes (REST error strings, gRPC status codes) are mapped into a
// kind exactly once, at this package's boundary.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindInvalidCredential
	KindEmailExists
	KindPermissionDenied
	KindNotFound
	KindUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidCredential:
		return "invalid_credential"
	case KindEmailExists:
		return "email_exists"
	case KindPermissionDenied:
		return "permission_denied"
	case KindNotFound:
		return "not_found"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Error is a typed provider error. Code keeps the raw provider code for
// logging; user-facing messaging is decided by callers from Kind alone.
type Error struct {
	Kind ErrorKind
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("provider %s (%s): %v", e.Kind, e.Code, e.Err)
	}
	return fmt.Sprintf("provider %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(kind ErrorKind, code string, err error) *Error {
	return &Error{Kind: kind, Code: code, Err: err}
}

// KindOf extracts the error kind, KindInternal for anything untyped.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindInternal
}

func IsPermissionDenied(err error) bool { return KindOf(err) == KindPermissionDenied }
func IsEmailExists(err error) bool      { return KindOf(err) == KindEmailExists }
func IsInvalidCredential(err error) bool {
	return KindOf(err) == KindInvalidCredential
}
