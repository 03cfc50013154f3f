package handler

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidationFailed Kind = iota + 1
	KindDuplicateEmail
	KindMissingCredentials
	KindInvalidCredentials
	KindInvalidAppointmentData
	KindPersistenceFailed
)

func (k Kind) String() string {
	switch k {
	case KindValidationFailed:
		return "ValidationFailed"
	case KindDuplicateEmail:
		return "DuplicateEmail"
	case KindMissingCredentials:
		return "MissingCredentials"
	case KindInvalidCredentials:
		return "InvalidCredentials"
	case KindInvalidAppointmentData:
		return "InvalidAppointmentData"
	case KindPersistenceFailed:
		return "PersistenceFailed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the outcome of a failed handler call. Detail is safe to show the
// caller; Err keeps the underlying cause for logs and errors.Is.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Err.Error() != e.Detail {
		return e.Kind.String() + ": " + e.Detail + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Detail
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or 0 when err is not a handler error.
func KindOf(err error) Kind {
	var herr *Error
	if errors.As(err, &herr) {
		return herr.Kind
	}
	return 0
}

const (
	msgDuplicateEmail     = "Email already registered."
	msgMissingCredentials = "Email and password are required."
	msgInvalidCredentials = "Invalid credentials."
)

func validationFailed(err error) *Error {
	return &Error{Kind: KindValidationFailed, Detail: err.Error(), Err: err}
}

func persistenceFailed(err error) *Error {
	return &Error{Kind: KindPersistenceFailed, Detail: err.Error(), Err: err}
}
