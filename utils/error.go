package utils

import (
	"errors"

	"gorm.io/gorm"
)

// Error taxonomy used across handlers and models:
//   AuthError       - no/invalid session, wrong role, foreign ownership
//   ValidationError - missing/out-of-range required fields (client-side fixable)
//   NotFoundError   - a referenced record is absent when required
//   RemoteError     - opaque failure from an external collaborator; non-retryable here
//
// Handlers map these onto HTTP statuses; everything else is surfaced with its
// literal description.

type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return e.Reason }

func NewAuthError(reason string) error { return &AuthError{Reason: reason} }

type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func NewValidationError(reason string) error { return &ValidationError{Reason: reason} }

type NotFoundError struct {
	Reason string
}

func (e *NotFoundError) Error() string { return e.Reason }

func NewNotFoundError(reason string) error { return &NotFoundError{Reason: reason} }

type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *RemoteError) Unwrap() error { return e.Err }

func NewRemoteError(op string, err error) error { return &RemoteError{Op: op, Err: err} }

var ErrorRecordNotFound = NewNotFoundError("record not found")

// IsRecordMissing reports whether err is gorm's empty-result error, possibly
// wrapped. Lookup helpers use it to keep a missing row distinct from a failed
// query; only the former may be treated as "not found".
func IsRecordMissing(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
