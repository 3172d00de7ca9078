package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidState indicates that an operation is not allowed in the
// resource's current state (e.g. approving a document that is already
// an invoice).
var ErrInvalidState = errors.New("invalid state for operation")

// ErrReferentialIntegrity indicates that a deletion was blocked because
// other rows still reference the target (e.g. a customer with documents).
var ErrReferentialIntegrity = errors.New("resource is still referenced")

// AppError carries an HTTP-equivalent status code alongside the message
// so handlers can map repository failures without string matching.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a generic AppError wrapping an underlying cause.
// Used for transient store failures (code 500) that are propagated as-is
// and never retried by the core.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError creates an AppError that unwraps to ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// NewInvalidStateError creates an AppError that unwraps to ErrInvalidState.
func NewInvalidStateError(message string) *AppError {
	return &AppError{Code: 409, Message: message, Err: ErrInvalidState}
}

// NewReferentialIntegrityError creates an AppError that unwraps to
// ErrReferentialIntegrity.
func NewReferentialIntegrityError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrReferentialIntegrity}
}
