package shared

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is matches any DomainError carrying the same code, so
// errors.Is(NewNotFoundError("quote"), ErrNotFound) holds.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error kinds surfaced by every workflow
const (
	CodeNotAuthenticated   = "NOT_AUTHENTICATED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeStoreUnavailable   = "STORE_UNAVAILABLE"
	CodePreconditionFailed = "PRECONDITION_FAILED"
	CodeConflict           = "CONCURRENCY_CONFLICT"
	CodeInvalidState       = "INVALID_STATE"
	CodeAlreadyExists      = "ALREADY_EXISTS"
)

// Common domain errors
var (
	ErrNotAuthenticated    = NewDomainError(CodeNotAuthenticated, "Authentication required")
	ErrForbidden           = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrValidationFailed    = NewDomainError(CodeValidationFailed, "Invalid input provided")
	ErrStoreUnavailable    = NewDomainError(CodeStoreUnavailable, "Data store unavailable")
	ErrPreconditionFailed  = NewDomainError(CodePreconditionFailed, "Precondition failed")
	ErrConcurrencyConflict = NewDomainError(CodeConflict, "Resource was modified by another user")
	ErrInvalidState        = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrAlreadyExists       = NewDomainError(CodeAlreadyExists, "Resource already exists")
)

// NewNotFoundError reports a missing entity of the given kind
func NewNotFoundError(entity string) *DomainError {
	return NewDomainError(CodeNotFound, entity+" not found")
}

// NewValidationError reports rejected input
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidationFailed, message)
}

// NewForbiddenError reports a denied action
func NewForbiddenError(message string) *DomainError {
	return NewDomainError(CodeForbidden, message)
}

// NewPreconditionError reports an operation refused because of current data
func NewPreconditionError(message string) *DomainError {
	return NewDomainError(CodePreconditionFailed, message)
}

// NewInvalidStateError reports a rejected state transition
func NewInvalidStateError(message string) *DomainError {
	return NewDomainError(CodeInvalidState, message)
}

// NewStoreUnavailableError wraps a persistence failure
func NewStoreUnavailableError(cause error) *DomainError {
	return &DomainError{
		Code:    CodeStoreUnavailable,
		Message: "Data store unavailable",
		cause:   cause,
	}
}

// AsStoreError passes domain errors through unchanged and wraps anything
// else as StoreUnavailable.
func AsStoreError(err error) error {
	if err == nil {
		return nil
	}
	var de *DomainError
	if errors.As(err, &de) {
		return err
	}
	return NewStoreUnavailableError(err)
}
