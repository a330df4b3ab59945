package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Messages rendered to API clients.
const (
	MsgNotFound      = "Not found"
	MsgWrongProperty = "wrong property"
	MsgUserExist     = "user exist"
	MsgInvalidID     = "invalid id"
)

// HTTPStatuser is implemented by errors that know which HTTP status they map to.
type HTTPStatuser interface {
	HTTPStatus() int
}

// ValidationError represents a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// HTTPStatus returns 400
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns 404
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// ConflictError represents a uniqueness violation such as a duplicate email.
// It is reported to clients as a bad request.
type ConflictError struct {
	Resource string
	Message  string
}

// NewConflictError creates a new conflict error
func NewConflictError(resource, message string) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s already exists", e.Resource)
}

// HTTPStatus returns 400
func (e *ConflictError) HTTPStatus() int {
	return http.StatusBadRequest
}

// PersistenceError represents a failed read, commit or rollback in the store.
type PersistenceError struct {
	Err error
}

// NewPersistenceError wraps a store failure
func NewPersistenceError(err error) *PersistenceError {
	return &PersistenceError{Err: err}
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("error %v", e.Err)
	}
	return "error"
}

// Unwrap returns the wrapped error
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns 500
func (e *PersistenceError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// HTTPStatus returns the status code carried by err, or 500 when err does not carry one.
func HTTPStatus(err error) int {
	var s HTTPStatuser
	if stderrors.As(err, &s) {
		return s.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// Message returns the client-facing text for err.
// Errors outside the taxonomy are reported the same way as persistence failures.
func Message(err error) string {
	var s HTTPStatuser
	if stderrors.As(err, &s) {
		if e, ok := s.(error); ok {
			return e.Error()
		}
	}
	return NewPersistenceError(err).Error()
}
