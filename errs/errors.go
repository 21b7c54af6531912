// Package errs defines the error values business logic returns and the
// handlers translate into HTTP status codes.
package errs

import "fmt"

// ValidationError marks malformed, missing or inconsistent input. Maps to 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidation builds a ValidationError from a format string.
func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError marks an unknown id or an empty result set. Maps to 404.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func NewNotFound(format string, args ...any) *NotFoundError {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// InvalidIDError marks a malformed object id. Maps to 400.
type InvalidIDError struct {
	Msg string
}

func (e *InvalidIDError) Error() string { return e.Msg }

// DuplicateNameError marks a create that collides with an existing name. Maps to 400.
type DuplicateNameError struct {
	Msg string
}

func (e *DuplicateNameError) Error() string { return e.Msg }

// EmptyUpdateError marks a partial update that carries no recognized field. Maps to 400.
type EmptyUpdateError struct{}

func (e *EmptyUpdateError) Error() string { return "No valid fields provided for update." }
