package keeper

import (
	"fmt"
	"net/http"
)

// NotFoundError is returned when no live item carries the requested id.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// StatusCode returns the HTTP status code for this error.
func (e *NotFoundError) StatusCode() int {
	return http.StatusNotFound
}

// Hint returns a user-friendly suggestion for resolving this error.
func (e *NotFoundError) Hint() string {
	return fmt.Sprintf("No %s with id %d is live. Ids are never reused, so a deleted %s stays gone. List the %ss to see current ids.", e.Kind, e.ID, e.Kind, e.Kind)
}

// ValidationError is returned when an entry's fields fail a constraint.
type ValidationError struct {
	Kind    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return e.Message
}

// StatusCode returns the HTTP status code for this error.
func (e *ValidationError) StatusCode() int {
	return http.StatusBadRequest
}

// Hint returns a user-friendly suggestion for resolving this error.
func (e *ValidationError) Hint() string {
	if e.Field != "" {
		return fmt.Sprintf("Check the value of field %q.", e.Field)
	}
	return "Check the required fields for this entry kind."
}

// AlreadyDoneError is returned when a done transition is requested for an
// item whose flag is already set. It is informational: the item is
// untouched and the caller can word its message differently from a fresh
// transition.
type AlreadyDoneError struct {
	Kind string
	ID   int64
	Verb string
}

func (e *AlreadyDoneError) Error() string {
	return fmt.Sprintf("%s %d is already %s", e.Kind, e.ID, e.Verb)
}

// StatusCode returns the HTTP status code for this error.
func (e *AlreadyDoneError) StatusCode() int {
	return http.StatusConflict
}

// Hint returns a user-friendly suggestion for resolving this error.
func (e *AlreadyDoneError) Hint() string {
	return fmt.Sprintf("The %s was %s earlier; no change was made.", e.Kind, e.Verb)
}

// StatusCodeError is an interface for errors that have an HTTP status code.
type StatusCodeError interface {
	error
	StatusCode() int
}

// HintError is an interface for errors that provide resolution hints.
type HintError interface {
	error
	Hint() string
}

// ToErrorResponse converts an error to an ErrorResponse struct.
func ToErrorResponse(err error) *ErrorResponse {
	resp := &ErrorResponse{}

	switch e := err.(type) {
	case *NotFoundError:
		resp.Error = e.Error()
		resp.Code = "not_found"
		resp.Kind = e.Kind
		resp.ID = e.ID
		resp.StatusCode = e.StatusCode()
		resp.Hint = e.Hint()
	case *ValidationError:
		resp.Error = "invalid entry"
		resp.Code = "validation_failed"
		resp.Kind = e.Kind
		resp.Detail = e.Message
		resp.Field = e.Field
		resp.StatusCode = e.StatusCode()
		resp.Hint = e.Hint()
	case *AlreadyDoneError:
		resp.Error = e.Error()
		resp.Code = "already_done"
		resp.Kind = e.Kind
		resp.ID = e.ID
		resp.StatusCode = e.StatusCode()
		resp.Hint = e.Hint()
	default:
		resp.Error = "internal error"
		resp.Code = "internal"
		resp.Detail = err.Error()
		resp.StatusCode = http.StatusInternalServerError
	}

	return resp
}
