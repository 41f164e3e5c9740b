package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure kinds carried by unsuccessful results
var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("not found")
	ErrPersistence = errors.New("persistence error")
)

// SuccessMessage is the note attached to every successful result
const SuccessMessage = "The process was completed successfully."

// Status is the outcome code of an operation
type Status int

const (
	StatusOK Status = iota
	StatusBadRequest
	StatusNotFound
	StatusInternalServerError
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusBadRequest:
		return "bad_request"
	case StatusNotFound:
		return "not_found"
	default:
		return "internal_server_error"
	}
}

// HTTPStatus maps the status to its transport code
func (s Status) HTTPStatus() int {
	switch s {
	case StatusOK:
		return http.StatusOK
	case StatusBadRequest:
		return http.StatusBadRequest
	case StatusNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Kind returns the failure kind for the status, or nil for StatusOK
func (s Status) Kind() error {
	switch s {
	case StatusOK:
		return nil
	case StatusBadRequest:
		return ErrValidation
	case StatusNotFound:
		return ErrNotFound
	default:
		return ErrPersistence
	}
}

// Result is the uniform outcome returned by every repository and service operation.
//
// A successful result always has StatusOK and an empty ErrorMessage. A failed
// result always has a zero Payload and one of the failure statuses.
type Result[T any] struct {
	Payload      T
	IsSuccessful bool
	Message      string
	ErrorMessage string
	StatusCode   Status
}

// Success builds a successful result carrying payload
func Success[T any](payload T) Result[T] {
	return Result[T]{
		Payload:      payload,
		IsSuccessful: true,
		Message:      SuccessMessage,
		StatusCode:   StatusOK,
	}
}

// Failure builds a failed result. StatusOK is not a failure status and is
// recorded as StatusInternalServerError.
func Failure[T any](status Status, errMessage string) Result[T] {
	if status == StatusOK {
		status = StatusInternalServerError
	}
	return Result[T]{
		ErrorMessage: errMessage,
		StatusCode:   status,
	}
}

// Err returns nil for a successful result, otherwise an error wrapping the
// failure kind so callers can match it with errors.Is.
func (r Result[T]) Err() error {
	if r.IsSuccessful {
		return nil
	}
	kind := r.StatusCode.Kind()
	if kind == nil {
		kind = ErrPersistence
	}
	return fmt.Errorf("%w: %s", kind, r.ErrorMessage)
}
