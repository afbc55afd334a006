package errors

import (
	"errors"
	"fmt"
)

// Failure classes. Every gateway error wraps exactly one of these so callers
// can branch with errors.Is without inspecting status codes.
var (
	ErrValidation = errors.New("validation failed")
	ErrAuth       = errors.New("authentication required")
	ErrNotFound   = errors.New("resource not found")
	ErrNetwork    = errors.New("upstream unreachable")
	ErrUpstream   = errors.New("upstream request failed")
)

type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// APIError is the single structured failure shape the gateway surfaces.
// StatusCode is 0 for transport-level failures.
type APIError struct {
	Class       error
	StatusCode  int
	Message     string
	FieldErrors []FieldError
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Class
}

func NewValidation(message string, fields ...FieldError) *APIError {
	return &APIError{
		Class:       ErrValidation,
		StatusCode:  0,
		Message:     message,
		FieldErrors: fields,
	}
}

// Classify maps an HTTP status to a failure class. Status 0 means the request
// never produced a response.
func Classify(statusCode int) error {
	switch {
	case statusCode == 0:
		return ErrNetwork
	case statusCode == 401 || statusCode == 403:
		return ErrAuth
	case statusCode == 404:
		return ErrNotFound
	case statusCode >= 400 && statusCode < 500:
		return ErrValidation
	default:
		return ErrUpstream
	}
}
