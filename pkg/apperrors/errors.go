package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrNoSession       = errors.New("no active session")
	ErrUnknownDecision = errors.New("unknown review decision")
	ErrInvalidStatus   = errors.New("invalid status")
)

// DefaultRequestMessage is used when the upstream gives no message of its own.
const DefaultRequestMessage = "Request failed"

// RequestError is the single normalized error returned for every failed upstream call.
// StatusCode is zero when the request never produced a response.
type RequestError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether the request failed before a response arrived.
func (e *RequestError) IsTransport() bool {
	return e.StatusCode == 0
}

// ValidationError is a local validation failure. No upstream call is made when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AsRequestError unwraps err into a *RequestError when possible.
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}

// AsValidationError unwraps err into a *ValidationError when possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr, true
	}
	return nil, false
}
