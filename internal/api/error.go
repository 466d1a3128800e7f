package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the typed failure for all backend interactions.
//
// Status 0 means the request never produced an HTTP response (network or
// request-setup failure). Any other status is the backend's response code,
// with Message taken from the JSON error body when one was present.
type Error struct {
	Status  int
	Message string
	Details map[string]any
	cause   error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("network error: %s", e.Message)
	}
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// IsTransport reports whether the failure happened before any HTTP response arrived.
func (e *Error) IsTransport() bool { return e.Status == 0 }

// IsAuth reports whether the backend rejected the session.
func (e *Error) IsAuth() bool { return e.Status == http.StatusUnauthorized }

// IsNotFound reports whether the backend could not find the resource.
func (e *Error) IsNotFound() bool { return e.Status == http.StatusNotFound }

// AsError extracts a [*Error] from an error chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func transportError(err error) *Error {
	return &Error{Status: 0, Message: err.Error(), Details: map[string]any{}, cause: err}
}
