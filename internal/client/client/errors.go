package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable wraps transport failures: the backend could not be reached.
	ErrUnavailable = errors.New("server unavailable")
	// ErrNotLoggedIn is returned before any network call when an action needs a session.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrActionPending is returned when another user action is still running.
	ErrActionPending = errors.New("another action is in progress")
)

// ValidationError reports bad local input. No request was sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// HTTPError is a non-2xx answer from the backend.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %s", e.Status)
	}
	return fmt.Sprintf("HTTP %s: %s", e.Status, e.Body)
}

// DecodeError means a 2xx response body was not the expected JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode response: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// PresignError means the backend refused or failed to issue an upload URL.
type PresignError struct {
	Err error
}

func (e *PresignError) Error() string { return fmt.Sprintf("presign upload: %v", e.Err) }
func (e *PresignError) Unwrap() error { return e.Err }

// UploadError means the object store rejected the direct PUT, or it could
// not be reached.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return fmt.Sprintf("upload image: %v", e.Err) }
func (e *UploadError) Unwrap() error { return e.Err }
