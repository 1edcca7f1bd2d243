package api

import (
	"errors"
	"fmt"
)

// ErrFetchFailed is matched by every error FetchRandomImages returns.
// Transport failures, non-2xx responses and undecodable bodies are not
// distinguished beyond the message and optional status code.
var ErrFetchFailed = errors.New("fetch failed")

// FetchError carries a human-readable message for a failed fetch.
type FetchError struct {
	// StatusCode is the HTTP status for non-2xx responses, 0 otherwise.
	StatusCode int
	// Message is safe to show to the user; it never contains the API key.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

func newFetchError(status int, err error, format string, args ...interface{}) *FetchError {
	return &FetchError{
		StatusCode: status,
		Message:    fmt.Sprintf(format, args...),
		Err:        err,
	}
}

// Error returns the user-facing message.
func (e *FetchError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFetchFailed.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}
