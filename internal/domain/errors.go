package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig signals a search configuration that fails local validation.
	ErrInvalidConfig = errors.New("invalid search configuration")
	// ErrEmptyQuery signals a search with an empty query string.
	ErrEmptyQuery = errors.New("query is required")
	// ErrOperationInFlight signals that another session-mutating operation is active.
	ErrOperationInFlight = errors.New("operation already in flight")

	// ErrConnectivity signals a connection failure or timeout reaching the backend.
	ErrConnectivity = errors.New("backend unreachable")
	// ErrServerTransient signals a transient backend failure (502/503/504).
	ErrServerTransient = errors.New("backend temporarily unavailable")
	// ErrServerApplication signals a non-transient backend error response.
	ErrServerApplication = errors.New("backend rejected request")
)

// StatusError wraps a non-2xx backend response with its status code and body.
// It unwraps to ErrServerTransient for 502/503/504 and ErrServerApplication
// for everything else, so callers can classify with errors.Is().
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Code)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	switch e.Code {
	case 502, 503, 504:
		return ErrServerTransient
	default:
		return ErrServerApplication
	}
}

// NewStatusError creates a StatusError from a response status and body excerpt.
func NewStatusError(code int, message string) error {
	return &StatusError{Code: code, Message: message}
}

// IsRetryable reports whether an error is worth another attempt:
// connectivity failures and transient server errors.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConnectivity) || errors.Is(err, ErrServerTransient)
}
