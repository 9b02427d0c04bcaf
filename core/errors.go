package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for comparison with errors.Is().
var (
	// Session errors
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrRoleMismatch     = errors.New("role mismatch")

	// Request errors
	ErrRequestFailed      = errors.New("request failed")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Configuration errors
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// Draft order errors
	ErrEmptyDraft     = errors.New("draft order has no items")
	ErrNoTable        = errors.New("table number not set")
	ErrSubmitInFlight = errors.New("submission already in progress")
	ErrOrderRejected  = errors.New("order rejected by server")
)

// ClientError provides structured error information with context.
// It implements the error interface and supports error wrapping.
type ClientError struct {
	Op      string // Operation that failed (e.g., "client.CreateOrder")
	Kind    string // Error kind (e.g., "auth", "read", "write")
	Message string // Human-readable message extracted from the server response
	Err     error  // Underlying error for wrapping
}

func (e *ClientError) Error() string {
	if e.Op != "" && e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Op != "" && e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s error", e.Kind)
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *ClientError) Unwrap() error {
	return e.Err
}

// NewClientError creates a ClientError wrapping err.
func NewClientError(op, kind string, err error) *ClientError {
	return &ClientError{Op: op, Kind: kind, Err: err}
}

// IsAuthError reports whether err is a session/authentication failure.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, ErrRoleMismatch) ||
		errors.Is(err, ErrInvalidCredentials)
}
