package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Match them with errors.Is; use errors.As with *APIError for
// the HTTP status and server message.
var (
	ErrValidation = errors.New("validation error")
	ErrNetwork    = errors.New("network error")
	ErrTimeout    = errors.New("request timed out")
	ErrServer     = errors.New("server error")
	ErrClient     = errors.New("client error")
	ErrAuth       = errors.New("authentication error")

	// ErrUnauthorized matches client errors carrying status 401.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a classified failure. Status is 0 for failures that never got
// an HTTP response (validation, network, timeout).
type APIError struct {
	Kind    error
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

// Is matches the error kind, so errors.Is(err, ErrServer) works. A timeout
// is also a network error.
func (e *APIError) Is(target error) bool {
	if target == e.Kind {
		return true
	}
	if target == ErrUnauthorized {
		return e.Status == http.StatusUnauthorized
	}
	return e.Kind == ErrTimeout && target == ErrNetwork
}

// Retryable reports whether the failure is transient.
func (e *APIError) Retryable() bool {
	return e.Kind == ErrServer || e.Kind == ErrNetwork
}

func NewValidationError(msg string) error {
	return &APIError{Kind: ErrValidation, Message: msg}
}

func NewAuthError(msg string) error {
	return &APIError{Kind: ErrAuth, Message: msg}
}

func newNetworkError(err error) *APIError {
	msg := "Network error"
	if err != nil {
		msg = err.Error()
	}
	return &APIError{Kind: ErrNetwork, Message: msg, Err: err}
}

func newTimeoutError(err error) *APIError {
	return &APIError{Kind: ErrTimeout, Message: "Request timed out", Err: err}
}

func newStatusError(status int, msg string) *APIError {
	kind := ErrClient
	if status >= 500 && status <= 599 {
		kind = ErrServer
	}
	return &APIError{Kind: kind, Status: status, Message: msg}
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// ErrUnexpectedResponse reports a 2xx body whose shape cannot be decoded.
var ErrUnexpectedResponse = errors.New("unexpected response shape")
