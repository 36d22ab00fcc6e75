package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFileNotFound is the sentinel behind upload precondition failures.
var ErrFileNotFound = errors.New("file does not exist")

// NotFoundError reports a local file that must exist before a request is sent.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrFileNotFound, e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return ErrFileNotFound
}

// ValidationError reports a missing or malformed argument caught before
// any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrorEnvelope is the error payload the platform returns with non-2xx
// responses.
type ErrorEnvelope struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	Exception        string `json:"exception,omitempty"`
	Timestamp        int64  `json:"timestamp,omitempty"`
	Duration         int64  `json:"duration,omitempty"`
}

// APIError represents an error response from the API
type APIError struct {
	StatusCode int
	Envelope   ErrorEnvelope
	RequestID  string
}

func (e *APIError) Error() string {
	msg := e.Envelope.ErrorDescription
	if msg == "" {
		msg = e.Envelope.Error
	}
	if msg == "" {
		msg = "API request failed"
	} else if e.Envelope.Error != "" && e.Envelope.ErrorDescription != "" {
		msg = e.Envelope.Error + ": " + e.Envelope.ErrorDescription
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, msg)
}

// Code classifies the error by HTTP status.
func (e *APIError) Code() ErrorCode {
	return ErrorCodeFromStatus(e.StatusCode)
}

// AuthError represents a failure to obtain a bearer token.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication error: %s", e.Reason)
}

// IsAuthError checks if the error is an authentication error.
func IsAuthError(err error) bool {
	var e *AuthError
	if errors.As(err, &e) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401
	}
	return false
}

// IsNotFoundError checks if the error indicates a resource or local file
// was not found.
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrFileNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404 ||
			strings.Contains(strings.ToLower(apiErr.Envelope.Error), "not_found")
	}
	return false
}

// IsValidationError checks if the error is a local argument error.
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func requireArg(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "must not be empty"}
	}
	return nil
}
