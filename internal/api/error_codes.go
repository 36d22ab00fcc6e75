package api

import (
	"context"
	"errors"
	"fmt"
)

// ErrorCode represents machine-readable error codes for host error handling.
type ErrorCode string

const (
	// ErrBadRequest indicates a malformed request (HTTP 400).
	ErrBadRequest ErrorCode = "bad_request"
	// ErrUnauthorized indicates the bearer token is missing or rejected (HTTP 401).
	ErrUnauthorized ErrorCode = "unauthorized"
	// ErrForbidden indicates the tenant lacks permission (HTTP 403).
	ErrForbidden ErrorCode = "forbidden"
	// ErrNotFound indicates the requested resource or local file does not exist.
	ErrNotFound ErrorCode = "not_found"
	// ErrConflict indicates a duplicate resource, e.g. an existing username (HTTP 400 duplicate_unique_property_exists or 409).
	ErrConflict ErrorCode = "conflict"
	// ErrPayloadTooLarge indicates an upload exceeded the platform limit (HTTP 413).
	ErrPayloadTooLarge ErrorCode = "payload_too_large"
	// ErrValidation indicates input validation failed locally.
	ErrValidation ErrorCode = "validation_failed"
	// ErrRateLimited indicates too many requests (HTTP 429).
	ErrRateLimited ErrorCode = "rate_limited"
	// ErrServerError indicates an internal server error (HTTP 5xx).
	ErrServerError ErrorCode = "server_error"
	// ErrTimeout indicates the request timed out.
	ErrTimeout ErrorCode = "timeout"
	// ErrUnknown indicates an unknown or unclassified error.
	ErrUnknown ErrorCode = "unknown"
)

// IsRetryable returns true if errors with this code may succeed on retry.
// The client never retries; this is advice for the host.
func (c ErrorCode) IsRetryable() bool {
	switch c {
	case ErrRateLimited, ErrServerError, ErrTimeout:
		return true
	default:
		return false
	}
}

// Suggestion returns a human-readable suggestion for resolving this error.
func (c ErrorCode) Suggestion() string {
	switch c {
	case ErrUnauthorized:
		return "Check client_id/client_secret or run 'em auth login'"
	case ErrForbidden:
		return "Check the application's permissions"
	case ErrNotFound:
		return "Verify the user, group, room, or file exists"
	case ErrConflict:
		return "The resource already exists"
	case ErrPayloadTooLarge:
		return "Upload a smaller file"
	case ErrRateLimited:
		return "Wait a moment and retry"
	case ErrValidation:
		return "Check the input values"
	case ErrBadRequest:
		return "Check the request format and parameters"
	case ErrServerError:
		return "The server encountered an error; try again later"
	case ErrTimeout:
		return "The request timed out; check network connectivity and retry"
	default:
		return ""
	}
}

// ErrorCodeFromStatus maps an HTTP status code to an ErrorCode.
func ErrorCodeFromStatus(statusCode int) ErrorCode {
	switch statusCode {
	case 400:
		return ErrBadRequest
	case 401:
		return ErrUnauthorized
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	case 409:
		return ErrConflict
	case 413:
		return ErrPayloadTooLarge
	case 429:
		return ErrRateLimited
	default:
		if statusCode >= 500 && statusCode < 600 {
			return ErrServerError
		}
		return ErrUnknown
	}
}

// StructuredError provides machine-readable error information.
type StructuredError struct {
	Code       ErrorCode      `json:"code"`
	Message    string         `json:"message"`
	Retryable  bool           `json:"retryable"`
	Suggestion string         `json:"suggestion,omitempty"`
	Context    map[string]any `json:"context,omitempty"`
}

func (e *StructuredError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewStructuredError creates a StructuredError from an ErrorCode and message.
func NewStructuredError(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:       code,
		Message:    message,
		Retryable:  code.IsRetryable(),
		Suggestion: code.Suggestion(),
	}
}

// StructuredErrorFromError converts any error to a StructuredError.
func StructuredErrorFromError(err error) *StructuredError {
	if err == nil {
		return nil
	}

	var se *StructuredError
	if errors.As(err, &se) {
		return se
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		code := apiErr.Code()
		if apiErr.Envelope.Error == "duplicate_unique_property_exists" {
			code = ErrConflict
		}
		se := NewStructuredError(code, apiErr.Error())
		se.Context = map[string]any{"status_code": apiErr.StatusCode}
		if apiErr.Envelope.Error != "" {
			se.Context["error"] = apiErr.Envelope.Error
		}
		if apiErr.Envelope.Exception != "" {
			se.Context["exception"] = apiErr.Envelope.Exception
		}
		if apiErr.RequestID != "" {
			se.Context["request_id"] = apiErr.RequestID
		}
		return se
	}

	var nf *NotFoundError
	if errors.As(err, &nf) {
		se := NewStructuredError(ErrNotFound, nf.Error())
		se.Context = map[string]any{"path": nf.Path}
		return se
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		se := NewStructuredError(ErrValidation, ve.Error())
		se.Context = map[string]any{"field": ve.Field}
		return se
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return NewStructuredError(ErrUnauthorized, authErr.Error())
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewStructuredError(ErrTimeout, err.Error())
	}

	return NewStructuredError(ErrUnknown, err.Error())
}
