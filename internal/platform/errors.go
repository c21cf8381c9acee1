package platform

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for failures that never produced an HTTP status.
var (
	// ErrNetwork wraps transport-level failures (DNS, refused connection, timeout).
	ErrNetwork = errors.New("backend unreachable")

	// ErrMalformedResponse wraps responses whose body could not be decoded.
	ErrMalformedResponse = errors.New("malformed response")
)

// APIError represents an error response from the backend.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int `json:"-"`
	// Code is the backend error code (e.g., "unauthorized", "not_found").
	Code string `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized returns true if the error is an authentication error.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.Code == "unauthorized"
}

// IsForbidden returns true if the error is a permission error.
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden || e.Code == "forbidden"
}

// IsNotFound returns true if the error is a not found error.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound || e.Code == "not_found"
}

// IsServerError returns true if the backend reported an internal failure.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// parseError parses an error response from the backend.
func parseError(statusCode int, body []byte) error {
	// Try the structured envelope first
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Code != "" {
		return &APIError{
			StatusCode: statusCode,
			Code:       envelope.Error.Code,
			Message:    envelope.Error.Message,
		}
	}

	// Try the flat format
	var flat struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}

	if err := json.Unmarshal(body, &flat); err == nil && flat.Message != "" {
		return &APIError{
			StatusCode: statusCode,
			Code:       flat.Code,
			Message:    flat.Message,
		}
	}

	// Fallback to the raw body
	return &APIError{
		StatusCode: statusCode,
		Code:       codeForStatus(statusCode),
		Message:    string(body),
	}
}

func codeForStatus(statusCode int) string {
	switch statusCode {
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	default:
		if statusCode >= 500 {
			return "server_error"
		}
		return http.StatusText(statusCode)
	}
}

// IsAPIError checks if an error is an API error and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
