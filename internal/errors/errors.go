package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeAuthInvalidCredentials ErrorCode = "AUTH-001"
	ErrCodeAuthNotLoggedIn        ErrorCode = "AUTH-002"
	ErrCodeAuthSessionExpired     ErrorCode = "AUTH-003"
	ErrCodeAuthRenewalFailed      ErrorCode = "AUTH-004"
	ErrCodeAuthTokenMalformed     ErrorCode = "AUTH-005"

	// API errors (API-001 to API-099)
	ErrCodeAPIUnauthorized ErrorCode = "API-001"
	ErrCodeAPIForbidden    ErrorCode = "API-002"
	ErrCodeAPINotFound     ErrorCode = "API-003"
	ErrCodeAPIServer       ErrorCode = "API-004"
	ErrCodeAPIUnreachable  ErrorCode = "API-005"
	ErrCodeAPIBadResponse  ErrorCode = "API-006"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigNotFound ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG-002"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeFileUnmarshal   ErrorCode = "IO-004"

	// Access-grant errors (GRANT-001 to GRANT-099)
	ErrCodeGrantUnknownKind ErrorCode = "GRANT-001"
	ErrCodeGrantApplyFailed ErrorCode = "GRANT-002"
)

// MerchError represents an enhanced error with code, suggestions, and documentation
type MerchError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *MerchError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *MerchError) Unwrap() error {
	return e.Cause
}

// New creates a new MerchError
func New(code ErrorCode, message string) *MerchError {
	return &MerchError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new MerchError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *MerchError {
	return &MerchError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *MerchError) WithSuggestion(suggestion string) *MerchError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *MerchError) WithSuggestions(suggestions ...string) *MerchError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *MerchError) WithDocs(url string) *MerchError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewNotLoggedInError creates an error for commands that require a session
func NewNotLoggedInError() *MerchError {
	return New(ErrCodeAuthNotLoggedIn, "not logged in").
		WithSuggestion("Run 'merchdesk auth login' to authenticate").
		WithSuggestion("Check that MERCHDESK_API_URL points at your backend")
}

// NewSessionExpiredError creates an error for a session that could not be renewed
func NewSessionExpiredError() *MerchError {
	return New(ErrCodeAuthSessionExpired, "session expired and could not be renewed").
		WithSuggestion("Run 'merchdesk auth login' to start a new session")
}

// NewConfigNotFoundError creates a configuration file not found error
func NewConfigNotFoundError(path string) *MerchError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithSuggestion("Run 'merchdesk config init' to create a default configuration").
		WithSuggestion("Check if the file path is correct")
}

// NewConfigInvalidError creates a configuration validation error
func NewConfigInvalidError(details string, cause error) *MerchError {
	return Wrap(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", details), cause).
		WithSuggestion("Run 'merchdesk config show' to inspect the effective configuration")
}

// NewFileWriteError creates a file write error
func NewFileWriteError(path string, cause error) *MerchError {
	return Wrap(ErrCodeFileWriteFailed, fmt.Sprintf("failed to write file: %s", path), cause).
		WithSuggestion("Check directory permissions").
		WithSuggestion("Verify there is free disk space")
}

// NewGrantUnknownKindError creates an error for an unrecognized grant kind
func NewGrantUnknownKindError(kind string) *MerchError {
	return New(ErrCodeGrantUnknownKind, fmt.Sprintf("unknown grant kind: %s", kind)).
		WithSuggestion("Use one of: brand, marketplace, shipping")
}
