package exitcode

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/felixgeelhaar/merchdesk/internal/errors"
	"github.com/felixgeelhaar/merchdesk/internal/platform"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication or authorization failure
	AuthError = 3

	// NotFound indicates a requested entity does not exist
	NotFound = 4

	// NetworkError indicates a network connectivity issue
	NetworkError = 5

	// ServerError indicates the backend reported an internal failure
	ServerError = 6

	// Interrupted indicates the operation was cancelled by the user
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	// Typed API errors carry the status code directly.
	var apiErr *platform.APIError
	if stderrors.As(err, &apiErr) {
		switch {
		case apiErr.IsUnauthorized(), apiErr.IsForbidden():
			return AuthError
		case apiErr.IsNotFound():
			return NotFound
		case apiErr.IsServerError():
			return ServerError
		}
		return GeneralError
	}

	if stderrors.Is(err, platform.ErrNetwork) {
		return NetworkError
	}

	var merchErr *errors.MerchError
	if stderrors.As(err, &merchErr) {
		switch merchErr.Code {
		case errors.ErrCodeAuthInvalidCredentials,
			errors.ErrCodeAuthNotLoggedIn,
			errors.ErrCodeAuthSessionExpired,
			errors.ErrCodeAuthRenewalFailed,
			errors.ErrCodeAuthTokenMalformed:
			return AuthError
		case errors.ErrCodeAPIUnreachable:
			return NetworkError
		case errors.ErrCodeAPIServer:
			return ServerError
		case errors.ErrCodeAPINotFound:
			return NotFound
		}
		return GeneralError
	}

	// Fall back to message sniffing for errors from third-party code.
	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "unauthorized") || strings.Contains(errMsg, "authentication") {
		return AuthError
	}
	if strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "unreachable") {
		return NetworkError
	}
	if strings.Contains(errMsg, "unknown command") || strings.Contains(errMsg, "unknown flag") ||
		strings.Contains(errMsg, "required flag") {
		return UsageError
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case AuthError:
		return "Authentication error"
	case NotFound:
		return "Entity not found"
	case NetworkError:
		return "Network error"
	case ServerError:
		return "Backend server error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
