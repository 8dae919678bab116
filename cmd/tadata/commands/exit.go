package commands

import (
	"fmt"

	"github.com/tadata-org/tadata-sdk-go/errors"
)

// Exit codes for the CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, bad spec,
	// missing credentials).
	ExitUser = 1

	// ExitSystem indicates a system-related error (network, service failures).
	ExitSystem = 2
)

// ExitError wraps an error with an exit code and optional suggestion.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// asExitError classifies a deployment failure into an ExitError. Spec and
// credential problems are the user's to fix; transport and service failures
// are not.
func asExitError(err error) *ExitError {
	switch {
	case errors.IsAuth(err):
		return NewUserError(err, "Run 'tadata auth login' or set TADATA_API_KEY.")
	case errors.IsSpecInvalid(err):
		return NewUserError(err, "")
	case errors.IsNetwork(err):
		return NewSystemError(err, "Check your connection and the service URL, then try again.")
	case errors.IsAPI(err):
		return NewSystemError(err, "")
	default:
		return &ExitError{Err: err, Code: ExitUser}
	}
}
