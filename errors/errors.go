package errors

import (
	"strings"
)

// Code identifies an error variant in machine-readable form.
type Code string

// Codes for the four error variants.
const (
	// CodeSpecInvalid marks OpenAPI sourcing, parsing, or validation failures.
	CodeSpecInvalid Code = "spec_invalid"

	// CodeAuth marks missing or rejected credentials.
	CodeAuth Code = "auth_error"

	// CodeAPI marks unexpected deployment service responses.
	CodeAPI Code = "api_error"

	// CodeNetwork marks transport-level failures.
	CodeNetwork Code = "network_error"
)

// Error is implemented by every error the SDK returns. Branching on
// ErrorCode is equivalent to type-switching over the four variants.
type Error interface {
	error

	// ErrorCode reports which variant this error is.
	ErrorCode() Code
}

// Compile-time variant checks.
var (
	_ Error = (*SpecInvalidError)(nil)
	_ Error = (*AuthError)(nil)
	_ Error = (*APIError)(nil)
	_ Error = (*NetworkError)(nil)
)

// SpecInvalidError reports an OpenAPI document that could not be resolved
// into a valid spec: an ambiguous or missing source, a parse failure, one or
// more structural rule violations, or a service-side validation rejection.
type SpecInvalidError struct {
	// Message summarizes the failure.
	Message string

	// Details lists every violated rule or underlying parser message.
	// Validation collects all violations before failing, so the list is
	// complete rather than stopping at the first problem.
	Details []string

	// Err is the underlying cause, if any.
	Err error
}

// Error returns the message, followed by the details when present.
func (e *SpecInvalidError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Details, "; ")
}

// ErrorCode returns CodeSpecInvalid.
func (e *SpecInvalidError) ErrorCode() Code { return CodeSpecInvalid }

// Unwrap returns the underlying cause.
func (e *SpecInvalidError) Unwrap() error { return e.Err }

// AuthError reports a missing API key or a credential the deployment service
// rejected (HTTP 401 or 403).
type AuthError struct {
	// Message summarizes the failure.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

func (e *AuthError) Error() string { return e.Message }

// ErrorCode returns CodeAuth.
func (e *AuthError) ErrorCode() Code { return CodeAuth }

// Unwrap returns the underlying cause.
func (e *AuthError) Unwrap() error { return e.Err }

// APIError reports a deployment service response that is neither success nor
// one of the more specific failure classes: an unexpected status code, or a
// success status whose body violates the service contract.
type APIError struct {
	// Message summarizes the failure, preferring the service's own message
	// when the response carried one.
	Message string

	// StatusCode is the HTTP status of the response, when one was received.
	StatusCode int

	// Err is the underlying cause, if any.
	Err error
}

func (e *APIError) Error() string { return e.Message }

// ErrorCode returns CodeAPI.
func (e *APIError) ErrorCode() Code { return CodeAPI }

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error { return e.Err }

// NetworkError reports a transport-level failure: connection refused, DNS
// resolution, TLS negotiation, a timeout or cancellation, or a connection
// that died before the full response arrived.
type NetworkError struct {
	// Message summarizes the failure.
	Message string

	// Err is the transport error that caused the failure.
	Err error
}

// Error returns the message, followed by the transport cause when present.
func (e *NetworkError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// ErrorCode returns CodeNetwork.
func (e *NetworkError) ErrorCode() Code { return CodeNetwork }

// Unwrap returns the transport cause.
func (e *NetworkError) Unwrap() error { return e.Err }

// IsSpecInvalid reports whether any error in err's chain is a *SpecInvalidError.
func IsSpecInvalid(err error) bool {
	var target *SpecInvalidError
	return As(err, &target)
}

// IsAuth reports whether any error in err's chain is an *AuthError.
func IsAuth(err error) bool {
	var target *AuthError
	return As(err, &target)
}

// IsAPI reports whether any error in err's chain is an *APIError.
func IsAPI(err error) bool {
	var target *APIError
	return As(err, &target)
}

// IsNetwork reports whether any error in err's chain is a *NetworkError.
func IsNetwork(err error) bool {
	var target *NetworkError
	return As(err, &target)
}
