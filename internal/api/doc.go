// Package api implements the HTTP client for the tadata deployment service.
//
// The client makes exactly one attempt per call: retry policy belongs to the
// caller, and deadlines arrive through the request context. Responses are
// mapped onto the SDK error taxonomy, so code above this package never sees
// raw HTTP statuses:
//
//   - 401 and 403 become AuthError
//   - 422, or any body carrying a validation error code, becomes
//     SpecInvalidError with the service's rule violations attached
//   - other non-2xx statuses become APIError
//   - transport failures, including context cancellation, become NetworkError
//   - a 2xx response whose body cannot be decoded, or that lacks a
//     deployment id, becomes APIError, because the service broke its
//     contract
package api
