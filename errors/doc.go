// Package errors defines the error taxonomy for the tadata SDK.
//
// Every error returned by the SDK belongs to a closed set of four variants,
// each carrying a machine-readable [Code]:
//
//   - [SpecInvalidError] (CodeSpecInvalid): the OpenAPI document could not be
//     sourced, parsed, or failed structural validation, locally or at the
//     deployment service.
//   - [AuthError] (CodeAuth): the API key is missing or was rejected.
//   - [APIError] (CodeAPI): the deployment service answered with an
//     unexpected status, or a success body that violates its contract.
//   - [NetworkError] (CodeNetwork): the service was unreachable or the
//     connection failed mid-exchange.
//
// # Inspecting errors
//
// Callers branch on the variant with the predicate helpers or with [As]:
//
//	res, err := tadata.Deploy(ctx, req)
//	var specErr *sdkerrors.SpecInvalidError
//	if sdkerrors.As(err, &specErr) {
//	    for _, detail := range specErr.Details {
//	        fmt.Println(" -", detail)
//	    }
//	}
//
// All variants implement [Error] and support [Unwrap], so wrapped causes
// (parser errors, transport errors, context cancellation) stay reachable
// through the chain.
//
// # Wrapping helpers
//
// The package re-exports the wrapping helpers used throughout the module
// ([New], [Newf], [Wrap], [Wrapf], [Is], [As]) so call sites need a single
// errors import.
package errors
