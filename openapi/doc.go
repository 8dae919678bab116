// Package openapi models the OpenAPI documents accepted by the deployment
// service.
//
// A [Spec] is an immutable handle on a structurally valid document. It is
// built from an in-memory document, raw JSON or YAML bytes, or a file, and
// the input is deep-copied so later mutations by the caller cannot leak into
// a spec that already passed validation.
//
// Validation is deliberately shallow: it checks the handful of structural
// rules the deployment service needs to locate and identify an API (a
// version-like openapi field, info.title, info.version, and a paths mapping)
// and collects every violation before failing, so a caller fixing a document
// sees the full list at once. Anything else in the document, including
// vendor extensions and fields from newer OpenAPI revisions, passes through
// untouched.
package openapi
