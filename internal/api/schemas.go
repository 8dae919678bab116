package api

import (
	"time"

	"github.com/tadata-org/tadata-sdk-go/openapi"
)

// DeploymentRequest is the JSON body for creating a deployment.
type DeploymentRequest struct {
	// OpenAPISpec is the validated document to deploy.
	OpenAPISpec *openapi.Spec `json:"openapi_spec"`

	// Name is an optional display name for the deployment.
	Name string `json:"name,omitempty"`

	// AuthConfig tells the deployed MCP server which request parts to
	// forward to the upstream API.
	AuthConfig AuthConfig `json:"auth_config"`
}

// AuthConfig is the wire form of the auth forwarding lists. Slices must be
// non-nil so an absent config serializes as empty arrays rather than null.
type AuthConfig struct {
	PassHeaders        []string `json:"pass_headers"`
	PassQueryParams    []string `json:"pass_query_params"`
	PassJSONBodyParams []string `json:"pass_json_body_params"`
	PassFormDataParams []string `json:"pass_form_data_params"`
}

// Deployment is the service's representation of a created or updated
// deployment.
type Deployment struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Name        string    `json:"name,omitempty"`
	Status      string    `json:"status,omitempty"`
	MCPServerID string    `json:"mcp_server_id,omitempty"`
	SpecHash    string    `json:"openapi_spec_hash,omitempty"`
	Updated     bool      `json:"updated,omitempty"`
}

// ErrorBody is the JSON error payload the service returns on failure.
type ErrorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// Validation-class error codes. Any of these mark the failure as a spec
// problem regardless of HTTP status.
const (
	codeValidationError        = "VALIDATION_ERROR"
	codeServiceValidationError = "SERVICE_VALIDATION_ERROR"
	codeJSONParseError         = "JSON_PARSE_ERROR"
	codeInvalidContentType     = "INVALID_CONTENT_TYPE"
)

func isValidationCode(code string) bool {
	switch code {
	case codeValidationError, codeServiceValidationError, codeJSONParseError, codeInvalidContentType:
		return true
	}
	return false
}
