package tadata

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/tadata-org/tadata-sdk-go/errors"
	"github.com/tadata-org/tadata-sdk-go/internal/api"
	"github.com/tadata-org/tadata-sdk-go/internal/logging"
)

// Version is the SDK release version, sent in the User-Agent header.
const Version = "0.1.0"

const (
	// DefaultBaseURL is the production deployment service endpoint.
	DefaultBaseURL = "https://api.tadata.com"

	// DevBaseURL is the development deployment service endpoint, selected
	// by DeployRequest.Dev.
	DevBaseURL = "https://api.dev.tadata.com"

	// DefaultTimeout bounds each network operation when
	// DeployRequest.Timeout is not set.
	DefaultTimeout = 30 * time.Second
)

// HTTPDoer executes HTTP requests. *http.Client satisfies it; tests and
// callers with custom transport needs may substitute their own.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DeployRequest carries everything one Deploy call needs. The zero value of
// every optional field means "use the default"; only Source and APIKey are
// required.
type DeployRequest struct {
	// Source supplies the OpenAPI document. Exactly one of its fields must
	// be set.
	Source SpecSource

	// APIKey authenticates against the deployment service. Required.
	APIKey string

	// Name optionally labels the deployment. When empty it is omitted from
	// the request and the service assigns one.
	Name string

	// BaseURL overrides the deployment service endpoint. Takes precedence
	// over Dev.
	BaseURL string

	// Dev targets the development service when no BaseURL is given.
	Dev bool

	// AuthConfig names request parameters the MCP server forwards upstream.
	// Nil means forward nothing.
	AuthConfig *AuthConfig

	// Timeout bounds each network operation (spec fetch, deployment call)
	// individually. Zero means DefaultTimeout.
	Timeout time.Duration

	// Logger receives progress at stage boundaries. Nil discards logs.
	Logger *slog.Logger

	// HTTPClient overrides the HTTP client used for all requests.
	HTTPClient HTTPDoer

	// APIVersion pins the deployment service API version header. Empty
	// means the latest version.
	APIVersion string
}

// Deploy resolves the request's spec source, validates the document, and
// creates (or updates) an MCP server deployment on the deployment service.
// The request is read-only: Deploy keeps no state between calls, and
// concurrent calls with separate requests are safe.
//
// Failures are always one of the [errors.Error] kinds: SpecInvalidError for
// bad sources or documents, AuthError for credential problems, NetworkError
// for transport failures, and APIError for unexpected service responses.
func Deploy(ctx context.Context, req DeployRequest) (*DeployResult, error) {
	logger := req.Logger
	if logger == nil {
		logger = logging.NewDiscard()
	}
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if req.APIKey == "" {
		return nil, &errors.AuthError{Message: "an API key is required"}
	}
	doer := req.HTTPClient
	if doer == nil {
		doer = &http.Client{}
	}

	spec, err := req.Source.resolve(ctx, doer, logger, timeout)
	if err != nil {
		return nil, err
	}

	baseURL, err := selectBaseURL(req)
	if err != nil {
		return nil, err
	}

	auth := req.AuthConfig.normalized()

	logger.Debug("deploying MCP server",
		"base_url", baseURL,
		"spec_title", spec.Title(),
		"spec_version", spec.Version(),
		"paths", spec.PathCount(),
	)

	client := api.NewClient(baseURL, req.APIKey,
		api.WithDoer(doer),
		api.WithLogger(logger),
		api.WithAPIVersion(req.APIVersion),
		api.WithUserAgent("tadata-sdk-go/"+Version),
	)

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	deployment, err := client.CreateDeployment(callCtx, &api.DeploymentRequest{
		OpenAPISpec: spec,
		Name:        req.Name,
		AuthConfig: api.AuthConfig{
			PassHeaders:        auth.PassHeaders,
			PassQueryParams:    auth.PassQueryParams,
			PassJSONBodyParams: auth.PassJSONBodyParams,
			PassFormDataParams: auth.PassFormDataParams,
		},
	})
	if err != nil {
		return nil, err
	}

	res := resultFromDeployment(deployment)
	logger.Info("deployment complete",
		"deployment_id", res.ID,
		"status", res.Status,
	)
	return res, nil
}

// selectBaseURL picks the deployment service endpoint. An explicit BaseURL
// wins over Dev, which wins over the production default.
func selectBaseURL(req DeployRequest) (string, error) {
	if req.BaseURL != "" {
		u, err := url.Parse(req.BaseURL)
		if err != nil {
			return "", &errors.NetworkError{Message: "invalid base URL " + req.BaseURL, Err: err}
		}
		if u.Scheme == "" || u.Host == "" {
			return "", &errors.NetworkError{Message: "invalid base URL " + req.BaseURL + ": missing scheme or host"}
		}
		return req.BaseURL, nil
	}
	if req.Dev {
		return DevBaseURL, nil
	}
	return DefaultBaseURL, nil
}
