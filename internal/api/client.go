package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tadata-org/tadata-sdk-go/errors"
	"github.com/tadata-org/tadata-sdk-go/internal/logging"
)

// Doer executes HTTP requests. *http.Client satisfies it; tests substitute
// their own.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	// DefaultAPIVersion pins the service API revision requested via the
	// x-api-version header.
	DefaultAPIVersion = "latest"

	apiVersionHeader = "x-api-version"
	requestIDHeader  = "X-Request-Id"

	deploymentsPath = "/deployments"

	// maxResponseBody bounds response reads. Deployment bodies are small;
	// anything bigger is a misbehaving endpoint.
	maxResponseBody = 1 << 20
)

// Client talks to the deployment service. Construct one per call or share
// one across calls; it holds no mutable state.
type Client struct {
	baseURL    string
	apiKey     string
	apiVersion string
	userAgent  string
	doer       Doer
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDoer sets the HTTP client used for requests.
func WithDoer(d Doer) ClientOption {
	return func(c *Client) {
		if d != nil {
			c.doer = d
		}
	}
}

// WithLogger sets the logger used at request and response boundaries.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithAPIVersion overrides the x-api-version header value.
func WithAPIVersion(version string) ClientOption {
	return func(c *Client) {
		if version != "" {
			c.apiVersion = version
		}
	}
}

// WithUserAgent sets the User-Agent header value.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a deployment service client. Deadlines are expected to
// arrive via the request context, so the default HTTP client carries no
// timeout of its own.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		apiVersion: DefaultAPIVersion,
		userAgent:  "tadata-sdk-go",
		doer:       &http.Client{},
		logger:     logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateDeployment posts a deployment request and maps the response onto the
// SDK error taxonomy. It makes exactly one attempt; cancellation of ctx
// surfaces as a NetworkError wrapping the context error.
func (c *Client) CreateDeployment(ctx context.Context, req *DeploymentRequest) (*Deployment, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &errors.APIError{Message: "failed to encode deployment request", Err: err}
	}

	url := c.baseURL + deploymentsPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &errors.NetworkError{Message: "building request for " + url, Err: err}
	}

	requestID := uuid.New().String()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(apiVersionHeader, c.apiVersion)
	httpReq.Header.Set(requestIDHeader, requestID)

	c.logger.Debug("sending deployment request",
		"url", url,
		"request_id", requestID,
		"payload_bytes", len(body),
	)
	c.logger.Log(ctx, logging.LevelTrace, "deployment request payload", "payload", string(body))

	start := time.Now()
	resp, err := c.doer.Do(httpReq)
	if err != nil {
		return nil, &errors.NetworkError{Message: "deployment request failed", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, &errors.NetworkError{Message: "reading deployment response", Err: err}
	}

	c.logger.Debug("deployment response received",
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, mapFailure(resp.StatusCode, respBody)
	}

	var dep Deployment
	if err := json.Unmarshal(respBody, &dep); err != nil {
		return nil, &errors.APIError{
			Message:    "deployment service returned a malformed success body",
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}
	if dep.ID == "" {
		return nil, &errors.APIError{
			Message:    "deployment service response is missing the deployment id",
			StatusCode: resp.StatusCode,
		}
	}

	return &dep, nil
}

// mapFailure converts a non-2xx response into the right error variant.
// Unparseable error bodies fall back to status-derived messages.
func mapFailure(status int, body []byte) error {
	var errBody ErrorBody
	_ = json.Unmarshal(body, &errBody)

	message := errBody.Message

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		if message == "" {
			message = fmt.Sprintf("authentication failed (status %d)", status)
		}
		return &errors.AuthError{Message: message}

	case status == http.StatusUnprocessableEntity || isValidationCode(errBody.Code):
		if message == "" {
			message = "deployment service rejected the OpenAPI specification"
		}
		return &errors.SpecInvalidError{Message: message, Details: errBody.Details}

	default:
		if message == "" {
			message = fmt.Sprintf("deployment service returned status %d", status)
		}
		return &errors.APIError{Message: message, StatusCode: status}
	}
}
