package tadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tadata-org/tadata-sdk-go/errors"
	"github.com/tadata-org/tadata-sdk-go/internal/logging"
)

const deploymentBody = `{
	"id": "dep_8f14e45f",
	"created_at": "2025-06-01T12:00:00Z",
	"name": "petstore",
	"status": "active",
	"mcp_server_id": "mcp_c4ca4238",
	"openapi_spec_hash": "sha256:2e7d2c03",
	"updated": false
}`

// mockDoer is a testify mock over HTTPDoer for tests that need to inspect
// the outgoing request without a live server.
type mockDoer struct{ mock.Mock }

func (m *mockDoer) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if resp, ok := args.Get(0).(*http.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestDeploy(t *testing.T) {
	var gotPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if r.URL.Path != "/deployments" {
			t.Errorf("path = %q, want /deployments", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer td_test_key" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer td_test_key")
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", got)
		}
		if got := r.Header.Get("x-api-version"); got != "latest" {
			t.Errorf("x-api-version = %q, want latest", got)
		}
		if got := r.Header.Get("User-Agent"); !strings.HasPrefix(got, "tadata-sdk-go/") {
			t.Errorf("User-Agent = %q, want tadata-sdk-go/ prefix", got)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("X-Request-Id header is empty")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, deploymentBody)
	}))
	defer srv.Close()

	res, err := Deploy(context.Background(), DeployRequest{
		Source:  SourceFromDocument(petstoreDocument()),
		APIKey:  "td_test_key",
		Name:    "petstore",
		BaseURL: srv.URL,
		Logger:  logging.ForTest(t),
		AuthConfig: &AuthConfig{
			PassHeaders: []string{"X-Tenant-Id"},
		},
	})
	if err != nil {
		t.Fatalf("Deploy() error = %v", err)
	}

	if res.ID != "dep_8f14e45f" {
		t.Errorf("ID = %q, want %q", res.ID, "dep_8f14e45f")
	}
	if res.Status != "active" {
		t.Errorf("Status = %q, want %q", res.Status, "active")
	}
	if res.MCPServerID != "mcp_c4ca4238" {
		t.Errorf("MCPServerID = %q, want %q", res.MCPServerID, "mcp_c4ca4238")
	}
	if res.SpecHash != "sha256:2e7d2c03" {
		t.Errorf("SpecHash = %q, want %q", res.SpecHash, "sha256:2e7d2c03")
	}
	if res.Updated {
		t.Error("Updated = true, want false")
	}
	want := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if !res.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", res.CreatedAt, want)
	}

	spec, ok := gotPayload["openapi_spec"].(map[string]any)
	if !ok {
		t.Fatalf("payload openapi_spec = %T, want object", gotPayload["openapi_spec"])
	}
	info, _ := spec["info"].(map[string]any)
	if info["title"] != "Petstore" {
		t.Errorf("payload spec title = %v, want Petstore", info["title"])
	}
	if gotPayload["name"] != "petstore" {
		t.Errorf("payload name = %v, want petstore", gotPayload["name"])
	}
	auth, ok := gotPayload["auth_config"].(map[string]any)
	if !ok {
		t.Fatalf("payload auth_config = %T, want object", gotPayload["auth_config"])
	}
	headers, _ := auth["pass_headers"].([]any)
	if len(headers) != 1 || headers[0] != "X-Tenant-Id" {
		t.Errorf("pass_headers = %v, want [X-Tenant-Id]", auth["pass_headers"])
	}
}

func TestDeploy_MissingAPIKey(t *testing.T) {
	_, err := Deploy(context.Background(), DeployRequest{
		Source:     SourceFromDocument(petstoreDocument()),
		HTTPClient: &noNetworkDoer{t: t},
	})
	var authErr *errors.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Deploy() error = %v, want AuthError", err)
	}
	if !strings.Contains(authErr.Message, "API key") {
		t.Errorf("Message = %q, want it to mention the API key", authErr.Message)
	}
}

func TestDeploy_InvalidSource(t *testing.T) {
	_, err := Deploy(context.Background(), DeployRequest{
		APIKey:     "td_test_key",
		HTTPClient: &noNetworkDoer{t: t},
	})
	if !errors.IsSpecInvalid(err) {
		t.Fatalf("Deploy() error = %v, want SpecInvalidError", err)
	}
}

func TestDeploy_BaseURLPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		dev      bool
		wantHost string
	}{
		{
			name:     "default is production",
			wantHost: "api.tadata.com",
		},
		{
			name:     "dev flag selects the dev service",
			dev:      true,
			wantHost: "api.dev.tadata.com",
		},
		{
			name:     "explicit base URL wins over dev",
			baseURL:  "https://deploy.internal.example.com",
			dev:      true,
			wantHost: "deploy.internal.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotURL *url.URL
			doer := &mockDoer{}
			doer.On("Do", mock.MatchedBy(func(req *http.Request) bool {
				gotURL = req.URL
				return true
			})).Return(jsonResponse(http.StatusCreated, deploymentBody), nil).Once()

			_, err := Deploy(context.Background(), DeployRequest{
				Source:     SourceFromDocument(petstoreDocument()),
				APIKey:     "td_test_key",
				BaseURL:    tt.baseURL,
				Dev:        tt.dev,
				HTTPClient: doer,
			})
			if err != nil {
				t.Fatalf("Deploy() error = %v", err)
			}
			doer.AssertExpectations(t)

			if gotURL.Host != tt.wantHost {
				t.Errorf("request host = %q, want %q", gotURL.Host, tt.wantHost)
			}
			if gotURL.Path != "/deployments" {
				t.Errorf("request path = %q, want /deployments", gotURL.Path)
			}
		})
	}
}

func TestDeploy_InvalidBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
	}{
		{name: "unparseable", baseURL: "://missing-scheme"},
		{name: "no scheme or host", baseURL: "not-a-url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Deploy(context.Background(), DeployRequest{
				Source:     SourceFromDocument(petstoreDocument()),
				APIKey:     "td_test_key",
				BaseURL:    tt.baseURL,
				HTTPClient: &noNetworkDoer{t: t},
			})
			if !errors.IsNetwork(err) {
				t.Fatalf("Deploy() error = %v, want NetworkError", err)
			}
		})
	}
}

func TestDeploy_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unauthorized maps to AuthError",
			status: http.StatusUnauthorized,
			body:   `{"code":"UNAUTHORIZED","message":"invalid API key"}`,
			check: func(t *testing.T, err error) {
				var authErr *errors.AuthError
				if !errors.As(err, &authErr) {
					t.Fatalf("error = %v, want AuthError", err)
				}
				if authErr.Message != "invalid API key" {
					t.Errorf("Message = %q, want %q", authErr.Message, "invalid API key")
				}
			},
		},
		{
			name:   "unprocessable maps to SpecInvalidError with details",
			status: http.StatusUnprocessableEntity,
			body:   `{"code":"VALIDATION_ERROR","message":"spec rejected","details":["paths./pets.get: missing responses"]}`,
			check: func(t *testing.T, err error) {
				var specErr *errors.SpecInvalidError
				if !errors.As(err, &specErr) {
					t.Fatalf("error = %v, want SpecInvalidError", err)
				}
				if len(specErr.Details) != 1 || !strings.Contains(specErr.Details[0], "missing responses") {
					t.Errorf("Details = %v, want the service violation", specErr.Details)
				}
			},
		},
		{
			name:   "server error maps to APIError with status",
			status: http.StatusInternalServerError,
			body:   `{"message":"boom"}`,
			check: func(t *testing.T, err error) {
				var apiErr *errors.APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("error = %v, want APIError", err)
				}
				if apiErr.StatusCode != http.StatusInternalServerError {
					t.Errorf("StatusCode = %d, want 500", apiErr.StatusCode)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := Deploy(context.Background(), DeployRequest{
				Source:  SourceFromDocument(petstoreDocument()),
				APIKey:  "td_test_key",
				BaseURL: srv.URL,
			})
			tt.check(t, err)
		})
	}
}

func TestDeploy_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := Deploy(context.Background(), DeployRequest{
		Source:  SourceFromDocument(petstoreDocument()),
		APIKey:  "td_test_key",
		BaseURL: srv.URL,
	})
	if !errors.IsNetwork(err) {
		t.Fatalf("Deploy() error = %v, want NetworkError", err)
	}
}

func TestDeploy_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, deploymentBody)
	}))
	defer srv.Close()

	_, err := Deploy(context.Background(), DeployRequest{
		Source:  SourceFromDocument(petstoreDocument()),
		APIKey:  "td_test_key",
		BaseURL: srv.URL,
		Timeout: 50 * time.Millisecond,
	})
	if !errors.IsNetwork(err) {
		t.Fatalf("Deploy() error = %v, want NetworkError", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error chain = %v, want context.DeadlineExceeded", err)
	}
}

func TestDeploy_NilAuthConfigSendsEmptyLists(t *testing.T) {
	var raw []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, deploymentBody)
	}))
	defer srv.Close()

	_, err := Deploy(context.Background(), DeployRequest{
		Source:  SourceFromDocument(petstoreDocument()),
		APIKey:  "td_test_key",
		BaseURL: srv.URL,
	})
	if err != nil {
		t.Fatalf("Deploy() error = %v", err)
	}

	var payload struct {
		AuthConfig map[string]json.RawMessage `json:"auth_config"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	for _, field := range []string{"pass_headers", "pass_query_params", "pass_json_body_params", "pass_form_data_params"} {
		got, ok := payload.AuthConfig[field]
		if !ok {
			t.Errorf("auth_config.%s missing from payload", field)
			continue
		}
		if string(got) != "[]" {
			t.Errorf("auth_config.%s = %s, want []", field, got)
		}
	}

	var full map[string]any
	if err := json.Unmarshal(raw, &full); err != nil {
		t.Fatal(err)
	}
	if _, present := full["name"]; present {
		t.Error("payload contains name, want it omitted when empty")
	}
}

func TestDeploy_AuthConfigDeduplicated(t *testing.T) {
	var gotPayload struct {
		AuthConfig struct {
			PassHeaders []string `json:"pass_headers"`
		} `json:"auth_config"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, deploymentBody)
	}))
	defer srv.Close()

	_, err := Deploy(context.Background(), DeployRequest{
		Source:  SourceFromDocument(petstoreDocument()),
		APIKey:  "td_test_key",
		BaseURL: srv.URL,
		AuthConfig: &AuthConfig{
			PassHeaders: []string{"X-Tenant-Id", "x-tenant-id", "Authorization", "X-TENANT-ID"},
		},
	})
	if err != nil {
		t.Fatalf("Deploy() error = %v", err)
	}

	want := []string{"X-Tenant-Id", "Authorization"}
	got := gotPayload.AuthConfig.PassHeaders
	if len(got) != len(want) {
		t.Fatalf("pass_headers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pass_headers[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDeploy_APIVersionOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-version"); got != "2025-06-01" {
			t.Errorf("x-api-version = %q, want %q", got, "2025-06-01")
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, deploymentBody)
	}))
	defer srv.Close()

	_, err := Deploy(context.Background(), DeployRequest{
		Source:     SourceFromDocument(petstoreDocument()),
		APIKey:     "td_test_key",
		BaseURL:    srv.URL,
		APIVersion: "2025-06-01",
	})
	if err != nil {
		t.Fatalf("Deploy() error = %v", err)
	}
}

func TestDeploy_ContextCancelled(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := Deploy(ctx, DeployRequest{
		Source:  SourceFromDocument(petstoreDocument()),
		APIKey:  "td_test_key",
		BaseURL: srv.URL,
	})
	if !errors.IsNetwork(err) {
		t.Fatalf("Deploy() error = %v, want NetworkError", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error chain = %v, want context.Canceled", err)
	}
}
