package tadata

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tadata-org/tadata-sdk-go/errors"
	"github.com/tadata-org/tadata-sdk-go/internal/redact"
	"github.com/tadata-org/tadata-sdk-go/openapi"
	"github.com/tadata-org/tadata-sdk-go/pkg/fileutil"
)

// SpecSource supplies the OpenAPI document for a deployment. Exactly one
// field may be set; [Deploy] rejects empty and conflicting sources before
// any network traffic. Use the SourceFrom constructors rather than filling
// the struct by hand.
type SpecSource struct {
	// Document is an in-memory OpenAPI document.
	Document map[string]any

	// File is the path of a local JSON or YAML spec file.
	File string

	// URL locates a spec to fetch over HTTP(S).
	URL string

	// Spec is an already-validated spec, reused as-is.
	Spec *openapi.Spec
}

// SourceFromDocument deploys an in-memory OpenAPI document.
func SourceFromDocument(doc map[string]any) SpecSource {
	return SpecSource{Document: doc}
}

// SourceFromFile deploys a local JSON or YAML spec file.
func SourceFromFile(path string) SpecSource {
	return SpecSource{File: path}
}

// SourceFromURL deploys a spec fetched from a URL.
func SourceFromURL(rawURL string) SpecSource {
	return SpecSource{URL: rawURL}
}

// SourceFromSpec deploys an already-validated spec.
func SourceFromSpec(spec *openapi.Spec) SpecSource {
	return SpecSource{Spec: spec}
}

// setFields returns the names of the populated fields.
func (s SpecSource) setFields() []string {
	var fields []string
	if s.Document != nil {
		fields = append(fields, "Document")
	}
	if s.File != "" {
		fields = append(fields, "File")
	}
	if s.URL != "" {
		fields = append(fields, "URL")
	}
	if s.Spec != nil {
		fields = append(fields, "Spec")
	}
	return fields
}

// resolve produces the validated spec for this source. Cardinality problems
// fail here, before any I/O happens.
func (s SpecSource) resolve(ctx context.Context, doer HTTPDoer, logger *slog.Logger, timeout time.Duration) (*openapi.Spec, error) {
	fields := s.setFields()
	switch len(fields) {
	case 1:
	case 0:
		return nil, &errors.SpecInvalidError{
			Message: "a spec source is required: set one of Document, File, URL, or Spec",
		}
	default:
		return nil, &errors.SpecInvalidError{
			Message: "conflicting spec sources: only one of Document, File, URL, or Spec may be set",
			Details: []string{"set: " + strings.Join(fields, ", ")},
		}
	}

	var (
		spec *openapi.Spec
		err  error
	)
	switch {
	case s.Spec != nil:
		spec = s.Spec
	case s.Document != nil:
		spec, err = openapi.FromDocument(s.Document)
	case s.File != "":
		spec, err = openapi.FromFile(s.File)
	default:
		spec, err = fetchSpec(ctx, doer, s.URL, timeout)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("resolved OpenAPI spec",
		"title", spec.Title(),
		"version", spec.Version(),
		"paths", spec.PathCount(),
	)
	return spec, nil
}

// fetchSpec GETs a spec over HTTP. Transport failures and non-2xx statuses
// are network errors; the body is parsed as JSON first with a YAML fallback.
func fetchSpec(ctx context.Context, doer HTTPDoer, rawURL string, timeout time.Duration) (*openapi.Spec, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Error messages may end up in terminals and logs, so never echo a URL
	// that could carry credentials.
	displayURL := redact.MaskURL(rawURL)

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &errors.NetworkError{Message: "invalid spec URL " + displayURL, Err: err}
	}
	req.Header.Set("Accept", "application/json, application/yaml, text/yaml")

	resp, err := doer.Do(req)
	if err != nil {
		// http.Client failures arrive as a url.Error carrying the full URL,
		// credentials included. Scrub it so the chain is safe to print.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = displayURL
		}
		return nil, &errors.NetworkError{Message: "fetching spec from " + displayURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errors.NetworkError{
			Message: "fetching spec from " + displayURL + ": unexpected status " + resp.Status,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, fileutil.MaxFileSize+1))
	if err != nil {
		return nil, &errors.NetworkError{Message: "reading spec from " + displayURL, Err: err}
	}
	if len(body) > fileutil.MaxFileSize {
		return nil, &errors.SpecInvalidError{
			Message: "spec fetched from " + displayURL + " exceeds the maximum size",
			Err:     fileutil.ErrFileTooLarge,
		}
	}

	return openapi.FromBytes(body)
}
