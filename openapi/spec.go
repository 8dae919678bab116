package openapi

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tadata-org/tadata-sdk-go/errors"
	"github.com/tadata-org/tadata-sdk-go/pkg/fileutil"
)

// Spec is a structurally validated OpenAPI document. Construct one with
// [FromDocument], [FromJSON], [FromYAML], [FromBytes], or [FromFile]; the
// zero value is not usable.
//
// A Spec is immutable once built and safe for concurrent use. The identity
// fields are computed once at construction.
type Spec struct {
	doc map[string]any

	title          string
	version        string
	openapiVersion string
	pathCount      int
}

// FromDocument validates doc and returns a Spec backed by a deep copy of it.
// The copy means callers can keep mutating their document without affecting
// the returned Spec.
//
// On validation failure it returns a [errors.SpecInvalidError] whose Details
// list every violated rule, not just the first.
func FromDocument(doc map[string]any) (*Spec, error) {
	if vs := validateDocument(doc); len(vs) > 0 {
		details := make([]string, len(vs))
		for i, v := range vs {
			details[i] = v.String()
		}
		return nil, &errors.SpecInvalidError{
			Message: "invalid OpenAPI specification",
			Details: details,
		}
	}

	clone := cloneDocument(doc)
	info := clone["info"].(map[string]any)
	return &Spec{
		doc:            clone,
		title:          info["title"].(string),
		version:        info["version"].(string),
		openapiVersion: clone["openapi"].(string),
		pathCount:      len(clone["paths"].(map[string]any)),
	}, nil
}

// FromJSON decodes data as JSON and validates the resulting document.
func FromJSON(data []byte) (*Spec, error) {
	doc, err := decodeJSON(data)
	if err != nil {
		return nil, &errors.SpecInvalidError{
			Message: "failed to parse OpenAPI document as JSON",
			Details: []string{err.Error()},
			Err:     err,
		}
	}
	return FromDocument(doc)
}

// FromYAML decodes data as YAML and validates the resulting document.
func FromYAML(data []byte) (*Spec, error) {
	doc, err := decodeYAML(data)
	if err != nil {
		return nil, &errors.SpecInvalidError{
			Message: "failed to parse OpenAPI document as YAML",
			Details: []string{err.Error()},
			Err:     err,
		}
	}
	return FromDocument(doc)
}

// FromBytes decodes data as JSON first, falling back to YAML when JSON
// decoding fails. Fetched specs rarely announce their format, so both are
// attempted; a document that decodes as JSON but fails validation is not
// retried as YAML. When both decoders fail, Details carries both parser
// messages.
func FromBytes(data []byte) (*Spec, error) {
	doc, jsonErr := decodeJSON(data)
	if jsonErr == nil {
		return FromDocument(doc)
	}

	doc, yamlErr := decodeYAML(data)
	if yamlErr != nil {
		return nil, &errors.SpecInvalidError{
			Message: "failed to parse OpenAPI document",
			Details: []string{jsonErr.Error(), yamlErr.Error()},
			Err:     yamlErr,
		}
	}
	return FromDocument(doc)
}

// FromFile reads and validates a spec file. Files ending in .json are parsed
// as JSON; everything else (.yaml, .yml, or no extension) is parsed as YAML.
func FromFile(path string) (*Spec, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, &errors.SpecInvalidError{
			Message: "failed to read spec file " + path,
			Details: []string{err.Error()},
			Err:     err,
		}
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FromJSON(data)
	}
	return FromYAML(data)
}

// Title returns info.title.
func (s *Spec) Title() string { return s.title }

// Version returns info.version, the version of the described API.
func (s *Spec) Version() string { return s.version }

// OpenAPIVersion returns the top-level openapi field.
func (s *Spec) OpenAPIVersion() string { return s.openapiVersion }

// PathCount returns the number of entries in the paths mapping.
func (s *Spec) PathCount() int { return s.pathCount }

// Document returns a deep copy of the underlying document. Mutating the
// returned map does not affect the Spec.
func (s *Spec) Document() map[string]any {
	return cloneDocument(s.doc)
}

// MarshalJSON serializes the underlying document, so a Spec can be embedded
// directly in a request payload.
func (s *Spec) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.doc)
}

func decodeJSON(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, errors.Newf("invalid JSON at offset %d: %v", syntaxErr.Offset, err)
		}
		return nil, errors.Wrap(err, "invalid JSON")
	}
	return doc, nil
}

func decodeYAML(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "invalid YAML")
	}
	return doc, nil
}

func cloneDocument(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneDocument(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
