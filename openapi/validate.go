package openapi

import (
	"fmt"
	"regexp"
	"strings"
)

// Violation describes a single structural rule a document breaks.
type Violation struct {
	// Field is the dotted path of the offending field.
	Field string
	// Message describes the rule that failed.
	Message string
}

// String renders the violation as "field: message".
func (v Violation) String() string {
	return v.Field + ": " + v.Message
}

// versionPattern accepts dotted numeric versions such as "3.0.0" or "3.1".
var versionPattern = regexp.MustCompile(`^\d+(\.\d+)+$`)

type violations []Violation

func (vs *violations) add(field, message string) {
	*vs = append(*vs, Violation{Field: field, Message: message})
}

func (vs *violations) addf(field, format string, args ...any) {
	vs.add(field, fmt.Sprintf(format, args...))
}

// validateDocument checks the structural rules the deployment service relies
// on. It always walks the whole document and returns every violation found;
// a nil or empty document reports all three top-level fields as missing.
func validateDocument(doc map[string]any) []Violation {
	var vs violations

	if raw, ok := doc["openapi"]; !ok {
		vs.add("openapi", "required field is missing")
	} else if s, ok := raw.(string); !ok {
		vs.addf("openapi", "must be a version string (got %T)", raw)
	} else if !versionPattern.MatchString(s) {
		vs.addf("openapi", "must be a dotted version string like %q (got %q)", "3.1.0", s)
	}

	if raw, ok := doc["info"]; !ok {
		vs.add("info", "required field is missing")
	} else if info, ok := raw.(map[string]any); !ok {
		vs.addf("info", "must be a mapping (got %T)", raw)
	} else {
		vs.requireString(info, "info", "title")
		vs.requireString(info, "info", "version")
	}

	if raw, ok := doc["paths"]; !ok {
		vs.add("paths", "required field is missing")
	} else if _, ok := raw.(map[string]any); !ok {
		vs.addf("paths", "must be a mapping (got %T)", raw)
	}

	return vs
}

func (vs *violations) requireString(m map[string]any, parent, key string) {
	field := parent + "." + key
	raw, ok := m[key]
	if !ok {
		vs.add(field, "required field is missing")
		return
	}
	s, ok := raw.(string)
	if !ok {
		vs.addf(field, "must be a non-empty string (got %T)", raw)
		return
	}
	if strings.TrimSpace(s) == "" {
		vs.add(field, "must be a non-empty string")
	}
}
