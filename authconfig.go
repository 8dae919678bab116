package tadata

import "strings"

// AuthConfig names the request parameters clients may pass through the
// deployed MCP server to the upstream API. All lists default to empty:
// nothing is forwarded unless named here.
type AuthConfig struct {
	// PassHeaders are header names forwarded to the upstream API.
	PassHeaders []string

	// PassQueryParams are query parameter names forwarded to the upstream API.
	PassQueryParams []string

	// PassJSONBodyParams are JSON body field names forwarded to the upstream API.
	PassJSONBodyParams []string

	// PassFormDataParams are form field names forwarded to the upstream API.
	PassFormDataParams []string
}

// normalized returns a copy with every list deduplicated and non-nil. A nil
// receiver yields the default config with four empty lists.
func (c *AuthConfig) normalized() AuthConfig {
	if c == nil {
		return AuthConfig{
			PassHeaders:        []string{},
			PassQueryParams:    []string{},
			PassJSONBodyParams: []string{},
			PassFormDataParams: []string{},
		}
	}
	return AuthConfig{
		PassHeaders:        dedupeFold(c.PassHeaders),
		PassQueryParams:    dedupeFold(c.PassQueryParams),
		PassJSONBodyParams: dedupeFold(c.PassJSONBodyParams),
		PassFormDataParams: dedupeFold(c.PassFormDataParams),
	}
}

// dedupeFold removes case-insensitive duplicates, keeping the first
// occurrence's casing and position. The result is never nil so the lists
// serialize as JSON arrays rather than null.
func dedupeFold(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
