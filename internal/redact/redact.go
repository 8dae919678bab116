// Package redact masks credentials and other sensitive values before they
// reach logs or terminal output.
package redact

import (
	"net/url"
	"strings"
)

// SecretKeyPatterns contains substrings that indicate a key likely holds
// sensitive data. Keys are matched case-insensitively.
var SecretKeyPatterns = []string{
	"TOKEN",
	"KEY",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"API_KEY",
	"PRIVATE",
	"BEARER",
}

// TokenPrefixes contains known credential prefixes that mark a value as
// sensitive regardless of what its key is called.
var TokenPrefixes = []string{
	"td_",   // tadata API keys
	"sk-",   // OpenAI/Anthropic keys
	"pk-",   // publishable keys that still shouldn't be logged
	"ghp_",  // GitHub personal access token
	"AKIA",  // AWS access key prefix
	"xoxb-", // Slack bot token
}

// MaskValue masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked as "********".
// Longer values show the last 4 characters: "****xxxx".
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// ShouldMask returns true if the key name suggests it holds sensitive data.
// Matching is case-insensitive.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range SecretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix returns true if the value starts with a known
// credential prefix. This catches values that are clearly tokens even when
// the key name gives nothing away.
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range TokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// MaskURL redacts credentials from a URL: an embedded userinfo password
// (user:pass@host) and any query parameter whose name matches
// SecretKeyPatterns. Spec URLs sometimes carry an api_key query parameter,
// which must never survive into log output. If the URL cannot be parsed, it
// is returned unchanged.
func MaskURL(rawURL string) string {
	if rawURL == "" {
		return rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	changed := false

	if parsed.User != nil {
		if password, ok := parsed.User.Password(); ok && password != "" {
			parsed.User = url.UserPassword(parsed.User.Username(), MaskValue(password))
			changed = true
		}
	}

	if parsed.RawQuery != "" {
		query := parsed.Query()
		for name, values := range query {
			if !ShouldMask(name) {
				continue
			}
			for i, v := range values {
				if v != "" {
					values[i] = MaskValue(v)
					changed = true
				}
			}
			query[name] = values
		}
		if changed {
			parsed.RawQuery = query.Encode()
		}
	}

	if !changed {
		return rawURL
	}
	return parsed.String()
}
