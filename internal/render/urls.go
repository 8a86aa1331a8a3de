package render

import "strings"

// NormalizeURL makes a stored link value usable as an href. Bare domains
// get an https scheme prepended; values already carrying http:// or
// https:// (any case) pass through unchanged. Empty input stays empty so
// callers can skip the link element entirely.
func NormalizeURL(raw string) string {
	if raw == "" {
		return ""
	}
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	return "https://" + raw
}
