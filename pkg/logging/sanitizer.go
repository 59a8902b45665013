package logging

import (
	"regexp"
)

const (
	// MaxBodyLogLength is the maximum length of an upstream response body to log
	MaxBodyLogLength = 200
	// RedactedText is the replacement text for sensitive data
	RedactedText = "[REDACTED]"
)

var (
	// Matches password=xxx, pwd=xxx, pass=xxx (until next delimiter)
	passwordPattern = regexp.MustCompile(`(?i)(password|pwd|pass)=[^;&\s]+`)

	// Matches "password":"xxx" inside JSON bodies
	jsonPasswordPattern = regexp.MustCompile(`(?i)"(password|token)"\s*:\s*"[^"]*"`)

	// Matches bearer tokens in Authorization headers
	bearerPattern = regexp.MustCompile(`Bearer\s+[A-Za-z0-9-_]+\.[A-Za-z0-9-_]+\.[A-Za-z0-9-_]*`)

	// Matches bare compact JWTs (header segment always starts with eyJ)
	jwtPattern = regexp.MustCompile(`eyJ[A-Za-z0-9-_]*\.[A-Za-z0-9-_]+\.[A-Za-z0-9-_]*`)

	// Matches user:pass@host credentials in URLs (redis://, http://)
	urlCredentialsPattern = regexp.MustCompile(`://[^:/\s]*:[^@\s]+@`)
)

// SanitizeURL removes credentials from a URL such as a Redis connection URL.
// Use this before logging any configured endpoint.
func SanitizeURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	sanitized := urlCredentialsPattern.ReplaceAllString(rawURL, "://"+RedactedText+"@")
	return passwordPattern.ReplaceAllString(sanitized, "${1}="+RedactedText)
}

// SanitizeError sanitizes error messages that might contain sensitive data.
// Use this before logging any error from the upstream client or session store.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return sanitize(err.Error())
}

// SanitizeBody truncates and sanitizes an upstream response body for logging.
func SanitizeBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	return TruncateString(sanitize(string(body)), MaxBodyLogLength)
}

func sanitize(s string) string {
	sanitized := passwordPattern.ReplaceAllString(s, "${1}="+RedactedText)
	sanitized = jsonPasswordPattern.ReplaceAllString(sanitized, `"${1}":"`+RedactedText+`"`)
	sanitized = bearerPattern.ReplaceAllString(sanitized, "Bearer "+RedactedText)
	sanitized = jwtPattern.ReplaceAllString(sanitized, RedactedText)
	sanitized = urlCredentialsPattern.ReplaceAllString(sanitized, "://"+RedactedText+"@")
	return sanitized
}

// TruncateString truncates a string to maxLen and adds ellipsis if needed
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
