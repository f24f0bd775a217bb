// Package logger provides structured logging for HashREST.
package logger

import (
	"log/slog"
	"net/url"
	"strings"
)

// Key patterns whose values are never logged.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"api_key",
	"apikey",
	"authorization",
	"cookie",
	"credential",
	"bearer",
}

const redactedValue = "***REDACTED***"

// redactSensitive masks attribute values that may carry credentials.
// Proof-of-work tokens are not secret and pass through unchanged.
func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		s := a.Value.String()
		if s != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
		if masked := RedactURL(s); masked != s {
			return slog.String(a.Key, masked)
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}
	return a
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(k, pattern) {
			return true
		}
	}
	return false
}

// RedactURL masks the password of a URL with userinfo. Other strings are
// returned unchanged, including tokens that embed such a URL.
func RedactURL(s string) string {
	if !strings.Contains(s, "@") || !strings.Contains(s, "://") {
		return s
	}

	// A token embeds the target between delimiters; mask each part.
	if strings.Contains(s, ";") {
		parts := strings.Split(s, ";")
		for i, p := range parts {
			parts[i] = RedactURL(p)
		}
		return strings.Join(parts, ";")
	}

	u, err := url.Parse(s)
	if err != nil || u.User == nil {
		return s
	}
	if _, ok := u.User.Password(); !ok {
		return s
	}
	return u.Redacted()
}
