// utils/security.go - Input sanitization and validation helpers
package utils

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	// Dangerous URL schemes that must never be stored or echoed back.
	dangerousScheme = regexp.MustCompile(`(?i)^(javascript|data|vbscript|file|about):`)

	// Patterns that indicate script injection attempts in free text.
	dangerousPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`),
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)on\w+\s*=`),
		regexp.MustCompile(`(?i)<iframe`),
		regexp.MustCompile(`(?i)<object`),
		regexp.MustCompile(`(?i)<embed`),
		regexp.MustCompile(`(?i)eval\(`),
		regexp.MustCompile(`(?i)expression\(`),
	}
)

// ErrUnsafeURL is returned by SanitizeURL for blocked protocols.
var ErrUnsafeURL = errors.New("unsafe URL protocol")

// SanitizeURL validates a user-supplied link. Dangerous protocols are rejected,
// scheme-less URLs are normalized to https. The returned URL is always
// http://, https:// or rooted-relative.
func SanitizeURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("URL is required")
	}

	if dangerousScheme.MatchString(trimmed) {
		return "", ErrUnsafeURL
	}

	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(trimmed, "/") {
		return trimmed, nil
	}

	// No protocol given, assume https
	return "https://" + trimmed, nil
}

// IsInputSafe reports whether free text is free of script-injection patterns.
func IsInputSafe(input string) bool {
	if input == "" {
		return true
	}
	for _, p := range dangerousPatterns {
		if p.MatchString(input) {
			return false
		}
	}
	return true
}

// ValidateLength truncates input to maxLength runes.
func ValidateLength(input string, maxLength int) string {
	runes := []rune(input)
	if len(runes) <= maxLength {
		return input
	}
	return string(runes[:maxLength])
}

// Deadline layouts accepted from clients. The HTML datetime-local format is what
// the dashboard form submits; the others cover API clients and legacy records.
var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDeadline parses a stored deadline string. A malformed or empty value
// returns ok=false; callers treat that as "no deadline", never as an error.
func ParseDeadline(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsValidDate reports whether s parses as one of the accepted deadline layouts.
func IsValidDate(s string) bool {
	_, ok := ParseDeadline(s)
	return ok
}
