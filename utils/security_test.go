package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com/x", "https://example.com/x"},
		{"http://example.com", "http://example.com"},
		{"example.com/x", "https://example.com/x"},
		{"  example.com  ", "https://example.com"},
		{"/docs/readme", "/docs/readme"},
		{"HTTPS://Example.com", "HTTPS://Example.com"},
	}

	for _, tt := range tests {
		got, err := SanitizeURL(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSanitizeURLRejectsDangerousProtocols(t *testing.T) {
	for _, raw := range []string{
		"javascript:alert(1)",
		"JAVASCRIPT:alert(1)",
		"data:text/html,<script>alert(1)</script>",
		"vbscript:msgbox",
		"file:///etc/passwd",
		"about:blank",
	} {
		_, err := SanitizeURL(raw)
		assert.ErrorIs(t, err, ErrUnsafeURL, raw)
	}
}

func TestSanitizeURLRequiresValue(t *testing.T) {
	_, err := SanitizeURL("   ")
	assert.Error(t, err)
}

func TestIsInputSafe(t *testing.T) {
	assert.True(t, IsInputSafe(""))
	assert.True(t, IsInputSafe("AI Hackathon 2025"))
	assert.True(t, IsInputSafe("Build & ship <3"))

	assert.False(t, IsInputSafe("<script>alert(1)</script>"))
	assert.False(t, IsInputSafe("click javascript:void(0)"))
	assert.False(t, IsInputSafe(`<img onerror="steal()">`))
	assert.False(t, IsInputSafe("<iframe src=x>"))
	assert.False(t, IsInputSafe("eval(payload)"))
}

func TestValidateLength(t *testing.T) {
	assert.Equal(t, "short", ValidateLength("short", 10))
	assert.Equal(t, "abcde", ValidateLength("abcdefgh", 5))
	// Truncation counts runes, not bytes.
	assert.Equal(t, "héllo", ValidateLength("héllo wörld", 5))
}

func TestParseDeadline(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-06-15T18:00:00Z", time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)},
		{"2025-06-15T18:00:00", time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)},
		{"2025-06-15T18:00", time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)},
		{"2025-06-15", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)},
		{" 2025-06-15 ", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, ok := ParseDeadline(tt.in)
		require.True(t, ok, tt.in)
		assert.True(t, got.Equal(tt.want), tt.in)
	}
}

func TestParseDeadlineMalformed(t *testing.T) {
	for _, raw := range []string{"", "soon", "15/06/2025", "2025-13-40"} {
		_, ok := ParseDeadline(raw)
		assert.False(t, ok, raw)
	}
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2025-06-15"))
	assert.False(t, IsValidDate("next friday"))
}
