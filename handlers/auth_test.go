package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuestUsername(t *testing.T) {
	// Generated names carry the random suffix.
	assert.Equal(t, "Guest_ab12cd34", guestUsername("", "ab12cd34"))

	// Caller-picked names get the same suffix, so a name matching an
	// existing username never trips the unique index.
	assert.Equal(t, "Ada_ab12cd34", guestUsername("Ada", "ab12cd34"))

	// Overlong names are truncated before the suffix is appended.
	long := strings.Repeat("x", 80)
	got := guestUsername(long, "ab12cd34")
	assert.Equal(t, strings.Repeat("x", 30)+"_ab12cd34", got)
}

func TestGuestUsernameUniquePerSuffix(t *testing.T) {
	a := guestUsername("Ada", "11111111")
	b := guestUsername("Ada", "22222222")
	assert.NotEqual(t, a, b)
}
