package priority

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemainingNoDeadline(t *testing.T) {
	_, ok := Remaining("", testNow)
	assert.False(t, ok)

	_, ok = Remaining("soon-ish", testNow)
	assert.False(t, ok)
}

func TestRemainingOverdue(t *testing.T) {
	cd, ok := Remaining("2024-12-31T12:00:00Z", testNow)
	require.True(t, ok)
	assert.Equal(t, CountdownOverdue, cd.State)
	assert.Equal(t, "Overdue", cd.Label)
	assert.Negative(t, cd.Remaining)
}

func TestRemainingExactlyNowIsOverdue(t *testing.T) {
	cd, ok := Remaining("2025-01-01T00:00:00Z", testNow)
	require.True(t, ok)
	assert.Equal(t, CountdownOverdue, cd.State)
}

func TestRemainingLabels(t *testing.T) {
	tests := []struct {
		deadline string
		state    CountdownState
		label    string
	}{
		// 2d 3h 30m out: days included, still urgent (< 5 days)
		{"2025-01-03T03:30:00Z", CountdownUrgent, "2d 3h 30m"},
		// 3h 45m out: day part dropped
		{"2025-01-01T03:45:00Z", CountdownUrgent, "3h 45m"},
		// 10 days out: normal
		{"2025-01-11T00:00:00Z", CountdownNormal, "10d 0h 0m"},
		// exactly 5 days out sits on the boundary, not urgent
		{"2025-01-06T00:00:00Z", CountdownNormal, "5d 0h 0m"},
	}

	for _, tt := range tests {
		cd, ok := Remaining(tt.deadline, testNow)
		require.True(t, ok, tt.deadline)
		assert.Equal(t, tt.state, cd.State, tt.deadline)
		assert.Equal(t, tt.label, cd.Label, tt.deadline)
	}
}

func TestRemainingDateOnlyDeadline(t *testing.T) {
	// Date-only deadlines parse as midnight UTC.
	cd, ok := Remaining("2025-01-02", testNow)
	require.True(t, ok)
	assert.Equal(t, CountdownUrgent, cd.State)
	assert.Equal(t, 24*time.Hour, cd.Remaining)
}
