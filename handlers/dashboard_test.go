package handlers

import (
	"testing"
	"time"

	"hackhub/models"
	"hackhub/priority"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	records := []models.Hackathon{
		{ID: 1, Title: "due tonight", Status: models.StatusOngoing, Type: models.TypeSolo, Deadline: "2025-01-01T03:00:00Z"},
		{ID: 2, Title: "next week", Status: models.StatusUpcoming, Type: models.TypeSolo, Deadline: "2025-01-10"},
		{ID: 3, Title: "team-only", Status: models.StatusOngoing, Type: models.TypeTeam},
		{ID: 4, Title: "untyped", Status: models.StatusPlanning},
	}

	view := buildDashboard(records, priority.TabSolo, false, now)

	// Team and untyped records are filtered out of the solo view.
	require.Len(t, view.Hackathons, 2)
	assert.Equal(t, uint(1), view.Hackathons[0].ID)
	assert.Equal(t, uint(2), view.Hackathons[1].ID)

	require.Len(t, view.Groups.Critical, 1)
	assert.Equal(t, uint(1), view.Groups.Critical[0].ID)
	require.Len(t, view.Groups.Other, 1)

	assert.Equal(t, 2, view.Counts.Total)
	assert.Equal(t, 1, view.Counts.Ongoing)

	require.Contains(t, view.Countdowns, uint(1))
	assert.Equal(t, priority.CountdownUrgent, view.Countdowns[uint(1)].State)

	require.Len(t, view.Alerts, 1)
	assert.Equal(t, uint(1), view.Alerts[0].ID)
	assert.Equal(t, 3, view.Alerts[0].HoursLeft)

	assert.Equal(t, now, view.GeneratedAt)
}

func TestBuildDashboardTeamViewSkipsTypeFilter(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	records := []models.Hackathon{
		{ID: 1, Title: "already scoped", Status: models.StatusOngoing},
		{ID: 2, Title: "also scoped", Status: models.StatusPlanning},
	}

	view := buildDashboard(records, priority.TabTeam, true, now)
	assert.Len(t, view.Hackathons, 2)
}

func TestResolveTab(t *testing.T) {
	team := uint(7)

	tab, teamView := resolveTab(nil, "")
	assert.Equal(t, priority.TabSolo, tab)
	assert.False(t, teamView)

	tab, teamView = resolveTab(&team, "")
	assert.Equal(t, priority.TabTeam, tab)
	assert.True(t, teamView)

	// An explicit tab narrows even a team-scoped request by type.
	tab, teamView = resolveTab(&team, "solo")
	assert.Equal(t, priority.TabSolo, tab)
	assert.False(t, teamView)

	tab, teamView = resolveTab(&team, "team")
	assert.Equal(t, priority.TabTeam, tab)
	assert.False(t, teamView)

	// Unknown tab values fall back to the active view.
	tab, teamView = resolveTab(&team, "everything")
	assert.Equal(t, priority.TabTeam, tab)
	assert.True(t, teamView)
}

func TestBuildDashboardNoDeadlines(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	records := []models.Hackathon{
		{ID: 1, Title: "no deadline", Status: models.StatusOngoing, Type: models.TypeSolo},
		{ID: 2, Title: "bad deadline", Status: models.StatusPlanning, Type: models.TypeSolo, Deadline: "whenever"},
	}

	view := buildDashboard(records, priority.TabSolo, false, now)
	assert.Empty(t, view.Countdowns)
	assert.Empty(t, view.Alerts)
	assert.Len(t, view.Hackathons, 2)
}
