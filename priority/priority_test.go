package priority

import (
	"testing"
	"time"

	"hackhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func record(id uint, title, status, typ, deadline string) models.Hackathon {
	return models.Hackathon{
		ID:       id,
		Title:    title,
		Status:   status,
		Type:     typ,
		Deadline: deadline,
	}
}

func TestFilterByTab(t *testing.T) {
	records := []models.Hackathon{
		record(1, "solo one", models.StatusOngoing, models.TypeSolo, ""),
		record(2, "team one", models.StatusOngoing, models.TypeTeam, ""),
		record(3, "mixed case", models.StatusOngoing, "Solo", ""),
		record(4, "no type", models.StatusOngoing, "", ""),
		record(5, "garbage type", models.StatusOngoing, "banana", ""),
	}

	solo := FilterByTab(records, TabSolo, false)
	require.Len(t, solo, 2)
	assert.Equal(t, uint(1), solo[0].ID)
	assert.Equal(t, uint(3), solo[1].ID)

	team := FilterByTab(records, TabTeam, false)
	require.Len(t, team, 1)
	assert.Equal(t, uint(2), team[0].ID)
}

func TestFilterByTabUnknownTypeAppearsNowhere(t *testing.T) {
	records := []models.Hackathon{
		record(1, "no type", models.StatusOngoing, "", ""),
		record(2, "bad type", models.StatusOngoing, "whatever", ""),
	}

	assert.Empty(t, FilterByTab(records, TabSolo, false))
	assert.Empty(t, FilterByTab(records, TabTeam, false))
}

func TestFilterByTabTeamViewPassesThrough(t *testing.T) {
	records := []models.Hackathon{
		record(1, "a", models.StatusOngoing, "", ""),
		record(2, "b", models.StatusPlanning, models.TypeTeam, ""),
	}

	assert.Equal(t, records, FilterByTab(records, TabTeam, true))
}

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		h    models.Hackathon
		want int
	}{
		{"deadline in 36h", record(1, "", models.StatusUpcoming, "", "2025-01-02T12:00:00Z"), 3},
		{"deadline in 4d23h", record(2, "", models.StatusCompleted, "", "2025-01-05T23:00:00Z"), 3},
		{"deadline exactly 5d away", record(3, "", models.StatusCompleted, "", "2025-01-06T00:00:00Z"), 0},
		{"past deadline ongoing", record(4, "", models.StatusOngoing, "", "2024-12-30T00:00:00Z"), 2},
		{"ongoing no deadline", record(5, "", models.StatusOngoing, "", ""), 2},
		{"planning", record(6, "", models.StatusPlanning, "", ""), 1},
		{"upcoming far deadline", record(7, "", models.StatusUpcoming, "", "2025-03-01"), 1},
		{"completed", record(8, "", models.StatusCompleted, "", ""), 0},
		{"malformed deadline falls back to status", record(9, "", models.StatusOngoing, "", "not-a-date"), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.h, testNow))
		})
	}
}

func TestSortOrdersByScoreThenDeadline(t *testing.T) {
	records := []models.Hackathon{
		record(1, "planning", models.StatusPlanning, "", ""),
		record(2, "due later this week", models.StatusUpcoming, "", "2025-01-04T00:00:00Z"),
		record(3, "ongoing", models.StatusOngoing, "", ""),
		record(4, "due tomorrow", models.StatusUpcoming, "", "2025-01-02T00:00:00Z"),
		record(5, "done", models.StatusCompleted, "", ""),
	}

	sorted := Sort(records, testNow)

	var ids []uint
	for _, h := range sorted {
		ids = append(ids, h.ID)
	}
	assert.Equal(t, []uint{4, 2, 3, 1, 5}, ids)
}

func TestSortDoesNotMutateInput(t *testing.T) {
	records := []models.Hackathon{
		record(1, "planning", models.StatusPlanning, "", ""),
		record(2, "ongoing", models.StatusOngoing, "", ""),
	}

	Sort(records, testNow)
	assert.Equal(t, uint(1), records[0].ID)
}

func TestSortIsStableForEqualRecords(t *testing.T) {
	records := []models.Hackathon{
		record(1, "first", models.StatusPlanning, "", ""),
		record(2, "second", models.StatusPlanning, "", ""),
		record(3, "third", models.StatusPlanning, "", ""),
	}

	sorted := Sort(records, testNow)
	assert.Equal(t, uint(1), sorted[0].ID)
	assert.Equal(t, uint(2), sorted[1].ID)
	assert.Equal(t, uint(3), sorted[2].ID)
}

func TestSortDeadlineBearingBeforeDeadlineless(t *testing.T) {
	records := []models.Hackathon{
		record(1, "no deadline", models.StatusPlanning, "", ""),
		record(2, "far deadline", models.StatusPlanning, "", "2025-06-01"),
	}

	sorted := Sort(records, testNow)
	assert.Equal(t, uint(2), sorted[0].ID)
}

func TestGroupPartition(t *testing.T) {
	records := []models.Hackathon{
		record(1, "due in 36h", models.StatusUpcoming, "", "2025-01-02T12:00:00Z"),
		record(2, "ongoing due in 54h", models.StatusOngoing, "", "2025-01-03T06:00:00Z"),
		record(3, "upcoming next week", models.StatusUpcoming, "", "2025-01-10"),
		record(4, "overdue ongoing", models.StatusOngoing, "", "2024-12-31T00:00:00Z"),
		record(5, "done", models.StatusCompleted, "", ""),
	}

	groups := Group(records, testNow)

	require.Len(t, groups.Critical, 1)
	assert.Equal(t, uint(1), groups.Critical[0].ID)

	// Inside the urgent window but outside 48h: grouped by status, not deadline.
	require.Len(t, groups.Active, 2)
	assert.Equal(t, uint(2), groups.Active[0].ID)
	assert.Equal(t, uint(4), groups.Active[1].ID)

	require.Len(t, groups.Other, 2)
	assert.Equal(t, uint(3), groups.Other[0].ID)
	assert.Equal(t, uint(5), groups.Other[1].ID)

	total := len(groups.Critical) + len(groups.Active) + len(groups.Other)
	assert.Equal(t, len(records), total)
}

func TestGroupEmptyInput(t *testing.T) {
	groups := Group(nil, testNow)
	assert.NotNil(t, groups.Critical)
	assert.NotNil(t, groups.Active)
	assert.NotNil(t, groups.Other)
	assert.Empty(t, groups.Critical)
}

func TestSummarize(t *testing.T) {
	records := []models.Hackathon{
		record(1, "", models.StatusOngoing, "", ""),
		record(2, "", models.StatusOngoing, "", ""),
		record(3, "", models.StatusCompleted, "", ""),
		record(4, "", models.StatusPlanning, "", ""),
		record(5, "", models.StatusUpcoming, "", ""),
	}

	counts := Summarize(records)
	assert.Equal(t, 5, counts.Total)
	assert.Equal(t, 2, counts.Ongoing)
	assert.Equal(t, 1, counts.Completed)
}
