package services

import (
	"strings"
	"testing"

	"hackhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeResources(t *testing.T) {
	in := []models.Resource{
		{Label: "  Figma board  ", URL: "figma.com/file/abc"},
		{Label: "Repo", URL: "https://github.com/acme/hack", ID: "keep-me", AddedAt: "2025-01-01T00:00:00Z"},
	}

	out, err := sanitizeResources(in)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "Figma board", out[0].Label)
	assert.Equal(t, "https://figma.com/file/abc", out[0].URL)
	assert.NotEmpty(t, out[0].ID)
	assert.NotEmpty(t, out[0].AddedAt)

	// Pre-existing identity survives re-sanitization on update.
	assert.Equal(t, "keep-me", out[1].ID)
	assert.Equal(t, "2025-01-01T00:00:00Z", out[1].AddedAt)
}

func TestSanitizeResourcesEnforcesCap(t *testing.T) {
	in := make([]models.Resource, models.MaxResources+1)
	for i := range in {
		in[i] = models.Resource{Label: "link", URL: "example.com"}
	}

	_, err := sanitizeResources(in)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestSanitizeResourcesRejectsBadInput(t *testing.T) {
	_, err := sanitizeResources([]models.Resource{{Label: "   ", URL: "example.com"}})
	assert.True(t, IsValidation(err))

	_, err = sanitizeResources([]models.Resource{{Label: "x", URL: "javascript:alert(1)"}})
	assert.True(t, IsValidation(err))

	_, err = sanitizeResources([]models.Resource{{Label: "<script>alert(1)</script>", URL: "example.com"}})
	assert.True(t, IsValidation(err))
}

func TestSanitizeResourcesTruncatesLongLabels(t *testing.T) {
	long := strings.Repeat("a", models.MaxTextLength+50)
	out, err := sanitizeResources([]models.Resource{{Label: long, URL: "example.com"}})
	require.NoError(t, err)
	assert.Len(t, out[0].Label, models.MaxTextLength)
}

func TestSanitizeTasks(t *testing.T) {
	out, err := sanitizeTasks([]models.Task{
		{Text: " build demo ", Deadline: " 2025-06-15 "},
		{Text: "submit", ID: "t-1", Done: true},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "build demo", out[0].Text)
	assert.Equal(t, "2025-06-15", out[0].Deadline)
	assert.NotEmpty(t, out[0].ID)

	assert.Equal(t, "t-1", out[1].ID)
	assert.True(t, out[1].Done)
}

func TestSanitizeTasksEnforcesCap(t *testing.T) {
	in := make([]models.Task, models.MaxTasks+1)
	for i := range in {
		in[i] = models.Task{Text: "t"}
	}

	_, err := sanitizeTasks(in)
	assert.True(t, IsValidation(err))
}

func TestSanitizeChecklist(t *testing.T) {
	out, err := sanitizeChecklist([]models.ChecklistItem{
		{Text: "  register team  "},
		{Text: "book room", ID: "c-1", Completed: true},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "register team", out[0].Text)
	assert.NotEmpty(t, out[0].ID)
	assert.Equal(t, "c-1", out[1].ID)
	assert.True(t, out[1].Completed)
}

func TestSanitizeChecklistEnforcesCap(t *testing.T) {
	in := make([]models.ChecklistItem, models.MaxChecklistItems+1)
	for i := range in {
		in[i] = models.ChecklistItem{Text: "x"}
	}

	_, err := sanitizeChecklist(in)
	assert.True(t, IsValidation(err))
}

func TestBuildUpdatesOmitsAbsentFields(t *testing.T) {
	tasks := []models.Task{{Text: "demo"}}
	updates, err := buildUpdates(HackathonUpdate{Tasks: &tasks})
	require.NoError(t, err)

	assert.Contains(t, updates, "tasks")
	assert.NotContains(t, updates, "checklist")
	assert.NotContains(t, updates, "resources")
	assert.NotContains(t, updates, "title")
	assert.NotContains(t, updates, "description")
	assert.NotContains(t, updates, "status")
	assert.NotContains(t, updates, "deadline")
}

func TestBuildUpdatesValidatesPresentFields(t *testing.T) {
	empty := "   "
	_, err := buildUpdates(HackathonUpdate{Title: &empty})
	assert.True(t, IsValidation(err))

	bogus := "Paused"
	_, err = buildUpdates(HackathonUpdate{Status: &bogus})
	assert.True(t, IsValidation(err))

	none := HackathonUpdate{}
	updates, err := buildUpdates(none)
	require.NoError(t, err)
	assert.Empty(t, updates)
}

func TestValidationErrorMessage(t *testing.T) {
	err := validation("resources", "resource label is required")
	assert.Equal(t, "resources: resource label is required", err.Error())
	assert.True(t, IsValidation(err))

	bare := validation("", "invalid invite code")
	assert.Equal(t, "invalid invite code", bare.Error())

	assert.False(t, IsValidation(ErrNotFound))
}
