package services

import (
	"fmt"
	"testing"
	"time"

	"hackhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestService opens a per-test in-memory database. The shared-cache DSN is
// keyed by test name so gorm's connection pool sees one database per test.
func newTestService(t *testing.T) (*HackathonService, uint) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.Hackathon{},
	))

	owner := models.User{Username: "owner"}
	require.NoError(t, db.Create(&owner).Error)

	return NewHackathonService(db, NewHub()), owner.ID
}

func TestUpdateTasksLeavesChecklistUntouched(t *testing.T) {
	svc, owner := newTestService(t)

	created, err := svc.Create(owner, nil, HackathonInput{
		Title:     "AI Hackathon",
		Tasks:     []models.Task{{Text: "scaffold repo"}},
		Checklist: []models.ChecklistItem{{Text: "register"}, {Text: "book room"}},
		Resources: []models.Resource{{Label: "Repo", URL: "github.com/acme/hack"}},
	})
	require.NoError(t, err)

	newTasks := []models.Task{{Text: "scaffold repo", Done: true}, {Text: "record demo"}}
	updated, err := svc.Update(created.ID, owner, HackathonUpdate{Tasks: &newTasks})
	require.NoError(t, err)

	require.Len(t, updated.Tasks, 2)
	assert.Equal(t, "record demo", updated.Tasks[1].Text)

	// The absent lists survived the round-trip through the jsonb columns.
	require.Len(t, updated.Checklist, 2)
	assert.Equal(t, "register", updated.Checklist[0].Text)
	assert.Equal(t, "book room", updated.Checklist[1].Text)
	require.Len(t, updated.Resources, 1)
	assert.Equal(t, "https://github.com/acme/hack", updated.Resources[0].URL)
	assert.Equal(t, "AI Hackathon", updated.Title)
}

func TestUpdateMergesScalars(t *testing.T) {
	svc, owner := newTestService(t)

	created, err := svc.Create(owner, nil, HackathonInput{
		Title:       "AI Hackathon",
		Description: "48h sprint",
		Deadline:    "2025-06-15",
	})
	require.NoError(t, err)

	status := models.StatusOngoing
	updated, err := svc.Update(created.ID, owner, HackathonUpdate{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, models.StatusOngoing, updated.Status)
	assert.Equal(t, "AI Hackathon", updated.Title)
	assert.Equal(t, "48h sprint", updated.Description)
	assert.Equal(t, "2025-06-15", updated.Deadline)
}

func TestDeleteTwiceSucceeds(t *testing.T) {
	svc, owner := newTestService(t)

	created, err := svc.Create(owner, nil, HackathonInput{Title: "throwaway"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(created.ID, owner))

	// The record is gone; a repeat delete reports the same end state.
	_, err = svc.Get(created.ID, owner)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, svc.Delete(created.ID, owner))
}

func TestAddResourceRejectsTwentyFirst(t *testing.T) {
	svc, owner := newTestService(t)

	full := make([]models.Resource, models.MaxResources)
	for i := range full {
		full[i] = models.Resource{
			Label: fmt.Sprintf("link %d", i),
			URL:   fmt.Sprintf("example.com/%d", i),
		}
	}

	created, err := svc.Create(owner, nil, HackathonInput{Title: "resource heavy", Resources: full})
	require.NoError(t, err)
	require.Len(t, created.Resources, models.MaxResources)

	_, err = svc.AddResource(created.ID, owner, models.Resource{Label: "one too many", URL: "example.com/21"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	// Nothing was written past the cap.
	after, err := svc.Get(created.ID, owner)
	require.NoError(t, err)
	assert.Len(t, after.Resources, models.MaxResources)
}
