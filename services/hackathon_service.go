// services/hackathon_service.go - Hackathon record business logic
package services

import (
	"errors"
	"strings"
	"time"

	"hackhub/models"
	"hackhub/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HackathonCollection is the collection name live subscriptions key on.
const HackathonCollection = "hackathons"

type HackathonService struct {
	db  *gorm.DB
	hub *Hub
}

func NewHackathonService(db *gorm.DB, hub *Hub) *HackathonService {
	return &HackathonService{db: db, hub: hub}
}

// HackathonInput is the payload for creating a record. Owner, team and type
// are derived from the caller's context, never from the body.
type HackathonInput struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Status      string                 `json:"status"`
	Deadline    string                 `json:"deadline"`
	Resources   []models.Resource      `json:"resources"`
	Tasks       []models.Task          `json:"tasks"`
	Checklist   []models.ChecklistItem `json:"checklist"`
}

// HackathonUpdate carries a partial update; nil fields are left untouched
// (merge semantics, not replace). Owner, team and type are immutable.
type HackathonUpdate struct {
	Title       *string                 `json:"title"`
	Description *string                 `json:"description"`
	Status      *string                 `json:"status"`
	Deadline    *string                 `json:"deadline"`
	Resources   *[]models.Resource      `json:"resources"`
	Tasks       *[]models.Task          `json:"tasks"`
	Checklist   *[]models.ChecklistItem `json:"checklist"`
}

// ================== QUERIES ==================

// List returns the caller's visible records. Two-stage filter: a coarse
// server-side query by team or owner, then a strict in-process pass that
// keeps solo and team views exclusive ("team_id is null" combined with
// equality filters is what the strict pass handles).
func (s *HackathonService) List(userID uint, teamID *uint) ([]models.Hackathon, error) {
	var records []models.Hackathon

	if teamID != nil {
		if !s.isTeamMember(userID, *teamID) {
			return nil, validation("team_id", "not a member of this team")
		}
		if err := s.db.Where("team_id = ?", *teamID).
			Order("created_at ASC").
			Find(&records).Error; err != nil {
			return nil, err
		}
	} else {
		if err := s.db.Where("owner_id = ?", userID).
			Order("created_at ASC").
			Find(&records).Error; err != nil {
			return nil, err
		}
	}

	filtered := records[:0]
	for _, h := range records {
		if teamID != nil {
			if h.TeamID != nil && *h.TeamID == *teamID {
				filtered = append(filtered, h)
			}
		} else if h.TeamID == nil {
			filtered = append(filtered, h)
		}
	}
	return filtered, nil
}

// Get returns a single record if the caller owns it or belongs to its team.
func (s *HackathonService) Get(id, userID uint) (*models.Hackathon, error) {
	var h models.Hackathon
	if err := s.db.First(&h, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !s.canAccess(&h, userID) {
		return nil, ErrNotFound
	}
	return &h, nil
}

// Watch opens a live subscription on the caller's scoped record set. The
// subscription re-emits the full set after every committed mutation.
func (s *HackathonService) Watch(userID uint, teamID *uint) *Subscription {
	return s.hub.Subscribe(HackathonCollection, func() (interface{}, error) {
		return s.List(userID, teamID)
	})
}

// ================== MUTATIONS ==================

// Create validates and stores a new record, returning it with the generated
// ID and server-assigned timestamps. Type and team come from the caller's
// active context: team view produces team records, solo view solo records.
func (s *HackathonService) Create(userID uint, teamID *uint, input HackathonInput) (*models.Hackathon, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, validation("title", "title is required")
	}
	title = utils.ValidateLength(title, models.MaxTitleLength)
	if !utils.IsInputSafe(title) || !utils.IsInputSafe(input.Description) {
		return nil, validation("title", "invalid characters detected")
	}

	status := input.Status
	if status == "" {
		status = models.StatusUpcoming
	}
	if !models.ValidStatus(status) {
		return nil, validation("status", "unknown status")
	}

	recordType := models.TypeSolo
	if teamID != nil {
		if !s.isTeamMember(userID, *teamID) {
			return nil, validation("team_id", "not a member of this team")
		}
		recordType = models.TypeTeam
	}

	resources, err := sanitizeResources(input.Resources)
	if err != nil {
		return nil, err
	}
	tasks, err := sanitizeTasks(input.Tasks)
	if err != nil {
		return nil, err
	}
	checklist, err := sanitizeChecklist(input.Checklist)
	if err != nil {
		return nil, err
	}

	h := &models.Hackathon{
		Title:       title,
		Description: input.Description,
		Status:      status,
		Type:        recordType,
		OwnerID:     userID,
		TeamID:      teamID,
		Deadline:    strings.TrimSpace(input.Deadline),
		Resources:   resources,
		Tasks:       tasks,
		Checklist:   checklist,
	}

	if err := s.db.Create(h).Error; err != nil {
		return nil, err
	}

	s.hub.Notify(HackathonCollection)
	return h, nil
}

// Update merges the provided fields into an existing record. Fields not
// present in the update are never clobbered; in particular a tasks update
// leaves the checklist untouched and vice versa.
func (s *HackathonService) Update(id, userID uint, update HackathonUpdate) (*models.Hackathon, error) {
	h, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	updates, err := buildUpdates(update)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return h, nil
	}
	updates["updated_at"] = time.Now().UTC()

	if err := s.db.Model(h).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.hub.Notify(HackathonCollection)
	return s.Get(id, userID)
}

// buildUpdates translates a partial update into the column map handed to
// gorm. Only fields present in the request become keys, which is what keeps
// absent lists untouched in storage.
func buildUpdates(update HackathonUpdate) (map[string]interface{}, error) {
	updates := map[string]interface{}{}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, validation("title", "title is required")
		}
		title = utils.ValidateLength(title, models.MaxTitleLength)
		if !utils.IsInputSafe(title) {
			return nil, validation("title", "invalid characters detected")
		}
		updates["title"] = title
	}
	if update.Description != nil {
		if !utils.IsInputSafe(*update.Description) {
			return nil, validation("description", "invalid characters detected")
		}
		updates["description"] = *update.Description
	}
	if update.Status != nil {
		if !models.ValidStatus(*update.Status) {
			return nil, validation("status", "unknown status")
		}
		updates["status"] = *update.Status
	}
	if update.Deadline != nil {
		updates["deadline"] = strings.TrimSpace(*update.Deadline)
	}
	if update.Resources != nil {
		resources, err := sanitizeResources(*update.Resources)
		if err != nil {
			return nil, err
		}
		updates["resources"] = resources
	}
	if update.Tasks != nil {
		tasks, err := sanitizeTasks(*update.Tasks)
		if err != nil {
			return nil, err
		}
		updates["tasks"] = tasks
	}
	if update.Checklist != nil {
		checklist, err := sanitizeChecklist(*update.Checklist)
		if err != nil {
			return nil, err
		}
		updates["checklist"] = checklist
	}

	return updates, nil
}

// Delete removes a record. Deleting an id that no longer exists is not an
// error: the caller already confirmed the intent and the end state matches.
func (s *HackathonService) Delete(id, userID uint) error {
	var h models.Hackathon
	if err := s.db.First(&h, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if !s.canAccess(&h, userID) {
		return ErrNotFound
	}

	if err := s.db.Delete(&h).Error; err != nil {
		return err
	}

	s.hub.Notify(HackathonCollection)
	return nil
}

// ================== SUB-LIST OPERATIONS ==================

// AddResource appends a link to the record's resource list.
func (s *HackathonService) AddResource(id, userID uint, res models.Resource) (*models.Hackathon, error) {
	h, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}
	if len(h.Resources) >= models.MaxResources {
		return nil, validation("resources", "maximum 20 resources allowed per hackathon")
	}

	sanitized, err := sanitizeResources([]models.Resource{res})
	if err != nil {
		return nil, err
	}
	updated := append(h.Resources, sanitized[0])
	return s.Update(id, userID, HackathonUpdate{Resources: &updated})
}

// RemoveResource deletes a resource by its item id.
func (s *HackathonService) RemoveResource(id, userID uint, resourceID string) (*models.Hackathon, error) {
	h, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}
	updated := make([]models.Resource, 0, len(h.Resources))
	for _, r := range h.Resources {
		if r.ID != resourceID {
			updated = append(updated, r)
		}
	}
	return s.Update(id, userID, HackathonUpdate{Resources: &updated})
}

// AddTask appends an entry to the detailed task list.
func (s *HackathonService) AddTask(id, userID uint, task models.Task) (*models.Hackathon, error) {
	h, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}
	if len(h.Tasks) >= models.MaxTasks {
		return nil, validation("tasks", "maximum 50 tasks allowed per hackathon")
	}

	sanitized, err := sanitizeTasks([]models.Task{task})
	if err != nil {
		return nil, err
	}
	updated := append(h.Tasks, sanitized[0])
	return s.Update(id, userID, HackathonUpdate{Tasks: &updated})
}

// ToggleTask flips the done flag on one task.
func (s *HackathonService) ToggleTask(id, userID uint, taskID string) (*models.Hackathon, error) {
	h, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}
	updated := make([]models.Task, len(h.Tasks))
	copy(updated, h.Tasks)
	for i := range updated {
		if updated[i].ID == taskID {
			updated[i].Done = !updated[i].Done
		}
	}
	return s.Update(id, userID, HackathonUpdate{Tasks: &updated})
}

// RemoveTask deletes a task by its item id.
func (s *HackathonService) RemoveTask(id, userID uint, taskID string) (*models.Hackathon, error) {
	h, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}
	updated := make([]models.Task, 0, len(h.Tasks))
	for _, t := range h.Tasks {
		if t.ID != taskID {
			updated = append(updated, t)
		}
	}
	return s.Update(id, userID, HackathonUpdate{Tasks: &updated})
}

// AddChecklistItem appends an entry to the quick-task checklist.
func (s *HackathonService) AddChecklistItem(id, userID uint, item models.ChecklistItem) (*models.Hackathon, error) {
	h, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}
	if len(h.Checklist) >= models.MaxChecklistItems {
		return nil, validation("checklist", "maximum 50 checklist items allowed per hackathon")
	}

	sanitized, err := sanitizeChecklist([]models.ChecklistItem{item})
	if err != nil {
		return nil, err
	}
	updated := append(h.Checklist, sanitized[0])
	return s.Update(id, userID, HackathonUpdate{Checklist: &updated})
}

// ToggleChecklistItem flips the completed flag on one checklist item.
func (s *HackathonService) ToggleChecklistItem(id, userID uint, itemID string) (*models.Hackathon, error) {
	h, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}
	updated := make([]models.ChecklistItem, len(h.Checklist))
	copy(updated, h.Checklist)
	for i := range updated {
		if updated[i].ID == itemID {
			updated[i].Completed = !updated[i].Completed
		}
	}
	return s.Update(id, userID, HackathonUpdate{Checklist: &updated})
}

// RemoveChecklistItem deletes a checklist item by its item id.
func (s *HackathonService) RemoveChecklistItem(id, userID uint, itemID string) (*models.Hackathon, error) {
	h, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}
	updated := make([]models.ChecklistItem, 0, len(h.Checklist))
	for _, item := range h.Checklist {
		if item.ID != itemID {
			updated = append(updated, item)
		}
	}
	return s.Update(id, userID, HackathonUpdate{Checklist: &updated})
}

// ================== HELPERS ==================

// canAccess reports whether the user owns the record or belongs to its team.
func (s *HackathonService) canAccess(h *models.Hackathon, userID uint) bool {
	if h.OwnerID == userID {
		return true
	}
	if h.TeamID != nil {
		return s.isTeamMember(userID, *h.TeamID)
	}
	return false
}

func (s *HackathonService) isTeamMember(userID, teamID uint) bool {
	var count int64
	s.db.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ? AND is_active = ?", teamID, userID, true).
		Count(&count)
	return count > 0
}

// sanitizeResources validates labels and URLs, enforces the cap and fills in
// item ids and timestamps. Exported indirectly through Create/Update.
func sanitizeResources(in []models.Resource) ([]models.Resource, error) {
	if len(in) > models.MaxResources {
		return nil, validation("resources", "maximum 20 resources allowed per hackathon")
	}

	out := make([]models.Resource, 0, len(in))
	for _, r := range in {
		label := strings.TrimSpace(r.Label)
		if label == "" {
			return nil, validation("resources", "resource label is required")
		}
		label = utils.ValidateLength(label, models.MaxTextLength)
		if !utils.IsInputSafe(label) {
			return nil, validation("resources", "invalid characters detected in label")
		}

		url, err := utils.SanitizeURL(r.URL)
		if err != nil {
			return nil, validation("resources", "invalid resource URL")
		}

		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if r.AddedAt == "" {
			r.AddedAt = time.Now().UTC().Format(time.RFC3339)
		}
		r.Label = label
		r.URL = url
		out = append(out, r)
	}
	return out, nil
}

func sanitizeTasks(in []models.Task) ([]models.Task, error) {
	if len(in) > models.MaxTasks {
		return nil, validation("tasks", "maximum 50 tasks allowed per hackathon")
	}

	out := make([]models.Task, 0, len(in))
	for _, t := range in {
		text := strings.TrimSpace(t.Text)
		if text == "" {
			return nil, validation("tasks", "task text is required")
		}
		text = utils.ValidateLength(text, models.MaxTextLength)
		if !utils.IsInputSafe(text) {
			return nil, validation("tasks", "invalid characters detected in task")
		}

		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		t.Text = text
		t.Deadline = strings.TrimSpace(t.Deadline)
		out = append(out, t)
	}
	return out, nil
}

func sanitizeChecklist(in []models.ChecklistItem) ([]models.ChecklistItem, error) {
	if len(in) > models.MaxChecklistItems {
		return nil, validation("checklist", "maximum 50 checklist items allowed per hackathon")
	}

	out := make([]models.ChecklistItem, 0, len(in))
	for _, item := range in {
		text := strings.TrimSpace(item.Text)
		if text == "" {
			return nil, validation("checklist", "checklist text is required")
		}
		text = utils.ValidateLength(text, models.MaxTextLength)
		if !utils.IsInputSafe(text) {
			return nil, validation("checklist", "invalid characters detected in checklist item")
		}

		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		item.Text = text
		out = append(out, item)
	}
	return out, nil
}
