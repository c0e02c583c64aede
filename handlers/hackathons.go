// handlers/hackathons.go - Hackathon record HTTP handlers
package handlers

import (
	"errors"
	"log"
	"strconv"

	"hackhub/database"
	"hackhub/middleware"
	"hackhub/models"
	"hackhub/services"

	"github.com/gofiber/fiber/v2"
)

var (
	hub              *services.Hub
	hackathonService *services.HackathonService
	teamService      *services.TeamService
)

// InitHandlers wires the services shared by all handlers.
func InitHandlers() {
	db := database.GetDB()
	if db == nil {
		panic("Database not initialized before InitHandlers")
	}
	hub = services.NewHub()
	hackathonService = services.NewHackathonService(db, hub)
	teamService = services.NewTeamService(db, hub)
}

// currentTeamID reads the optional team scope from the team_id query param.
// No param means solo view.
func currentTeamID(c *fiber.Ctx) (*uint, error) {
	raw := c.Query("team_id")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, err
	}
	teamID := uint(id)
	return &teamID, nil
}

// serviceError maps service-layer failures onto HTTP responses: validation
// failures are 400s, missing records 404s, anything else a one-shot 500.
func serviceError(c *fiber.Ctx, err error, fallback string) error {
	if services.IsValidation(err) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Hackathon not found"})
	}
	log.Printf("❌ %s: %v", fallback, err)
	return c.Status(500).JSON(fiber.Map{"success": false, "error": fallback})
}

// ================== HACKATHON CRUD ENDPOINTS ==================

// ListHackathons returns the caller's visible records for the active view.
// GET /api/hackathons?team_id=
func ListHackathons(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	teamID, err := currentTeamID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid team ID"})
	}

	records, err := hackathonService.List(userID, teamID)
	if err != nil {
		return serviceError(c, err, "Failed to retrieve hackathons")
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"hackathons": records,
		"count":      len(records),
	})
}

// GetHackathon returns one record.
// GET /api/hackathons/:id
func GetHackathon(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid hackathon ID"})
	}

	h, err := hackathonService.Get(uint(id), userID)
	if err != nil {
		return serviceError(c, err, "Failed to retrieve hackathon")
	}

	return c.JSON(fiber.Map{"success": true, "hackathon": h})
}

// CreateHackathon creates a new record in the caller's active view. In team
// view (team_id present) the record belongs to the team; otherwise it is solo.
// POST /api/hackathons?team_id=
func CreateHackathon(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	teamID, err := currentTeamID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid team ID"})
	}

	var input services.HackathonInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	h, err := hackathonService.Create(userID, teamID, input)
	if err != nil {
		return serviceError(c, err, "Failed to create hackathon")
	}

	return c.Status(201).JSON(fiber.Map{
		"success":   true,
		"message":   "Hackathon created successfully",
		"hackathon": h,
	})
}

// UpdateHackathon merges the provided fields into a record. Absent fields are
// left as they are.
// PUT /api/hackathons/:id
func UpdateHackathon(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid hackathon ID"})
	}

	var update services.HackathonUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	h, err := hackathonService.Update(uint(id), userID, update)
	if err != nil {
		return serviceError(c, err, "Failed to update hackathon")
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Hackathon updated successfully",
		"hackathon": h,
	})
}

// DeleteHackathon removes a record. Deleting an already-deleted id succeeds.
// DELETE /api/hackathons/:id
func DeleteHackathon(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid hackathon ID"})
	}

	if err := hackathonService.Delete(uint(id), userID); err != nil {
		return serviceError(c, err, "Failed to delete hackathon")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Hackathon deleted successfully",
	})
}

// ================== RESOURCE ENDPOINTS ==================

// AddResource attaches a link to a record.
// POST /api/hackathons/:id/resources
func AddResource(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid hackathon ID"})
	}

	var res models.Resource
	if err := c.BodyParser(&res); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	h, err := hackathonService.AddResource(uint(id), userID, res)
	if err != nil {
		return serviceError(c, err, "Failed to add resource")
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "hackathon": h})
}

// RemoveResource detaches a link from a record.
// DELETE /api/hackathons/:id/resources/:resourceId
func RemoveResource(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid hackathon ID"})
	}

	h, err := hackathonService.RemoveResource(uint(id), userID, c.Params("resourceId"))
	if err != nil {
		return serviceError(c, err, "Failed to remove resource")
	}

	return c.JSON(fiber.Map{"success": true, "hackathon": h})
}

// ================== TASK ENDPOINTS ==================

// AddTask appends an entry to the detailed task list.
// POST /api/hackathons/:id/tasks
func AddTask(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid hackathon ID"})
	}

	var task models.Task
	if err := c.BodyParser(&task); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	h, err := hackathonService.AddTask(uint(id), userID, task)
	if err != nil {
		return serviceError(c, err, "Failed to add task")
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "hackathon": h})
}

// ToggleTask flips a task's done flag.
// PUT /api/hackathons/:id/tasks/:taskId
func ToggleTask(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid hackathon ID"})
	}

	h, err := hackathonService.ToggleTask(uint(id), userID, c.Params("taskId"))
	if err != nil {
		return serviceError(c, err, "Failed to update task")
	}

	return c.JSON(fiber.Map{"success": true, "hackathon": h})
}

// RemoveTask deletes a task.
// DELETE /api/hackathons/:id/tasks/:taskId
func RemoveTask(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid hackathon ID"})
	}

	h, err := hackathonService.RemoveTask(uint(id), userID, c.Params("taskId"))
	if err != nil {
		return serviceError(c, err, "Failed to remove task")
	}

	return c.JSON(fiber.Map{"success": true, "hackathon": h})
}

// ================== CHECKLIST ENDPOINTS ==================

// AddChecklistItem appends an entry to the quick-task checklist.
// POST /api/hackathons/:id/checklist
func AddChecklistItem(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid hackathon ID"})
	}

	var item models.ChecklistItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	h, err := hackathonService.AddChecklistItem(uint(id), userID, item)
	if err != nil {
		return serviceError(c, err, "Failed to add checklist item")
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "hackathon": h})
}

// ToggleChecklistItem flips a checklist item's completed flag.
// PUT /api/hackathons/:id/checklist/:itemId
func ToggleChecklistItem(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid hackathon ID"})
	}

	h, err := hackathonService.ToggleChecklistItem(uint(id), userID, c.Params("itemId"))
	if err != nil {
		return serviceError(c, err, "Failed to update checklist item")
	}

	return c.JSON(fiber.Map{"success": true, "hackathon": h})
}

// RemoveChecklistItem deletes a checklist item.
// DELETE /api/hackathons/:id/checklist/:itemId
func RemoveChecklistItem(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid hackathon ID"})
	}

	h, err := hackathonService.RemoveChecklistItem(uint(id), userID, c.Params("itemId"))
	if err != nil {
		return serviceError(c, err, "Failed to remove checklist item")
	}

	return c.JSON(fiber.Map{"success": true, "hackathon": h})
}
