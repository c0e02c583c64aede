// handlers/teams.go - Team management HTTP handlers
package handlers

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"hackhub/middleware"
	"hackhub/services"

	"github.com/gofiber/fiber/v2"
)

type CreateTeamRequest struct {
	Name string `json:"name"`
}

type JoinTeamRequest struct {
	InviteCode string `json:"invite_code"`
}

// teamError maps team service failures onto HTTP responses.
func teamError(c *fiber.Ctx, err error, fallback string) error {
	if services.IsValidation(err) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Team not found"})
	}
	log.Printf("❌ %s: %v", fallback, err)
	return c.Status(500).JSON(fiber.Map{"success": false, "error": fallback})
}

// CreateTeam creates a team and enrolls the caller as its owner.
// POST /api/teams
func CreateTeam(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req CreateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	team, err := teamService.CreateTeam(strings.TrimSpace(req.Name), userID)
	if err != nil {
		return teamError(c, err, "Failed to create team")
	}

	log.Printf("👥 Team created: %s (code %s)", team.Name, team.InviteCode)
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Team created successfully",
		"team":    team,
	})
}

// GetUserTeams lists the teams the caller belongs to.
// GET /api/teams
func GetUserTeams(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	teams, err := teamService.GetUserTeams(userID)
	if err != nil {
		return teamError(c, err, "Failed to retrieve teams")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"teams":   teams,
		"count":   len(teams),
	})
}

// GetTeam returns one team with its active member roster.
// GET /api/teams/:id
func GetTeam(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid team ID"})
	}

	if !teamService.IsTeamMember(userID, uint(id)) {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Not a member of this team"})
	}

	team, err := teamService.GetTeamByID(uint(id))
	if err != nil {
		return teamError(c, err, "Failed to retrieve team")
	}

	return c.JSON(fiber.Map{"success": true, "team": team})
}

// GetTeamMembers returns a team's active members.
// GET /api/teams/:id/members
func GetTeamMembers(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid team ID"})
	}

	if !teamService.IsTeamMember(userID, uint(id)) {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Not a member of this team"})
	}

	members, err := teamService.GetTeamMembers(uint(id))
	if err != nil {
		return teamError(c, err, "Failed to retrieve members")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"members": members,
		"count":   len(members),
	})
}

// JoinTeam enrolls the caller into the team behind an invite code.
// POST /api/teams/join
func JoinTeam(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req JoinTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	team, err := teamService.JoinTeam(userID, strings.TrimSpace(req.InviteCode))
	if err != nil {
		return teamError(c, err, "Failed to join team")
	}

	log.Printf("👥 User %d joined team %s", userID, team.Name)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Joined team successfully",
		"team":    team,
	})
}

// LeaveTeam deactivates the caller's membership. Owners cannot leave.
// POST /api/teams/:id/leave
func LeaveTeam(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid team ID"})
	}

	if err := teamService.LeaveTeam(userID, uint(id)); err != nil {
		return teamError(c, err, "Failed to leave team")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Left team successfully",
	})
}
