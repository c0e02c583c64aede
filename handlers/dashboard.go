// handlers/dashboard.go - Prioritized dashboard and deadline notifications
package handlers

import (
	"strconv"
	"time"

	"hackhub/middleware"
	"hackhub/models"
	"hackhub/priority"

	"github.com/gofiber/fiber/v2"
)

// DashboardView is one fully derived dashboard payload: the prioritized
// record order, the sectioned partition, the stats bar, per-record countdowns
// and the pending deadline alerts. The same shape is pushed over the
// websocket stream.
type DashboardView struct {
	Hackathons  []models.Hackathon           `json:"hackathons"`
	Groups      priority.Groups              `json:"groups"`
	Counts      priority.Counts              `json:"counts"`
	Countdowns  map[uint]*priority.Countdown `json:"countdowns"`
	Alerts      []priority.Alert             `json:"alerts"`
	GeneratedAt time.Time                    `json:"generated_at"`
}

// buildDashboard derives the full dashboard view from a record set at a fixed
// instant. Records whose deadline is absent or unparseable get no countdown
// entry.
func buildDashboard(records []models.Hackathon, tab priority.Tab, teamView bool, now time.Time) DashboardView {
	visible := priority.FilterByTab(records, tab, teamView)
	sorted := priority.Sort(visible, now)

	countdowns := make(map[uint]*priority.Countdown, len(sorted))
	for _, h := range sorted {
		if cd, ok := priority.Remaining(h.Deadline, now); ok {
			c := cd
			countdowns[h.ID] = &c
		}
	}

	return DashboardView{
		Hackathons:  sorted,
		Groups:      priority.Group(sorted, now),
		Counts:      priority.Summarize(sorted),
		Countdowns:  countdowns,
		Alerts:      priority.UpcomingAlerts(sorted, now),
		GeneratedAt: now,
	}
}

// resolveTab picks the type filter for a dashboard request. The active view
// sets the default: team scope passes records through, solo scope filters by
// type. An explicit ?tab= re-applies the type filter even on a team-scoped
// set, so a team dashboard can be narrowed to its solo- or team-typed records.
func resolveTab(teamID *uint, query string) (priority.Tab, bool) {
	if t := priority.Tab(query); t == priority.TabSolo || t == priority.TabTeam {
		return t, false
	}
	if teamID != nil {
		return priority.TabTeam, true
	}
	return priority.TabSolo, false
}

// GetDashboard returns the prioritized dashboard for the caller's active view.
// With team_id set the team's shared records are shown; otherwise the caller's
// solo records.
// GET /api/dashboard?tab=&team_id=
func GetDashboard(c *fiber.Ctx) error {
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
		return serviceError(c, err, "Failed to build dashboard")
	}

	tab, teamView := resolveTab(teamID, c.Query("tab"))
	view := buildDashboard(records, tab, teamView, time.Now().UTC())

	return c.JSON(fiber.Map{
		"success":   true,
		"dashboard": view,
	})
}

// GetNotifications returns deadline alerts for records due within the next
// six hours, closest deadline first.
// GET /api/notifications?team_id=
func GetNotifications(c *fiber.Ctx) error {
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
		return serviceError(c, err, "Failed to retrieve notifications")
	}

	alerts := priority.UpcomingAlerts(records, time.Now().UTC())
	return c.JSON(fiber.Map{
		"success": true,
		"alerts":  alerts,
		"count":   len(alerts),
	})
}

// GetCountdown returns the live countdown for one record.
// GET /api/hackathons/:id/countdown
func GetCountdown(c *fiber.Ctx) error {
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
		return serviceError(c, err, "Failed to retrieve countdown")
	}

	cd, ok := priority.Remaining(h.Deadline, time.Now().UTC())
	if !ok {
		return c.JSON(fiber.Map{"success": true, "countdown": nil})
	}

	return c.JSON(fiber.Map{"success": true, "countdown": cd})
}
