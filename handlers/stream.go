// handlers/stream.go - Live dashboard stream over websocket
package handlers

import (
	"log"
	"strconv"
	"time"

	"hackhub/models"
	"hackhub/priority"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// recomputeInterval is how often a connected client's dashboard is rebuilt
// even when no data changed. Countdowns and groupings depend on the clock, so
// the view drifts stale without periodic pushes.
const recomputeInterval = 60 * time.Second

// StreamMessage is the envelope for every frame pushed to a stream client.
type StreamMessage struct {
	Type      string         `json:"type"`
	Dashboard *DashboardView `json:"dashboard,omitempty"`
	Teams     []models.Team  `json:"teams,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// UpgradeMiddleware rejects plain HTTP requests to the stream endpoint.
func UpgradeMiddleware(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// connUserID extracts the authenticated user from the upgraded connection's
// locals, which survive the handshake.
func connUserID(conn *websocket.Conn) (uint, bool) {
	switch v := conn.Locals("userId").(type) {
	case uint:
		return v, true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

// StreamDashboard pushes live dashboard snapshots to a connected client.
//
// A fresh view is sent on connect, after every data mutation in the watched
// scope, and once a minute so time-derived state stays current. The connection
// is scoped the same way as GET /api/dashboard: team_id selects the team view.
// GET /ws?token=&team_id=
func StreamDashboard(conn *websocket.Conn) {
	defer conn.Close()

	userID, ok := connUserID(conn)
	if !ok {
		conn.WriteJSON(StreamMessage{Type: "error", Error: "Unauthorized"})
		return
	}

	var teamID *uint
	if raw := conn.Query("team_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			conn.WriteJSON(StreamMessage{Type: "error", Error: "Invalid team ID"})
			return
		}
		t := uint(id)
		teamID = &t
	}

	sub := hackathonService.Watch(userID, teamID)
	defer sub.Unsubscribe()

	// The client's team list streams on the same connection so invite joins
	// and departures show up without a refresh.
	teamSub := teamService.WatchUserTeams(userID)
	defer teamSub.Unsubscribe()

	ticker := time.NewTicker(recomputeInterval)
	defer ticker.Stop()

	// Read pump: the client never sends data frames, but reading is what
	// surfaces close frames and dead peers.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	tab := priority.TabSolo
	if teamID != nil {
		tab = priority.TabTeam
	}

	var records []models.Hackathon
	push := func() bool {
		view := buildDashboard(records, tab, teamID != nil, time.Now().UTC())
		if err := conn.WriteJSON(StreamMessage{Type: "snapshot", Dashboard: &view}); err != nil {
			return false
		}
		return true
	}

	for {
		select {
		case sn, open := <-sub.C:
			if !open {
				return
			}
			if sn.Err != nil {
				log.Printf("❌ Dashboard stream fetch failed for user %d: %v", userID, sn.Err)
				if err := conn.WriteJSON(StreamMessage{Type: "error", Error: "Failed to load hackathons"}); err != nil {
					return
				}
				continue
			}
			if data, ok := sn.Data.([]models.Hackathon); ok {
				records = data
			}
			if !push() {
				return
			}
		case sn, open := <-teamSub.C:
			if !open {
				return
			}
			if sn.Err != nil {
				log.Printf("❌ Team stream fetch failed for user %d: %v", userID, sn.Err)
				continue
			}
			teams, ok := sn.Data.([]models.Team)
			if !ok {
				continue
			}
			if err := conn.WriteJSON(StreamMessage{Type: "teams", Teams: teams}); err != nil {
				return
			}
		case <-ticker.C:
			if !push() {
				return
			}
		case <-done:
			return
		}
	}
}
