// priority/alerts.go - Imminent-deadline alerts for the notification bell
package priority

import (
	"sort"
	"time"

	"hackhub/models"
	"hackhub/utils"
)

// Alert window: deadlines closer than this surface in the notification list.
const alertWindow = 6 * time.Hour

// Alert is a read-only projection of one record with an imminent deadline.
type Alert struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Deadline    string        `json:"deadline"`
	HoursLeft   int           `json:"hours_left"`
	MinutesLeft int           `json:"minutes_left"`
	TimeUntil   time.Duration `json:"-"`
}

// UpcomingAlerts returns alerts for records due within six hours, most urgent
// first. Completed records never alert; records without a parseable deadline
// are skipped.
func UpcomingAlerts(records []models.Hackathon, now time.Time) []Alert {
	alerts := []Alert{}

	for _, h := range records {
		if h.Status == models.StatusCompleted {
			continue
		}

		deadline, ok := utils.ParseDeadline(h.Deadline)
		if !ok {
			continue
		}

		timeUntil := deadline.Sub(now)
		if timeUntil <= 0 || timeUntil >= alertWindow {
			continue
		}

		alerts = append(alerts, Alert{
			ID:          h.ID,
			Title:       h.Title,
			Deadline:    h.Deadline,
			HoursLeft:   int(timeUntil / time.Hour),
			MinutesLeft: int(timeUntil/time.Minute) % 60,
			TimeUntil:   timeUntil,
		})
	}

	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].TimeUntil < alerts[j].TimeUntil
	})

	return alerts
}
