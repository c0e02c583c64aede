// priority/countdown.go - Coarse "time remaining" labels for deadlines
package priority

import (
	"fmt"
	"time"

	"hackhub/utils"
)

// CountdownState classifies how close a deadline is.
type CountdownState string

const (
	CountdownOverdue CountdownState = "overdue"
	CountdownUrgent  CountdownState = "urgent"
	CountdownNormal  CountdownState = "normal"
)

// Countdown is the derived time-remaining view for one deadline. Remaining is
// negative once the deadline has passed.
type Countdown struct {
	State     CountdownState `json:"state"`
	Label     string         `json:"label"`
	Remaining time.Duration  `json:"-"`
}

// Remaining derives the countdown for a stored deadline string. ok is false
// when the record has no deadline or the value is malformed; callers simply
// render nothing in that case.
func Remaining(deadline string, now time.Time) (Countdown, bool) {
	target, parsed := utils.ParseDeadline(deadline)
	if !parsed {
		return Countdown{}, false
	}

	delta := target.Sub(now)
	if delta <= 0 {
		return Countdown{State: CountdownOverdue, Label: "Overdue", Remaining: delta}, true
	}

	days := int(delta / (24 * time.Hour))
	hours := int(delta/time.Hour) % 24
	minutes := int(delta/time.Minute) % 60

	var label string
	if days > 0 {
		label = fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	} else {
		label = fmt.Sprintf("%dh %dm", hours, minutes)
	}

	state := CountdownNormal
	if delta < urgentWindow {
		state = CountdownUrgent
	}

	return Countdown{State: state, Label: label, Remaining: delta}, true
}
