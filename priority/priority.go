// priority/priority.go - Deadline-driven prioritization and grouping
//
// Pure functions over the hackathon record set. Everything here takes an
// explicit "now" so dashboards and tests can pin the clock; callers that render
// these results re-run them at least once per minute because the output is a
// function of wall-clock time.
package priority

import (
	"sort"
	"strings"
	"time"

	"hackhub/models"
	"hackhub/utils"
)

// Tab identifies the dashboard tab being viewed.
type Tab string

const (
	TabSolo Tab = "solo"
	TabTeam Tab = "team"
)

// Time thresholds. The sort considers anything inside five days urgent while
// the Critical group is the tighter 48-hour window; the two tiers are distinct
// on purpose.
const (
	urgentWindow   = 5 * 24 * time.Hour
	criticalWindow = 48 * time.Hour
)

// deadlineAt returns the parsed deadline, or ok=false when the record has none
// or the stored value is malformed.
func deadlineAt(h models.Hackathon) (time.Time, bool) {
	return utils.ParseDeadline(h.Deadline)
}

// FilterByTab returns the subset of records relevant to the active tab.
//
// In team view the caller has already scoped the set to one team, so it passes
// through untouched. Otherwise records are matched by type, case-insensitive.
// A record with a missing or unknown type appears in neither tab (fails closed),
// rather than defaulting into the solo view.
func FilterByTab(records []models.Hackathon, tab Tab, teamView bool) []models.Hackathon {
	if teamView {
		return records
	}

	filtered := make([]models.Hackathon, 0, len(records))
	for _, h := range records {
		itemType := "unknown"
		if h.Type != "" {
			itemType = strings.ToLower(h.Type)
		}
		if itemType == string(tab) {
			filtered = append(filtered, h)
		}
	}
	return filtered
}

// Score computes the sort priority of a record; higher sorts first.
//
//	3 - deadline inside the 5-day urgent window
//	2 - status Ongoing
//	1 - status Planning or Upcoming
//	0 - everything else
func Score(h models.Hackathon, now time.Time) int {
	if deadline, ok := deadlineAt(h); ok {
		delta := deadline.Sub(now)
		if delta > 0 && delta < urgentWindow {
			return 3
		}
	}
	switch h.Status {
	case models.StatusOngoing:
		return 2
	case models.StatusPlanning, models.StatusUpcoming:
		return 1
	}
	return 0
}

// Sort orders records by descending priority. Ties are broken by ascending
// deadline; a record with a deadline sorts before one without; records with
// neither retain input order (the sort is stable).
func Sort(records []models.Hackathon, now time.Time) []models.Hackathon {
	sorted := make([]models.Hackathon, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := Score(sorted[i], now), Score(sorted[j], now)
		if si != sj {
			return si > sj
		}

		di, iok := deadlineAt(sorted[i])
		dj, jok := deadlineAt(sorted[j])
		switch {
		case iok && jok:
			return di.Before(dj)
		case iok:
			return true
		default:
			return false
		}
	})

	return sorted
}

// Groups is the three-way display partition of a record subset. Every record
// lands in exactly one group.
type Groups struct {
	Critical []models.Hackathon `json:"critical"`
	Active   []models.Hackathon `json:"active"`
	Other    []models.Hackathon `json:"other"`
}

// Group partitions records for sectioned display:
//
//	Critical - deadline within 48 hours (and not past)
//	Active   - status Ongoing, unless already Critical
//	Other    - everything else
func Group(records []models.Hackathon, now time.Time) Groups {
	groups := Groups{
		Critical: []models.Hackathon{},
		Active:   []models.Hackathon{},
		Other:    []models.Hackathon{},
	}

	for _, h := range records {
		if deadline, ok := deadlineAt(h); ok {
			delta := deadline.Sub(now)
			if delta > 0 && delta < criticalWindow {
				groups.Critical = append(groups.Critical, h)
				continue
			}
		}
		if h.Status == models.StatusOngoing {
			groups.Active = append(groups.Active, h)
			continue
		}
		groups.Other = append(groups.Other, h)
	}

	return groups
}

// Counts is the dashboard statistics bar over the filtered subset.
type Counts struct {
	Total     int `json:"total"`
	Ongoing   int `json:"ongoing"`
	Completed int `json:"completed"`
}

// Summarize computes the counts shown above the dashboard grid.
func Summarize(records []models.Hackathon) Counts {
	counts := Counts{Total: len(records)}
	for _, h := range records {
		switch h.Status {
		case models.StatusOngoing:
			counts.Ongoing++
		case models.StatusCompleted:
			counts.Completed++
		}
	}
	return counts
}
