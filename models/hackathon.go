// models/hackathon.go
package models

import "time"

// Status values a hackathon can be in.
const (
	StatusUpcoming  = "Upcoming"
	StatusOngoing   = "Ongoing"
	StatusPlanning  = "Planning"
	StatusCompleted = "Completed"
)

// Type values determine which dashboard tab a hackathon appears in.
const (
	TypeSolo = "solo"
	TypeTeam = "team"
)

// Practical caps on list-valued fields, to bound storage and render cost.
const (
	MaxResources      = 20
	MaxTasks          = 50
	MaxChecklistItems = 50
	MaxTitleLength    = 100
	MaxTextLength     = 200
)

// ValidStatus reports whether s is one of the four known statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusUpcoming, StatusOngoing, StatusPlanning, StatusCompleted:
		return true
	}
	return false
}

// Resource is a link attached to a hackathon (GitHub repo, slides, drive folder...).
type Resource struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	URL     string `json:"url"`
	Type    string `json:"type"`
	AddedAt string `json:"added_at,omitempty"`
}

// Task is an entry in the detailed task list. Deadline is optional and kept
// as the raw string the client sent; unparseable values degrade to "no deadline".
type Task struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Done     bool   `json:"done"`
	Deadline string `json:"deadline,omitempty"`
}

// ChecklistItem is an entry in the lightweight quick-task list.
type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type Hackathon struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"not null;size:100"`
	Description string          `json:"description" gorm:"type:text"`
	Status      string          `json:"status" gorm:"not null;default:'Upcoming';size:20;index"`
	Type        string          `json:"type" gorm:"size:10;index"`
	OwnerID     uint            `json:"owner_id" gorm:"not null;index"`
	Owner       *User           `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	TeamID      *uint           `json:"team_id" gorm:"index"`
	Team        *Team           `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	Deadline    string          `json:"deadline" gorm:"size:64"`
	Resources   []Resource      `json:"resources" gorm:"type:jsonb;serializer:json"`
	Tasks       []Task          `json:"tasks" gorm:"type:jsonb;serializer:json"`
	Checklist   []ChecklistItem `json:"checklist" gorm:"type:jsonb;serializer:json"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Hackathon) TableName() string {
	return "hackathons"
}
