// models/team.go
package models

import "time"

type Team struct {
	ID         uint         `json:"id" gorm:"primaryKey"`
	Name       string       `json:"name" gorm:"not null;size:100"`
	InviteCode string       `json:"invite_code" gorm:"unique;size:10"`
	IsActive   bool         `json:"is_active" gorm:"default:true;index"`
	CreatedBy  uint         `json:"created_by" gorm:"not null"`
	Creator    *User        `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Members    []TeamMember `json:"members,omitempty" gorm:"foreignKey:TeamID"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}
