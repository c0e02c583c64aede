// services/team_service.go - Team membership business logic
package services

import (
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"hackhub/models"

	"gorm.io/gorm"
)

// TeamCollection is the collection name team subscriptions key on.
const TeamCollection = "teams"

// Invite codes are 6 characters drawn from this alphabet.
const inviteCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const inviteCodeLength = 6

type TeamService struct {
	db  *gorm.DB
	hub *Hub
}

func NewTeamService(db *gorm.DB, hub *Hub) *TeamService {
	return &TeamService{db: db, hub: hub}
}

// ================== TEAM OPERATIONS ==================

// CreateTeam creates a new team with the user as its first (owner) member.
func (s *TeamService) CreateTeam(name string, creatorID uint) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validation("name", "team name is required")
	}

	inviteCode, err := s.generateUniqueInviteCode()
	if err != nil {
		return nil, err
	}

	team := &models.Team{
		Name:       name,
		InviteCode: inviteCode,
		IsActive:   true,
		CreatedBy:  creatorID,
		CreatedAt:  time.Now(),
	}

	// Create team and add creator as owner in a transaction
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}

		member := &models.TeamMember{
			TeamID:   team.ID,
			UserID:   creatorID,
			Role:     models.TeamRoleOwner,
			JoinedAt: time.Now(),
			IsActive: true,
		}

		return tx.Create(member).Error
	})

	if err != nil {
		return nil, err
	}

	s.hub.Notify(TeamCollection)
	return team, nil
}

// GetTeamByID retrieves a team by ID with members preloaded.
func (s *TeamService) GetTeamByID(teamID uint) (*models.Team, error) {
	var team models.Team
	err := s.db.Where("id = ? AND is_active = ?", teamID, true).
		Preload("Members", "is_active = ?", true).
		Preload("Members.User").
		First(&team).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &team, nil
}

// GetTeamByCode retrieves a team by its invite code. Codes are matched
// case-insensitively; clients may type them in lowercase.
func (s *TeamService) GetTeamByCode(code string) (*models.Team, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	var team models.Team
	err := s.db.Where("invite_code = ? AND is_active = ?", code, true).
		Preload("Members", "is_active = ?", true).
		First(&team).Error

	if err != nil {
		return nil, validation("invite_code", "invalid invite code")
	}

	return &team, nil
}

// GetUserTeams retrieves all teams a user is an active member of.
func (s *TeamService) GetUserTeams(userID uint) ([]models.Team, error) {
	var teams []models.Team

	err := s.db.Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ? AND team_members.is_active = ? AND teams.is_active = ?",
			userID, true, true).
		Preload("Members", "is_active = ?", true).
		Find(&teams).Error

	return teams, err
}

// WatchUserTeams opens a live subscription on the user's team list, so the
// client's team switcher updates when the user joins or is added elsewhere.
func (s *TeamService) WatchUserTeams(userID uint) *Subscription {
	return s.hub.Subscribe(TeamCollection, func() (interface{}, error) {
		return s.GetUserTeams(userID)
	})
}

// ================== MEMBERSHIP OPERATIONS ==================

// JoinTeam adds a user to a team via invite code. An unknown code and a
// duplicate membership are both validation failures local to the join flow.
func (s *TeamService) JoinTeam(userID uint, inviteCode string) (*models.Team, error) {
	team, err := s.GetTeamByCode(inviteCode)
	if err != nil {
		return nil, err
	}

	if s.IsTeamMember(userID, team.ID) {
		return nil, validation("invite_code", "already a member of this team")
	}

	member := &models.TeamMember{
		TeamID:   team.ID,
		UserID:   userID,
		Role:     models.TeamRoleMember,
		JoinedAt: time.Now(),
		IsActive: true,
	}

	if err := s.db.Create(member).Error; err != nil {
		return nil, err
	}

	s.hub.Notify(TeamCollection)
	return s.GetTeamByID(team.ID)
}

// LeaveTeam removes a user from a team. The owner stays put: teams are never
// deleted, so ownership has nowhere to go.
func (s *TeamService) LeaveTeam(userID, teamID uint) error {
	var member models.TeamMember
	if err := s.db.Where("team_id = ? AND user_id = ? AND is_active = ?", teamID, userID, true).
		First(&member).Error; err != nil {
		return validation("team_id", "not a member of this team")
	}

	if member.Role == models.TeamRoleOwner {
		return validation("team_id", "team owner cannot leave the team")
	}

	if err := s.db.Model(&member).Update("is_active", false).Error; err != nil {
		return err
	}

	s.hub.Notify(TeamCollection)
	return nil
}

// GetTeamMembers returns all active members of a team.
func (s *TeamService) GetTeamMembers(teamID uint) ([]models.TeamMember, error) {
	var members []models.TeamMember

	err := s.db.Where("team_id = ? AND is_active = ?", teamID, true).
		Preload("User").
		Order("role ASC, joined_at ASC").
		Find(&members).Error

	return members, err
}

// ================== HELPER FUNCTIONS ==================

// IsTeamMember checks if a user is an active member of a team.
func (s *TeamService) IsTeamMember(userID, teamID uint) bool {
	var count int64
	s.db.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ? AND is_active = ?", teamID, userID, true).
		Count(&count)
	return count > 0
}

// generateUniqueInviteCode generates a unique 6-character uppercase
// alphanumeric code.
func (s *TeamService) generateUniqueInviteCode() (string, error) {
	for {
		code, err := randomInviteCode()
		if err != nil {
			return "", err
		}

		var count int64
		s.db.Model(&models.Team{}).Where("invite_code = ?", code).Count(&count)
		if count == 0 {
			return code, nil
		}
	}
}

func randomInviteCode() (string, error) {
	bytes := make([]byte, inviteCodeLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	code := make([]byte, inviteCodeLength)
	for i, b := range bytes {
		code[i] = inviteCodeChars[int(b)%len(inviteCodeChars)]
	}
	return string(code), nil
}
