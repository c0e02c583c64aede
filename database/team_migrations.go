// database/team_migrations.go - Team Database Migrations
package database

import (
	"hackhub/models"
	"log"

	"gorm.io/gorm"
)

// RunTeamMigrations creates the team tables
func RunTeamMigrations(db *gorm.DB) error {
	log.Println("Running team migrations...")

	if err := db.AutoMigrate(
		&models.Team{},
		&models.TeamMember{},
	); err != nil {
		return err
	}

	if err := createTeamIndexes(db); err != nil {
		return err
	}

	log.Println("✅ Team migrations completed successfully")
	return nil
}

// createTeamIndexes creates database indexes for team tables
func createTeamIndexes(db *gorm.DB) error {
	log.Println("Creating team indexes...")

	// Team indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_teams_creator ON teams(created_by)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_teams_code ON teams(invite_code)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_teams_active ON teams(is_active)")

	// Team member indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_team_members_team ON team_members(team_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_team_members_user ON team_members(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_team_members_active ON team_members(is_active)")

	log.Println("✅ Team indexes created successfully")
	return nil
}
