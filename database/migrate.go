// database/migrate.go - Database Migration Runner
package database

import (
	"hackhub/models"
	"log"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	// Core application models
	if err := db.AutoMigrate(
		&models.User{},
		&models.Hackathon{},
	); err != nil {
		log.Fatalf("❌ Failed to run core migrations: %v", err)
	}

	log.Println("✅ Core migrations completed")

	// Run team migrations
	if err := RunTeamMigrations(db); err != nil {
		log.Fatalf("❌ Failed to run team migrations: %v", err)
	}

	// Create indexes for core tables
	createCoreIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createCoreIndexes creates indexes for core tables
func createCoreIndexes() {
	db := GetDB()
	log.Println("Creating core indexes...")

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")

	// Hackathon indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_hackathons_owner ON hackathons(owner_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_hackathons_team ON hackathons(team_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_hackathons_status ON hackathons(status)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_hackathons_updated ON hackathons(updated_at DESC)")

	log.Println("✅ Core indexes created successfully")
}
