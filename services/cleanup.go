package services

import (
	"log"
	"time"

	"hackhub/database"
	"hackhub/models"
)

// CleanupService periodically removes stale guest accounts and their records.
type CleanupService struct {
	interval time.Duration
	maxAge   time.Duration
	stop     chan struct{}
}

var cleanupService *CleanupService

// InitCleanupService initializes and starts the singleton cleanup service.
func InitCleanupService() {
	cleanupService = &CleanupService{
		interval: 6 * time.Hour,
		maxAge:   30 * 24 * time.Hour,
		stop:     make(chan struct{}),
	}
	go cleanupService.run()
}

// GetCleanupService returns the initialized cleanup service.
func GetCleanupService() *CleanupService {
	return cleanupService
}

func (s *CleanupService) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.CleanupStaleGuests(); err != nil {
				log.Printf("Guest cleanup failed: %v", err)
			}
		case <-s.stop:
			return
		}
	}
}

// Stop stops the background cleanup worker.
func (s *CleanupService) Stop() {
	close(s.stop)
}

// CleanupStaleGuests deletes guest accounts that have not logged in for the
// retention window, along with their solo hackathons.
func (s *CleanupService) CleanupStaleGuests() error {
	db := database.GetDB()
	if db == nil {
		return nil
	}

	cutoff := time.Now().Add(-s.maxAge)

	var stale []models.User
	if err := db.Where("is_guest = ? AND last_login < ?", true, cutoff).
		Find(&stale).Error; err != nil {
		log.Printf("Error finding stale guests: %v", err)
		return err
	}

	if len(stale) == 0 {
		return nil
	}

	ids := make([]uint, len(stale))
	for i, u := range stale {
		ids[i] = u.ID
	}

	if err := db.Where("owner_id IN ? AND team_id IS NULL", ids).
		Delete(&models.Hackathon{}).Error; err != nil {
		log.Printf("Error deleting stale guest hackathons: %v", err)
		return err
	}
	if err := db.Delete(&stale).Error; err != nil {
		log.Printf("Error deleting stale guests: %v", err)
		return err
	}

	log.Printf("✅ Cleaned up %d stale guest accounts", len(stale))
	return nil
}
