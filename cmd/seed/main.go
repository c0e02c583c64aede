// cmd/seed - Imports demo hackathon data from a JSON fixture file.
//
// Usage: go run ./cmd/seed [fixture.json]
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"hackhub/database"
	"hackhub/models"

	"golang.org/x/crypto/bcrypt"
)

type SeedFile struct {
	Users      []SeedUser         `json:"users"`
	Hackathons []models.Hackathon `json:"hackathons"`
}

type SeedUser struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

func main() {
	path := "./fixtures/seed.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal("Failed to read seed file:", err)
	}

	var seed SeedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		log.Fatal("Failed to parse seed file:", err)
	}

	database.InitDB()
	db := database.GetDB()

	fmt.Printf("Seeding %d users\n", len(seed.Users))
	userIDs := make(map[string]uint, len(seed.Users))
	for _, su := range seed.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Failed to hash password:", err)
		}
		user := models.User{
			Username:    su.Username,
			Password:    string(hash),
			DisplayName: su.DisplayName,
		}
		if err := db.Where(models.User{Username: su.Username}).FirstOrCreate(&user).Error; err != nil {
			log.Printf("Error seeding user %s: %v\n", su.Username, err)
			continue
		}
		userIDs[su.Username] = user.ID
	}

	// Hackathons without an owner go to the first seeded user.
	var fallback uint
	for _, id := range userIDs {
		fallback = id
		break
	}

	fmt.Printf("Seeding %d hackathons\n", len(seed.Hackathons))
	batchSize := 100
	records := seed.Hackathons
	for i := range records {
		if records[i].OwnerID == 0 {
			records[i].OwnerID = fallback
		}
		if records[i].Status == "" {
			records[i].Status = models.StatusUpcoming
		}
	}
	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[i:end]
		if err := db.Create(&batch).Error; err != nil {
			log.Printf("Error inserting batch %d-%d: %v\n", i, end, err)
		} else {
			fmt.Printf("Inserted hackathons %d-%d\n", i+1, end)
		}
	}

	var count int64
	db.Model(&models.Hackathon{}).Count(&count)
	fmt.Printf("✓ Total hackathons in database: %d\n", count)
}
