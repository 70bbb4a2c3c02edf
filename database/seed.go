// database/seed.go - Default ranks and badges
package database

import (
	"log"

	"academy/models"

	"gorm.io/gorm"
)

// SeedDefaults inserts the default rank ladder and badge set if the
// tables are empty. Existing rows are never touched, so admin edits
// survive restarts.
func SeedDefaults(db *gorm.DB) {
	seedRanks(db)
	seedBadges(db)
}

func seedRanks(db *gorm.DB) {
	var count int64
	db.Model(&models.Rank{}).Count(&count)
	if count > 0 {
		return
	}

	ranks := []models.Rank{
		{Name: "Novice", MinXP: 0, OrderIndex: 1, Icon: "🌱"},
		{Name: "Apprentice", MinXP: 100, OrderIndex: 2, Icon: "🔨"},
		{Name: "Journeyman", MinXP: 500, OrderIndex: 3, Icon: "⚒️"},
		{Name: "Expert", MinXP: 1500, OrderIndex: 4, Icon: "🏅"},
		{Name: "Master", MinXP: 5000, OrderIndex: 5, Icon: "👑"},
	}

	if err := db.Create(&ranks).Error; err != nil {
		log.Printf("Failed to seed ranks: %v", err)
		return
	}
	log.Printf("✅ Seeded %d default ranks", len(ranks))
}

func seedBadges(db *gorm.DB) {
	var count int64
	db.Model(&models.Badge{}).Count(&count)
	if count > 0 {
		return
	}

	badges := []models.Badge{
		{
			Name:        "Academy Explorer",
			Description: "Complete at least one lesson in every module",
			Rarity:      "rare",
			Icon:        "🧭",
			Requirement: models.RequirementAllModulesStarted,
			XPReward:    100,
			IsActive:    true,
		},
		{
			Name:        "Academy Master",
			Description: "Complete every lesson in every module",
			Rarity:      "legendary",
			Icon:        "🎓",
			Requirement: models.RequirementAllModulesCompleted,
			XPReward:    500,
			IsActive:    true,
		},
		{
			Name:        "Founding Member",
			Description: "One of the first 100 members of the academy",
			Rarity:      "epic",
			Icon:        "🏛️",
			Requirement: models.RequirementFirstNRegistrants,
			Threshold:   100,
			XPReward:    250,
			IsActive:    true,
		},
		{
			Name:        "Hall of Fame",
			Description: "Awarded by the academy staff for outstanding contributions",
			Rarity:      "legendary",
			Icon:        "⭐",
			Requirement: models.RequirementManual,
			XPReward:    1000,
			IsActive:    true,
		},
	}

	if err := db.Create(&badges).Error; err != nil {
		log.Printf("Failed to seed badges: %v", err)
		return
	}
	log.Printf("✅ Seeded %d default badges", len(badges))
}
