package services

import (
	"fmt"
	"testing"
	"time"

	"academy/database"
	"academy/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// openTestDB swaps the package database for a fresh in-memory SQLite
// instance. A single pooled connection keeps concurrent test writers
// from tripping SQLite's locking while still exercising the
// conflict-ignore insert paths.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Module{},
		&models.Lesson{},
		&models.LessonCompletion{},
		&models.XPEvent{},
		&models.Badge{},
		&models.UserBadge{},
		&models.Rank{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	database.SetDB(db)
	t.Cleanup(func() {
		database.SetDB(nil)
		_ = sqlDB.Close()
	})

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, createdAt time.Time, guest bool) *models.User {
	t.Helper()
	user := &models.User{
		Username:  username,
		Password:  "x",
		IsGuest:   guest,
		CreatedAt: createdAt,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func seedModule(t *testing.T, db *gorm.DB, title, status string, order int) *models.Module {
	t.Helper()
	module := &models.Module{Title: title, Status: status, OrderIndex: order}
	if err := db.Create(module).Error; err != nil {
		t.Fatalf("seed module %s: %v", title, err)
	}
	return module
}

func seedLesson(t *testing.T, db *gorm.DB, moduleID uint, title, status string, order, xp int) *models.Lesson {
	t.Helper()
	lesson := &models.Lesson{ModuleID: moduleID, Title: title, Status: status, OrderIndex: order, XPReward: xp}
	if err := db.Create(lesson).Error; err != nil {
		t.Fatalf("seed lesson %s: %v", title, err)
	}
	return lesson
}

func seedBadge(t *testing.T, db *gorm.DB, name, requirement string, threshold, xpReward int) *models.Badge {
	t.Helper()
	badge := &models.Badge{
		Name:        name,
		Description: name,
		Rarity:      "rare",
		Requirement: requirement,
		Threshold:   threshold,
		XPReward:    xpReward,
		IsActive:    true,
	}
	if err := db.Create(badge).Error; err != nil {
		t.Fatalf("seed badge %s: %v", name, err)
	}
	return badge
}

func seedRanks(t *testing.T, db *gorm.DB, thresholds ...int) []models.Rank {
	t.Helper()
	ranks := make([]models.Rank, 0, len(thresholds))
	for i, minXP := range thresholds {
		rank := models.Rank{
			Name:       fmt.Sprintf("Tier %d", i+1),
			MinXP:      minXP,
			OrderIndex: i + 1,
		}
		if err := db.Create(&rank).Error; err != nil {
			t.Fatalf("seed rank %d: %v", minXP, err)
		}
		ranks = append(ranks, rank)
	}
	return ranks
}
