// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"academy/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

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
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	log.Println("✅ Migrations completed")

	createIndexes()
	SeedDefaults(db)

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes beyond what the model tags declare
func createIndexes() {
	db := GetDB()
	log.Println("Creating indexes...")

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_created ON users(created_at ASC)")

	// Content indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_modules_status_order ON modules(status, order_index)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_lessons_module_order ON lessons(module_id, order_index)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_lessons_status ON lessons(status)")

	// Completion indexes (the unique pair index is the idempotency guard)
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_completions_user_lesson ON lesson_completions(user_id, lesson_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_completions_completed ON lesson_completions(completed_at DESC)")

	// Ledger indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_xp_events_user_time ON xp_events(user_id, occurred_at)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_xp_events_source ON xp_events(source_kind, source_id)")

	// Badge indexes (the unique pair index is the at-most-once guard)
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_user_badges_user_badge ON user_badges(user_id, badge_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_badges_unlocked ON user_badges(unlocked_at)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_badges_active ON badges(is_active)")

	log.Println("✅ Indexes created successfully")
}
