// models/progress.go
package models

import "time"

// LessonCompletion records that a user finished a lesson. One row per
// (user, lesson) pair, created once and never deleted; re-completion is
// a no-op enforced by the composite unique index.
type LessonCompletion struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_completions_user_lesson"`
	User        *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	LessonID    uint      `json:"lesson_id" gorm:"not null;uniqueIndex:idx_completions_user_lesson"`
	Lesson      *Lesson   `json:"lesson,omitempty" gorm:"foreignKey:LessonID"`
	CompletedAt time.Time `json:"completed_at" gorm:"index"`
	Score       *int      `json:"score,omitempty"`
	TimeSpent   *int      `json:"time_spent,omitempty"` // in seconds
}

// ModuleProgress is derived per-module completion. It is recomputed from
// LessonCompletion and the current published lesson set on every read and
// never persisted as a source of truth.
type ModuleProgress struct {
	ModuleID         uint    `json:"module_id"`
	ModuleTitle      string  `json:"module_title"`
	CompletedLessons int     `json:"completed_lessons"`
	TotalLessons     int     `json:"total_lessons"`
	Fraction         float64 `json:"fraction"`
	Completed        bool    `json:"completed"`
}

func (LessonCompletion) TableName() string {
	return "lesson_completions"
}
