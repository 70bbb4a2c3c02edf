// models/content.go - Content catalog (owned by the authoring system)
package models

import "time"

// Content status values. Only published content counts toward progress.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Module is a top-level content unit grouping lessons.
type Module struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Title      string    `json:"title" gorm:"not null;size:200"`
	OrderIndex int       `json:"order_index" gorm:"default:0;index"`
	Status     string    `json:"status" gorm:"default:'draft';size:20;index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Lessons    []Lesson  `json:"lessons,omitempty" gorm:"foreignKey:ModuleID"`
}

// Lesson belongs to a module. XPReward is appended to the ledger when a
// user first completes the lesson.
type Lesson struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ModuleID   uint      `json:"module_id" gorm:"not null;index"`
	Module     *Module   `json:"module,omitempty" gorm:"foreignKey:ModuleID"`
	Title      string    `json:"title" gorm:"not null;size:200"`
	OrderIndex int       `json:"order_index" gorm:"default:0;index"`
	Status     string    `json:"status" gorm:"default:'draft';size:20;index"`
	XPReward   int       `json:"xp_reward" gorm:"default:10"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Module) TableName() string {
	return "modules"
}

func (Lesson) TableName() string {
	return "lessons"
}
