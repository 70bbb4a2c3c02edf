// models/badge.go
package models

import "time"

// Badge requirement kinds. Each badge carries exactly one.
const (
	RequirementAllModulesStarted   = "all_modules_started"   // at least one lesson per published module
	RequirementAllModulesCompleted = "all_modules_completed" // every published lesson in every module
	RequirementFirstNRegistrants   = "first_n_registrants"   // registration rank <= Threshold
	RequirementManual              = "manual"                // admin grant only, never auto-qualifies
)

type Badge struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `gorm:"not null" json:"description"`
	Rarity      string `gorm:"not null;size:20" json:"rarity"` // common, rare, epic, legendary
	Icon        string `json:"icon"`

	// Requirement descriptor. Threshold is only meaningful for
	// first_n_registrants.
	Requirement string `gorm:"not null;size:40;index" json:"requirement"`
	Threshold   int    `gorm:"default:0" json:"threshold,omitempty"`

	XPReward int  `gorm:"default:0" json:"xp_reward"`
	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserBadge is the unlock record. The composite unique index is the
// at-most-once guard: concurrent awarders race on it and the loser's
// insert is ignored.
type UserBadge struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_badges_user_badge" json:"user_id"`
	BadgeID    uint      `gorm:"not null;uniqueIndex:idx_user_badges_user_badge" json:"badge_id"`
	UnlockedAt time.Time `gorm:"index" json:"unlocked_at"`

	// Relationships
	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Badge Badge `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
}

func (Badge) TableName() string {
	return "badges"
}

func (UserBadge) TableName() string {
	return "user_badges"
}
