// models/user.go
package models

import (
	"time"
)

type User struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Username    string  `gorm:"uniqueIndex;not null" json:"username"`
	Email       *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password    string  `gorm:"not null" json:"-"`
	DisplayName string  `json:"display_name"`
	Avatar      string  `json:"avatar"`
	IsGuest     bool    `gorm:"default:false" json:"is_guest"`
	IsAdmin     bool    `gorm:"default:false" json:"is_admin"`
	IsBanned    bool    `gorm:"default:false" json:"is_banned"`

	// Timestamps. CreatedAt doubles as the registration order used by
	// first-N-registrants badge requirements.
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	LastLogin time.Time `json:"last_login"`

	// Relationships
	Completions []LessonCompletion `gorm:"foreignKey:UserID" json:"completions,omitempty"`
	Badges      []UserBadge        `gorm:"foreignKey:UserID" json:"badges,omitempty"`
	XPEvents    []XPEvent          `gorm:"foreignKey:UserID" json:"xp_events,omitempty"`
}

func (User) TableName() string {
	return "users"
}
