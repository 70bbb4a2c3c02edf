// models/rank.go
package models

import "time"

// Rank is a named tier derived from total XP. A user's rank is the
// highest-order rank whose MinXP threshold their all-time total meets.
type Rank struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null;uniqueIndex" json:"name"`
	MinXP      int       `gorm:"not null;default:0" json:"min_xp"`
	OrderIndex int       `gorm:"not null;default:0;index" json:"order_index"`
	Icon       string    `json:"icon"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Rank) TableName() string {
	return "ranks"
}
