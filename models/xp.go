// models/xp.go
package models

import "time"

// XP event source kinds.
const (
	XPSourceMission = "mission"
	XPSourceLesson  = "lesson"
	XPSourceBadge   = "badge"
)

// XPEvent is one entry in the append-only experience ledger. A user's
// total XP is always derived by summing events; there is no cached
// running total anywhere.
type XPEvent struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;index:idx_xp_events_user_time"`
	User       *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	SourceKind string    `json:"source_kind" gorm:"not null;size:20;index"`
	SourceID   uint      `json:"source_id" gorm:"not null"`
	Amount     int       `json:"amount" gorm:"not null"`
	OccurredAt time.Time `json:"occurred_at" gorm:"index:idx_xp_events_user_time"`
}

func (XPEvent) TableName() string {
	return "xp_events"
}
