// services/ledger.go - XP Ledger
package services

import (
	"context"
	"time"

	"academy/database"
	"academy/models"
)

// Window scopes ledger and leaderboard queries by time.
type Window string

const (
	WindowAll   Window = "all"
	WindowMonth Window = "month" // last 30 days
	WindowWeek  Window = "week"  // last 7 days
)

// ParseWindow maps a query-string value to a Window, defaulting to
// all-time for empty input.
func ParseWindow(s string) (Window, bool) {
	switch s {
	case "", "all", "alltime", "all-time":
		return WindowAll, true
	case "month", "monthly", "30d":
		return WindowMonth, true
	case "week", "weekly", "7d":
		return WindowWeek, true
	}
	return WindowAll, false
}

// Cutoff returns the inclusive lower bound for the window relative to
// now. The second return is false for the all-time window.
func (w Window) Cutoff(now time.Time) (time.Time, bool) {
	switch w {
	case WindowMonth:
		return now.AddDate(0, 0, -30), true
	case WindowWeek:
		return now.AddDate(0, 0, -7), true
	}
	return time.Time{}, false
}

// AppendXP appends one event to the ledger. Negative amounts are
// rejected to keep per-user totals monotonically non-decreasing.
func AppendXP(ctx context.Context, userID uint, sourceKind string, sourceID uint, amount int, at time.Time) (*models.XPEvent, error) {
	if amount < 0 {
		return nil, ErrNegativeXP
	}

	event := models.XPEvent{
		UserID:     userID,
		SourceKind: sourceKind,
		SourceID:   sourceID,
		Amount:     amount,
		OccurredAt: at,
	}

	db := database.GetDB().WithContext(ctx)
	if err := db.Create(&event).Error; err != nil {
		return nil, storeErr(err)
	}
	return &event, nil
}

// TotalXP sums the user's ledger amounts within the window. Window
// boundaries are computed at query time, never cached.
func TotalXP(ctx context.Context, userID uint, window Window) (int, error) {
	db := database.GetDB().WithContext(ctx)

	query := db.Model(&models.XPEvent{}).Where("user_id = ?", userID)
	if cutoff, ok := window.Cutoff(time.Now().UTC()); ok {
		query = query.Where("occurred_at >= ?", cutoff)
	}

	var total int64
	if err := query.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		return 0, storeErr(err)
	}
	return int(total), nil
}
