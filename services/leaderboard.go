// services/leaderboard.go - Leaderboard Aggregator
package services

import (
	"context"
	"time"

	"academy/database"
)

// Metric selects what a leaderboard ranks users by.
type Metric string

const (
	MetricXP     Metric = "xp"
	MetricBadges Metric = "badge_count"
)

// ParseMetric maps a query-string value to a Metric, defaulting to XP
// for empty input.
func ParseMetric(s string) (Metric, bool) {
	switch s {
	case "", "xp":
		return MetricXP, true
	case "badges", "badge_count":
		return MetricBadges, true
	}
	return MetricXP, false
}

// LeaderboardEntry is one ranked row. Earliest is the timestamp of the
// user's first qualifying event in the window; it is the tie-breaker
// and is nil for users with no events (who rank last at value 0).
type LeaderboardEntry struct {
	Rank     int        `json:"rank"`
	UserID   uint       `json:"user_id" gorm:"column:user_id"`
	Username string     `json:"username"`
	Avatar   string     `json:"avatar"`
	Value    int64      `json:"value"`
	Earliest *time.Time `json:"earliest,omitempty"`
}

// BuildLeaderboard computes the ranked list for one metric and window.
// One parameterized aggregation covers all metric x window combinations:
// value descending, ties broken by earliest qualifying event, then user
// id, so repeated calls always return the same order. Users with zero
// events still rank (value 0, sorted last). Guests are excluded.
func BuildLeaderboard(ctx context.Context, metric Metric, window Window, limit int) ([]LeaderboardEntry, error) {
	db := database.GetDB().WithContext(ctx)

	var table, valueExpr, timeCol string
	switch metric {
	case MetricBadges:
		table = "user_badges"
		valueExpr = "COUNT(e.id)"
		timeCol = "unlocked_at"
	default:
		table = "xp_events"
		valueExpr = "COALESCE(SUM(e.amount), 0)"
		timeCol = "occurred_at"
	}

	join := "LEFT JOIN " + table + " e ON e.user_id = u.id"
	args := []interface{}{}
	if cutoff, ok := window.Cutoff(time.Now().UTC()); ok {
		join += " AND e." + timeCol + " >= ?"
		args = append(args, cutoff)
	}
	args = append(args, false)

	query := `
		SELECT u.id AS user_id, u.username, u.avatar,
		       ` + valueExpr + ` AS value,
		       MIN(e.` + timeCol + `) AS earliest
		FROM users u
		` + join + `
		WHERE u.is_guest = ?
		GROUP BY u.id, u.username, u.avatar
		ORDER BY value DESC,
		         CASE WHEN MIN(e.` + timeCol + `) IS NULL THEN 1 ELSE 0 END ASC,
		         MIN(e.` + timeCol + `) ASC,
		         u.id ASC`

	// limit <= 0 returns the full ranking (used for position lookups)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var entries []LeaderboardEntry
	if err := db.Raw(query, args...).Scan(&entries).Error; err != nil {
		return nil, storeErr(err)
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}

// LeaderboardPosition returns a user's 1-based rank for one metric and
// window, using the same deterministic ordering as BuildLeaderboard.
func LeaderboardPosition(ctx context.Context, userID uint, metric Metric, window Window) (int, error) {
	entries, err := BuildLeaderboard(ctx, metric, window, 0)
	if err != nil {
		return 0, err
	}

	for _, e := range entries {
		if e.UserID == userID {
			return e.Rank, nil
		}
	}
	return 0, ErrUserNotFound
}
