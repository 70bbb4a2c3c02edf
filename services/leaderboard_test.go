package services

import (
	"context"
	"testing"
	"time"

	"academy/models"
)

func TestBuildLeaderboardXPOrdering(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC()
	high := seedUser(t, db, "high", now, false)
	low := seedUser(t, db, "low", now, false)
	idle := seedUser(t, db, "idle", now, false)

	if _, err := AppendXP(ctx, high.ID, models.XPSourceMission, 1, 200, now.Add(-time.Hour)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := AppendXP(ctx, low.ID, models.XPSourceMission, 2, 50, now.Add(-time.Hour)); err != nil {
		t.Fatalf("append: %v", err)
	}

	entries, err := BuildLeaderboard(ctx, MetricXP, WindowAll, 10)
	if err != nil {
		t.Fatalf("build leaderboard: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	if entries[0].UserID != high.ID || entries[0].Value != 200 || entries[0].Rank != 1 {
		t.Fatalf("rank 1: got user %d value %d", entries[0].UserID, entries[0].Value)
	}
	if entries[1].UserID != low.ID || entries[1].Value != 50 {
		t.Fatalf("rank 2: got user %d value %d", entries[1].UserID, entries[1].Value)
	}
	if entries[2].UserID != idle.ID || entries[2].Value != 0 {
		t.Fatalf("zero-event user must rank last at 0, got user %d value %d", entries[2].UserID, entries[2].Value)
	}
}

func TestBuildLeaderboardTieBreaksByEarliestEvent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC()
	later := seedUser(t, db, "later", now, false)
	earlier := seedUser(t, db, "earlier", now, false)

	// Equal totals. "earlier" reached it first and must rank first
	// despite the higher user id.
	if _, err := AppendXP(ctx, later.ID, models.XPSourceMission, 1, 100, now.Add(-time.Hour)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := AppendXP(ctx, earlier.ID, models.XPSourceMission, 2, 100, now.Add(-2*time.Hour)); err != nil {
		t.Fatalf("append: %v", err)
	}

	for i := 0; i < 3; i++ {
		entries, err := BuildLeaderboard(ctx, MetricXP, WindowAll, 10)
		if err != nil {
			t.Fatalf("build leaderboard: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].UserID != earlier.ID {
			t.Fatalf("pass %d: expected earliest-event user first, got user %d", i, entries[0].UserID)
		}
		if entries[1].UserID != later.ID {
			t.Fatalf("pass %d: expected later user second, got user %d", i, entries[1].UserID)
		}
	}
}

func TestBuildLeaderboardWindowFiltersEvents(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC()
	fresh := seedUser(t, db, "fresh", now, false)
	stale := seedUser(t, db, "stale", now, false)

	if _, err := AppendXP(ctx, fresh.ID, models.XPSourceMission, 1, 10, now.AddDate(0, 0, -2)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := AppendXP(ctx, stale.ID, models.XPSourceMission, 2, 500, now.AddDate(0, 0, -20)); err != nil {
		t.Fatalf("append: %v", err)
	}

	entries, err := BuildLeaderboard(ctx, MetricXP, WindowWeek, 10)
	if err != nil {
		t.Fatalf("build leaderboard: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].UserID != fresh.ID || entries[0].Value != 10 {
		t.Fatalf("weekly rank 1: got user %d value %d", entries[0].UserID, entries[0].Value)
	}
	if entries[1].UserID != stale.ID || entries[1].Value != 0 {
		t.Fatalf("out-of-window events must not count, got user %d value %d", entries[1].UserID, entries[1].Value)
	}
}

func TestBuildLeaderboardBadgeCountMetric(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC()
	collector := seedUser(t, db, "collector", now, false)
	other := seedUser(t, db, "other", now, false)

	first := seedBadge(t, db, "First", models.RequirementManual, 0, 0)
	second := seedBadge(t, db, "Second", models.RequirementManual, 0, 0)

	for _, b := range []*models.Badge{first, second} {
		if _, err := GrantBadge(ctx, collector.ID, b.ID); err != nil {
			t.Fatalf("grant: %v", err)
		}
	}
	if _, err := GrantBadge(ctx, other.ID, first.ID); err != nil {
		t.Fatalf("grant: %v", err)
	}

	entries, err := BuildLeaderboard(ctx, MetricBadges, WindowAll, 10)
	if err != nil {
		t.Fatalf("build leaderboard: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].UserID != collector.ID || entries[0].Value != 2 {
		t.Fatalf("rank 1: got user %d value %d, want collector with 2", entries[0].UserID, entries[0].Value)
	}
	if entries[1].UserID != other.ID || entries[1].Value != 1 {
		t.Fatalf("rank 2: got user %d value %d, want other with 1", entries[1].UserID, entries[1].Value)
	}
}

func TestBuildLeaderboardExcludesGuests(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC()
	member := seedUser(t, db, "member", now, false)
	guest := seedUser(t, db, "guest_xyz", now, true)

	if _, err := AppendXP(ctx, guest.ID, models.XPSourceMission, 1, 999, now); err != nil {
		t.Fatalf("append: %v", err)
	}

	entries, err := BuildLeaderboard(ctx, MetricXP, WindowAll, 10)
	if err != nil {
		t.Fatalf("build leaderboard: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the member, got %d entries", len(entries))
	}
	if entries[0].UserID != member.ID {
		t.Fatalf("expected member, got user %d", entries[0].UserID)
	}
}

func TestLeaderboardPosition(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC()
	top := seedUser(t, db, "top", now, false)
	mid := seedUser(t, db, "mid", now, false)
	bottom := seedUser(t, db, "bottom", now, false)

	if _, err := AppendXP(ctx, top.ID, models.XPSourceMission, 1, 300, now); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := AppendXP(ctx, mid.ID, models.XPSourceMission, 2, 100, now); err != nil {
		t.Fatalf("append: %v", err)
	}

	pos, err := LeaderboardPosition(ctx, mid.ID, MetricXP, WindowAll)
	if err != nil {
		t.Fatalf("position: %v", err)
	}
	if pos != 2 {
		t.Fatalf("expected position 2, got %d", pos)
	}

	pos, err = LeaderboardPosition(ctx, bottom.ID, MetricXP, WindowAll)
	if err != nil {
		t.Fatalf("position for zero-event user: %v", err)
	}
	if pos != 3 {
		t.Fatalf("zero-event user should still hold a position, got %d", pos)
	}
}
