package services

import (
	"context"
	"testing"
	"time"

	"academy/models"
)

func TestResolveRank(t *testing.T) {
	ranks := []models.Rank{
		{ID: 1, Name: "Novice", MinXP: 0, OrderIndex: 1},
		{ID: 2, Name: "Apprentice", MinXP: 100, OrderIndex: 2},
		{ID: 3, Name: "Expert", MinXP: 500, OrderIndex: 3},
	}

	cases := []struct {
		xp   int
		want string
	}{
		{0, "Novice"},
		{99, "Novice"},
		{100, "Apprentice"},
		{450, "Apprentice"},
		{500, "Expert"},
		{10000, "Expert"},
	}
	for _, tc := range cases {
		rank, ok := ResolveRank(tc.xp, ranks)
		if !ok {
			t.Fatalf("ResolveRank(%d) reported no rank", tc.xp)
		}
		if rank.Name != tc.want {
			t.Fatalf("ResolveRank(%d) = %s, want %s", tc.xp, rank.Name, tc.want)
		}
	}
}

func TestResolveRankBelowLowestThreshold(t *testing.T) {
	ranks := []models.Rank{
		{ID: 1, Name: "Bronze", MinXP: 50, OrderIndex: 1},
		{ID: 2, Name: "Silver", MinXP: 200, OrderIndex: 2},
	}

	rank, ok := ResolveRank(10, ranks)
	if !ok {
		t.Fatal("non-empty ladder must always resolve")
	}
	if rank.Name != "Bronze" {
		t.Fatalf("expected fallback to lowest rank, got %s", rank.Name)
	}
}

func TestResolveRankEmptyLadder(t *testing.T) {
	if _, ok := ResolveRank(100, nil); ok {
		t.Fatal("empty ladder must not resolve")
	}
}

func TestGetRank(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "kate", time.Now().UTC(), false)
	seedRanks(t, db, 0, 100, 500)

	if _, err := AppendXP(ctx, user.ID, models.XPSourceMission, 1, 450, time.Now().UTC()); err != nil {
		t.Fatalf("append: %v", err)
	}

	rank, total, err := GetRank(ctx, user.ID)
	if err != nil {
		t.Fatalf("get rank: %v", err)
	}
	if total != 450 {
		t.Fatalf("expected total 450, got %d", total)
	}
	if rank.MinXP != 100 {
		t.Fatalf("expected rank with threshold 100, got %d", rank.MinXP)
	}
}
