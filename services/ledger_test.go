package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"academy/models"
)

func TestAppendXPRejectsNegative(t *testing.T) {
	openTestDB(t)
	ctx := context.Background()

	_, err := AppendXP(ctx, 1, models.XPSourceMission, 1, -5, time.Now().UTC())
	if !errors.Is(err, ErrNegativeXP) {
		t.Fatalf("expected ErrNegativeXP, got %v", err)
	}
}

func TestTotalXPWindows(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "ivan", time.Now().UTC(), false)
	now := time.Now().UTC()

	// One event 10 days back, one 40 days back.
	if _, err := AppendXP(ctx, user.ID, models.XPSourceMission, 1, 30, now.AddDate(0, 0, -10)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := AppendXP(ctx, user.ID, models.XPSourceMission, 2, 70, now.AddDate(0, 0, -40)); err != nil {
		t.Fatalf("append: %v", err)
	}

	cases := []struct {
		window Window
		want   int
	}{
		{WindowAll, 100},
		{WindowMonth, 30},
		{WindowWeek, 0},
	}
	for _, tc := range cases {
		got, err := TotalXP(ctx, user.ID, tc.window)
		if err != nil {
			t.Fatalf("total xp (%s): %v", tc.window, err)
		}
		if got != tc.want {
			t.Fatalf("total xp (%s): got %d, want %d", tc.window, got, tc.want)
		}
	}
}

func TestTotalXPNeverDecreases(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "judy", time.Now().UTC(), false)

	prev := 0
	for i := 0; i < 5; i++ {
		if _, err := AppendXP(ctx, user.ID, models.XPSourceMission, uint(i+1), i*10, time.Now().UTC()); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		total, err := TotalXP(ctx, user.ID, WindowAll)
		if err != nil {
			t.Fatalf("total xp: %v", err)
		}
		if total < prev {
			t.Fatalf("total decreased from %d to %d", prev, total)
		}
		prev = total
	}
	if prev != 100 {
		t.Fatalf("expected final total 100, got %d", prev)
	}
}

func TestParseWindow(t *testing.T) {
	cases := []struct {
		in   string
		want Window
		ok   bool
	}{
		{"", WindowAll, true},
		{"all", WindowAll, true},
		{"month", WindowMonth, true},
		{"30d", WindowMonth, true},
		{"week", WindowWeek, true},
		{"7d", WindowWeek, true},
		{"fortnight", WindowAll, false},
	}
	for _, tc := range cases {
		got, ok := ParseWindow(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseWindow(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
