package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"academy/models"
)

func treeFixture() []ModuleNode {
	return []ModuleNode{
		{
			Module:  models.Module{ID: 1, Title: "A"},
			Lessons: []models.Lesson{{ID: 10}, {ID: 11}},
		},
		{
			Module:  models.Module{ID: 2, Title: "B"},
			Lessons: []models.Lesson{{ID: 20}},
		},
	}
}

func TestEvaluateAllModulesStarted(t *testing.T) {
	badges := []models.Badge{
		{ID: 1, Requirement: models.RequirementAllModulesStarted, IsActive: true},
	}

	// One lesson in each module is enough to start it.
	got := Evaluate(treeFixture(), map[uint]bool{10: true, 20: true}, 0, badges)
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected badge 1 qualified, got %v", got)
	}

	// Module B untouched: not started everywhere.
	got = Evaluate(treeFixture(), map[uint]bool{10: true, 11: true}, 0, badges)
	if len(got) != 0 {
		t.Fatalf("expected no qualification with module B unstarted, got %v", got)
	}
}

func TestEvaluateAllModulesCompleted(t *testing.T) {
	badges := []models.Badge{
		{ID: 2, Requirement: models.RequirementAllModulesCompleted, IsActive: true},
	}

	got := Evaluate(treeFixture(), map[uint]bool{10: true, 11: true, 20: true}, 0, badges)
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected badge 2 qualified, got %v", got)
	}

	got = Evaluate(treeFixture(), map[uint]bool{10: true, 20: true}, 0, badges)
	if len(got) != 0 {
		t.Fatalf("partial completion must not qualify, got %v", got)
	}
}

func TestEvaluateEmptyTreeNeverQualifies(t *testing.T) {
	badges := []models.Badge{
		{ID: 1, Requirement: models.RequirementAllModulesStarted, IsActive: true},
		{ID: 2, Requirement: models.RequirementAllModulesCompleted, IsActive: true},
	}

	got := Evaluate(nil, map[uint]bool{}, 0, badges)
	if len(got) != 0 {
		t.Fatalf("empty tree must qualify nothing, got %v", got)
	}
}

func TestEvaluateSkipsModulesWithoutLessons(t *testing.T) {
	tree := []ModuleNode{
		{Module: models.Module{ID: 1}, Lessons: []models.Lesson{{ID: 10}}},
		{Module: models.Module{ID: 2}}, // no published lessons
	}
	badges := []models.Badge{
		{ID: 2, Requirement: models.RequirementAllModulesCompleted, IsActive: true},
	}

	got := Evaluate(tree, map[uint]bool{10: true}, 0, badges)
	if len(got) != 1 {
		t.Fatalf("lesson-less module must not block completion, got %v", got)
	}

	// A tree made only of lesson-less modules qualifies nothing.
	got = Evaluate([]ModuleNode{{Module: models.Module{ID: 2}}}, map[uint]bool{}, 0, badges)
	if len(got) != 0 {
		t.Fatalf("tree without gradable lessons must qualify nothing, got %v", got)
	}
}

func TestEvaluateFirstNRegistrants(t *testing.T) {
	badges := []models.Badge{
		{ID: 3, Requirement: models.RequirementFirstNRegistrants, Threshold: 100, IsActive: true},
	}

	got := Evaluate(nil, nil, 100, badges)
	if len(got) != 1 {
		t.Fatalf("registration rank 100 should qualify for threshold 100, got %v", got)
	}

	got = Evaluate(nil, nil, 101, badges)
	if len(got) != 0 {
		t.Fatalf("registration rank 101 must not qualify for threshold 100, got %v", got)
	}

	// Rank 0 means no rank (guest).
	got = Evaluate(nil, nil, 0, badges)
	if len(got) != 0 {
		t.Fatalf("rank 0 must not qualify, got %v", got)
	}
}

func TestEvaluateManualNeverAutoQualifies(t *testing.T) {
	badges := []models.Badge{
		{ID: 4, Requirement: models.RequirementManual, IsActive: true},
	}

	got := Evaluate(treeFixture(), map[uint]bool{10: true, 11: true, 20: true}, 1, badges)
	if len(got) != 0 {
		t.Fatalf("manual badge must never auto-qualify, got %v", got)
	}
}

func TestRegistrationRank(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	first := seedUser(t, db, "first", base, false)
	second := seedUser(t, db, "second", base.Add(time.Hour), false)
	guest := seedUser(t, db, "guest_abc", base.Add(2*time.Hour), true)
	third := seedUser(t, db, "third", base.Add(3*time.Hour), false)

	cases := []struct {
		userID uint
		want   int
	}{
		{first.ID, 1},
		{second.ID, 2},
		{guest.ID, 0},
		{third.ID, 3}, // guest does not consume a slot
	}
	for _, tc := range cases {
		got, err := RegistrationRank(ctx, tc.userID)
		if err != nil {
			t.Fatalf("registration rank for user %d: %v", tc.userID, err)
		}
		if got != tc.want {
			t.Fatalf("registration rank for user %d: got %d, want %d", tc.userID, got, tc.want)
		}
	}
}

func TestAwardQualifyingAtMostOnce(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "frank", time.Now().UTC(), false)
	module := seedModule(t, db, "Basics", models.StatusPublished, 1)
	lesson := seedLesson(t, db, module.ID, "L1", models.StatusPublished, 1, 10)
	badge := seedBadge(t, db, "Finisher", models.RequirementAllModulesCompleted, 0, 50)

	if _, err := RecordLessonCompletion(ctx, user.ID, lesson.ID, time.Now().UTC(), nil, nil); err != nil {
		t.Fatalf("complete lesson: %v", err)
	}

	unlocked, err := AwardQualifying(ctx, user.ID)
	if err != nil {
		t.Fatalf("first award pass: %v", err)
	}
	if len(unlocked) != 1 || unlocked[0].ID != badge.ID {
		t.Fatalf("expected badge %d newly unlocked, got %v", badge.ID, unlocked)
	}

	unlocked, err = AwardQualifying(ctx, user.ID)
	if err != nil {
		t.Fatalf("second award pass: %v", err)
	}
	if len(unlocked) != 0 {
		t.Fatalf("second pass must unlock nothing, got %v", unlocked)
	}

	var rows int64
	if err := db.Model(&models.UserBadge{}).Where("user_id = ?", user.ID).Count(&rows).Error; err != nil {
		t.Fatalf("count unlocks: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 unlock row, got %d", rows)
	}

	var rewards int64
	if err := db.Model(&models.XPEvent{}).
		Where("user_id = ? AND source_kind = ?", user.ID, models.XPSourceBadge).
		Count(&rewards).Error; err != nil {
		t.Fatalf("count badge rewards: %v", err)
	}
	if rewards != 1 {
		t.Fatalf("expected exactly 1 badge reward event, got %d", rewards)
	}
}

func TestAwardQualifyingConcurrent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "grace", time.Now().UTC(), false)
	module := seedModule(t, db, "Basics", models.StatusPublished, 1)
	lesson := seedLesson(t, db, module.ID, "L1", models.StatusPublished, 1, 10)
	seedBadge(t, db, "Finisher", models.RequirementAllModulesCompleted, 0, 50)

	if _, err := RecordLessonCompletion(ctx, user.ID, lesson.ID, time.Now().UTC(), nil, nil); err != nil {
		t.Fatalf("complete lesson: %v", err)
	}

	const callers = 8
	var wg sync.WaitGroup
	results := make(chan int, callers)
	errs := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlocked, err := AwardQualifying(ctx, user.ID)
			if err != nil {
				errs <- err
				return
			}
			results <- len(unlocked)
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent award failed: %v", err)
	}

	totalNew := 0
	for n := range results {
		totalNew += n
	}
	if totalNew != 1 {
		t.Fatalf("expected exactly 1 new unlock across concurrent callers, got %d", totalNew)
	}

	var rows int64
	if err := db.Model(&models.UserBadge{}).Where("user_id = ?", user.ID).Count(&rows).Error; err != nil {
		t.Fatalf("count unlocks: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 unlock row, got %d", rows)
	}

	var rewards int64
	if err := db.Model(&models.XPEvent{}).
		Where("user_id = ? AND source_kind = ?", user.ID, models.XPSourceBadge).
		Count(&rewards).Error; err != nil {
		t.Fatalf("count badge rewards: %v", err)
	}
	if rewards != 1 {
		t.Fatalf("expected exactly 1 badge reward event, got %d", rewards)
	}
}

func TestGrantBadgeIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "heidi", time.Now().UTC(), false)
	badge := seedBadge(t, db, "Hall of Fame", models.RequirementManual, 0, 100)

	created, err := GrantBadge(ctx, user.ID, badge.ID)
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if !created {
		t.Fatal("first grant should create the unlock")
	}

	created, err = GrantBadge(ctx, user.ID, badge.ID)
	if err != nil {
		t.Fatalf("repeat grant: %v", err)
	}
	if created {
		t.Fatal("repeat grant must be a no-op")
	}

	total, err := TotalXP(ctx, user.ID, WindowAll)
	if err != nil {
		t.Fatalf("total xp: %v", err)
	}
	if total != 100 {
		t.Fatalf("expected reward paid once, total 100, got %d", total)
	}
}
