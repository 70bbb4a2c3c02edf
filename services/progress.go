// services/progress.go - Completion Store
package services

import (
	"context"
	"errors"
	"time"

	"academy/database"
	"academy/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressReport is the read-side view of a user's completion state,
// recomputed fresh from lesson_completions and the current published
// tree on every call.
type ProgressReport struct {
	UserID           uint                    `json:"user_id"`
	Modules          []models.ModuleProgress `json:"modules"`
	CompletedLessons int                     `json:"completed_lessons"`
	TotalLessons     int                     `json:"total_lessons"`
	OverallCompleted bool                    `json:"overall_completed"`
}

// RecordLessonCompletion records that a user finished a lesson.
// Idempotent on the (user, lesson) pair: the first call creates the row
// and appends the lesson's XP reward to the ledger, repeats are no-ops.
// Returns whether this call created the completion.
func RecordLessonCompletion(ctx context.Context, userID, lessonID uint, at time.Time, score, timeSpent *int) (bool, error) {
	db := database.GetDB().WithContext(ctx)

	var lesson models.Lesson
	if err := db.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrLessonNotFound
		}
		return false, storeErr(err)
	}
	if lesson.Status != models.StatusPublished {
		return false, ErrLessonNotPublished
	}

	created := false
	err := db.Transaction(func(tx *gorm.DB) error {
		completion := models.LessonCompletion{
			UserID:      userID,
			LessonID:    lessonID,
			CompletedAt: at,
			Score:       score,
			TimeSpent:   timeSpent,
		}

		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
			DoNothing: true,
		}).Create(&completion)
		if res.Error != nil {
			return res.Error
		}

		// Re-completion: nothing inserted, nothing to reward.
		if res.RowsAffected == 0 {
			return nil
		}
		created = true

		if lesson.XPReward > 0 {
			event := models.XPEvent{
				UserID:     userID,
				SourceKind: models.XPSourceLesson,
				SourceID:   lessonID,
				Amount:     lesson.XPReward,
				OccurredAt: at,
			}
			if err := tx.Create(&event).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return false, storeErr(err)
	}

	return created, nil
}

// GetProgress reports per-module completion fractions over the current
// published tree plus an overall completion flag. Completions for
// lessons that have since been unpublished are tolerated in the store
// but excluded here.
func GetProgress(ctx context.Context, userID uint) (*ProgressReport, error) {
	tree, err := LoadTree(ctx)
	if err != nil {
		return nil, err
	}

	completed, err := completedLessonSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := &ProgressReport{
		UserID:  userID,
		Modules: make([]models.ModuleProgress, 0, len(tree)),
	}

	gradableModules := 0
	completedModules := 0
	for _, node := range tree {
		mp := models.ModuleProgress{
			ModuleID:     node.Module.ID,
			ModuleTitle:  node.Module.Title,
			TotalLessons: len(node.Lessons),
		}
		for _, l := range node.Lessons {
			if completed[l.ID] {
				mp.CompletedLessons++
			}
		}
		if mp.TotalLessons > 0 {
			mp.Fraction = float64(mp.CompletedLessons) / float64(mp.TotalLessons)
			mp.Completed = mp.CompletedLessons == mp.TotalLessons
			gradableModules++
			if mp.Completed {
				completedModules++
			}
		}
		report.CompletedLessons += mp.CompletedLessons
		report.TotalLessons += mp.TotalLessons
		report.Modules = append(report.Modules, mp)
	}

	// An empty tree (or one with no gradable lessons) is never "complete".
	report.OverallCompleted = gradableModules > 0 && completedModules == gradableModules

	return report, nil
}

// completedLessonSet returns the IDs of every lesson the user has
// completed, as a set.
func completedLessonSet(ctx context.Context, userID uint) (map[uint]bool, error) {
	db := database.GetDB().WithContext(ctx)

	var lessonIDs []uint
	if err := db.Model(&models.LessonCompletion{}).
		Where("user_id = ?", userID).
		Pluck("lesson_id", &lessonIDs).Error; err != nil {
		return nil, storeErr(err)
	}

	set := make(map[uint]bool, len(lessonIDs))
	for _, id := range lessonIDs {
		set[id] = true
	}
	return set, nil
}
