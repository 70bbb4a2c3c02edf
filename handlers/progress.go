// handlers/progress.go
package handlers

import (
	"errors"
	"time"

	"academy/middleware"
	"academy/services"
	"academy/utils"

	"github.com/gofiber/fiber/v2"
)

type CompleteLessonRequest struct {
	LessonID  uint `json:"lesson_id"`
	Score     *int `json:"score,omitempty"`
	TimeSpent *int `json:"time_spent,omitempty"`
}

// GetContentTree returns the published module/lesson tree
func GetContentTree(c *fiber.Ctx) error {
	ctx, cancel := utils.RequestContext(c)
	defer cancel()

	tree, err := services.LoadTree(ctx)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"modules": tree,
	})
}

// CompleteLesson records a lesson completion for the authenticated
// user. Safe to call repeatedly: only the first call for a lesson
// counts, grants XP, and can unlock badges.
func CompleteLesson(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req CompleteLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.LessonID == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "lesson_id is required"})
	}

	ctx, cancel := utils.RequestContext(c)
	defer cancel()

	created, err := services.RecordLessonCompletion(ctx, userID, req.LessonID, time.Now().UTC(), req.Score, req.TimeSpent)
	if err != nil {
		if errors.Is(err, services.ErrLessonNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Lesson not found"})
		}
		if errors.Is(err, services.ErrLessonNotPublished) {
			return c.Status(422).JSON(fiber.Map{"error": "Lesson is not published"})
		}
		return serviceError(c, err)
	}

	// Re-check badges after a new completion. A failure here is not
	// fatal for the completion itself; the sweep retries later.
	newBadges := []fiber.Map{}
	if created {
		unlocked, err := services.AwardQualifying(ctx, userID)
		if err == nil {
			for _, b := range unlocked {
				newBadges = append(newBadges, fiber.Map{
					"id":        b.ID,
					"name":      b.Name,
					"rarity":    b.Rarity,
					"icon":      b.Icon,
					"xp_reward": b.XPReward,
				})
			}
		}
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"newly_recorded": created,
		"new_badges":     newBadges,
	})
}

// GetProgress reports the authenticated user's per-module completion
// fractions and overall completion flag
func GetProgress(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := utils.RequestContext(c)
	defer cancel()

	report, err := services.GetProgress(ctx, userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"modules":           report.Modules,
		"completed_lessons": report.CompletedLessons,
		"total_lessons":     report.TotalLessons,
		"overall_completed": report.OverallCompleted,
	})
}

// serviceError maps engine error kinds onto HTTP statuses
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrTimeout):
		return c.Status(504).JSON(fiber.Map{"error": "Request timed out"})
	case errors.Is(err, services.ErrContentUnavailable):
		return c.Status(503).JSON(fiber.Map{"error": "Content catalog unavailable"})
	case errors.Is(err, services.ErrStoreUnavailable):
		return c.Status(503).JSON(fiber.Map{"error": "Store unavailable"})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
	}
}
