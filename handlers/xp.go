// handlers/xp.go
package handlers

import (
	"errors"
	"time"

	"academy/middleware"
	"academy/models"
	"academy/services"
	"academy/utils"

	"github.com/gofiber/fiber/v2"
)

type CompleteMissionRequest struct {
	MissionID uint `json:"mission_id"`
	Amount    int  `json:"amount"`
}

// GetXP returns the authenticated user's XP total for a window
// GET /api/xp?window=all|month|week
func GetXP(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	window, ok := services.ParseWindow(c.Query("window"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid window"})
	}

	ctx, cancel := utils.RequestContext(c)
	defer cancel()

	total, err := services.TotalXP(ctx, userID, window)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"window":  window,
		"xp":      total,
	})
}

// GetRank resolves the authenticated user's rank from all-time XP
func GetRank(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := utils.RequestContext(c)
	defer cancel()

	rank, total, err := services.GetRank(ctx, userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"rank":    rank,
		"xp":      total,
	})
}

// CompleteMission appends a mission XP event for the authenticated user
// and re-checks badges. The mission system owns the mission records;
// this is its entry point into the ledger.
func CompleteMission(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req CompleteMissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.MissionID == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "mission_id is required"})
	}

	ctx, cancel := utils.RequestContext(c)
	defer cancel()

	event, err := services.AppendXP(ctx, userID, models.XPSourceMission, req.MissionID, req.Amount, time.Now().UTC())
	if err != nil {
		if errors.Is(err, services.ErrNegativeXP) {
			return c.Status(400).JSON(fiber.Map{"error": "XP amount must be non-negative"})
		}
		return serviceError(c, err)
	}

	// Mission completions can satisfy badge requirements too.
	newBadges, awardErr := services.AwardQualifying(ctx, userID)
	if awardErr != nil {
		newBadges = nil // sweep retries later
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"event":      event,
		"new_badges": newBadges,
	})
}
