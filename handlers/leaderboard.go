// handlers/leaderboard.go
package handlers

import (
	"academy/middleware"
	"academy/services"
	"academy/utils"

	"github.com/gofiber/fiber/v2"
)

// GetLeaderboard returns the ranked list for one metric and window
// GET /api/leaderboard?metric=xp|badge_count&window=all|month|week&limit=100
func GetLeaderboard(c *fiber.Ctx) error {
	metric, ok := services.ParseMetric(c.Query("metric"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid metric"})
	}

	window, ok := services.ParseWindow(c.Query("window"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid window"})
	}

	limit := utils.ClampInt(utils.ParseIntDefault(c.Query("limit"), 100), 1, 100)

	ctx, cancel := utils.RequestContext(c)
	defer cancel()

	entries, err := services.BuildLeaderboard(ctx, metric, window, limit)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"metric":  metric,
		"window":  window,
		"limit":   limit,
		"entries": entries,
	})
}

// GetLeaderboardPosition returns the authenticated user's rank
// GET /api/leaderboard/me?metric=xp&window=all
func GetLeaderboardPosition(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	metric, ok := services.ParseMetric(c.Query("metric"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid metric"})
	}

	window, ok := services.ParseWindow(c.Query("window"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid window"})
	}

	ctx, cancel := utils.RequestContext(c)
	defer cancel()

	position, err := services.LeaderboardPosition(ctx, userID, metric, window)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user_id": userID,
		"metric":  metric,
		"window":  window,
		"rank":    position,
	})
}
