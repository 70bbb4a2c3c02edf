// handlers/badges.go
package handlers

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	"academy/services"
	"academy/utils"

	"github.com/gofiber/fiber/v2"
)

// GetUserBadges returns every badge with the user's unlock state
func GetUserBadges(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()

	var unlocked []models.UserBadge
	if err := db.Preload("Badge").Where("user_id = ?", userID).Order("unlocked_at DESC").Find(&unlocked).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch badges"})
	}

	var allBadges []models.Badge
	if err := db.Where("is_active = ?", true).Order("id ASC").Find(&allBadges).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch all badges"})
	}

	unlockedMap := make(map[uint]models.UserBadge)
	for _, ub := range unlocked {
		unlockedMap[ub.BadgeID] = ub
	}

	badges := make([]fiber.Map, 0, len(allBadges))
	for _, badge := range allBadges {
		data := fiber.Map{
			"id":          badge.ID,
			"name":        badge.Name,
			"description": badge.Description,
			"rarity":      badge.Rarity,
			"icon":        badge.Icon,
			"requirement": badge.Requirement,
			"xp_reward":   badge.XPReward,
			"unlocked":    false,
		}

		if ub, ok := unlockedMap[badge.ID]; ok {
			data["unlocked"] = true
			data["unlocked_at"] = ub.UnlockedAt
		}

		badges = append(badges, data)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"badges":   badges,
		"total":    len(allBadges),
		"unlocked": len(unlocked),
	})
}

// EvaluateBadges re-runs badge awarding for the authenticated user.
// Safe to call speculatively: already-owned badges are never re-awarded
// and a concurrent duplicate is a silent no-op.
func EvaluateBadges(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := utils.RequestContext(c)
	defer cancel()

	newBadges, err := services.AwardQualifying(ctx, userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"new_badges": newBadges,
	})
}
