// handlers/admin/badges.go
package admin

import (
	"academy/database"
	"academy/models"
	"academy/services"
	"academy/utils"

	"github.com/gofiber/fiber/v2"
)

// GetBadges returns all badges, including inactive ones
func GetBadges(c *fiber.Ctx) error {
	db := database.GetDB()

	var badges []models.Badge
	if err := db.Order("id ASC").Find(&badges).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch badges"})
	}

	return c.JSON(fiber.Map{"success": true, "badges": badges})
}

// CreateBadge creates a new badge
func CreateBadge(c *fiber.Ctx) error {
	var badge models.Badge
	if err := c.BodyParser(&badge); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if !validRequirement(badge.Requirement) {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid requirement"})
	}
	if badge.Requirement == models.RequirementFirstNRegistrants && badge.Threshold <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "first_n_registrants requires a positive threshold"})
	}

	db := database.GetDB()
	if err := db.Create(&badge).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create badge"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "badge": badge})
}

// UpdateBadge updates an existing badge
func UpdateBadge(c *fiber.Ctx) error {
	db := database.GetDB()

	var badge models.Badge
	if err := db.First(&badge, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Badge not found"})
	}

	if err := c.BodyParser(&badge); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !validRequirement(badge.Requirement) {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid requirement"})
	}

	if err := db.Save(&badge).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update badge"})
	}

	return c.JSON(fiber.Map{"success": true, "badge": badge})
}

// DeactivateBadge retires a badge. Unlock records are permanent, so
// badges are deactivated rather than deleted.
func DeactivateBadge(c *fiber.Ctx) error {
	db := database.GetDB()

	var badge models.Badge
	if err := db.First(&badge, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Badge not found"})
	}

	badge.IsActive = false
	if err := db.Save(&badge).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to deactivate badge"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Badge deactivated",
	})
}

// GrantBadge manually unlocks a badge for a user. The only path for
// manual-requirement badges; idempotent like automatic awarding.
func GrantBadge(c *fiber.Ctx) error {
	var req struct {
		UserID  uint `json:"user_id"`
		BadgeID uint `json:"badge_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.UserID == 0 || req.BadgeID == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "user_id and badge_id are required"})
	}

	ctx, cancel := utils.RequestContext(c)
	defer cancel()

	created, err := services.GrantBadge(ctx, req.UserID, req.BadgeID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to grant badge"})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"newly_granted": created,
	})
}

func validRequirement(r string) bool {
	switch r {
	case models.RequirementAllModulesStarted,
		models.RequirementAllModulesCompleted,
		models.RequirementFirstNRegistrants,
		models.RequirementManual:
		return true
	}
	return false
}
