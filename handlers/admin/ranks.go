// handlers/admin/ranks.go
package admin

import (
	"academy/database"
	"academy/models"

	"github.com/gofiber/fiber/v2"
)

// GetRanks returns the rank ladder
func GetRanks(c *fiber.Ctx) error {
	db := database.GetDB()

	var ranks []models.Rank
	if err := db.Order("order_index ASC").Find(&ranks).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch ranks"})
	}

	return c.JSON(fiber.Map{"success": true, "ranks": ranks})
}

// CreateRank adds a tier to the ladder
func CreateRank(c *fiber.Ctx) error {
	var rank models.Rank
	if err := c.BodyParser(&rank); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if rank.MinXP < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "min_xp must be non-negative"})
	}

	db := database.GetDB()
	if err := db.Create(&rank).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create rank"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "rank": rank})
}

// UpdateRank updates an existing tier
func UpdateRank(c *fiber.Ctx) error {
	db := database.GetDB()

	var rank models.Rank
	if err := db.First(&rank, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Rank not found"})
	}

	if err := c.BodyParser(&rank); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := db.Save(&rank).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update rank"})
	}

	return c.JSON(fiber.Map{"success": true, "rank": rank})
}

// DeleteRank removes a tier from the ladder
func DeleteRank(c *fiber.Ctx) error {
	db := database.GetDB()

	if err := db.Delete(&models.Rank{}, c.Params("id")).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete rank"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Rank deleted successfully",
	})
}
