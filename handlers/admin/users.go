// handlers/admin/users.go
package admin

import (
	"academy/database"
	"academy/models"
	"academy/utils"

	"github.com/gofiber/fiber/v2"
)

// GetUsers lists member accounts
// GET /api/admin/users?limit=50&offset=0
func GetUsers(c *fiber.Ctx) error {
	limit := utils.ClampInt(utils.ParseIntDefault(c.Query("limit"), 50), 1, 200)
	offset := utils.ParseIntDefault(c.Query("offset"), 0)
	if offset < 0 {
		offset = 0
	}

	db := database.GetDB()

	var users []models.User
	if err := db.Order("created_at ASC, id ASC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch users"})
	}

	// Remove sensitive data
	for i := range users {
		users[i].Password = ""
	}

	var total int64
	db.Model(&models.User{}).Count(&total)

	return c.JSON(fiber.Map{
		"success": true,
		"users":   users,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// GetUser returns one member account
func GetUser(c *fiber.Ctx) error {
	db := database.GetDB()

	var user models.User
	if err := db.First(&user, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	user.Password = ""
	return c.JSON(fiber.Map{"success": true, "user": user})
}

// BanUser suspends a member account. Their completions, ledger entries
// and unlocks remain; they just can no longer log in.
func BanUser(c *fiber.Ctx) error {
	db := database.GetDB()

	var user models.User
	if err := db.First(&user, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	user.IsBanned = true
	if err := db.Save(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to ban user"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User banned",
	})
}
