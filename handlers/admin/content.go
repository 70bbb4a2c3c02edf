// handlers/admin/content.go - Write path for the content catalog
package admin

import (
	"academy/database"
	"academy/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetModules returns all modules with lessons, drafts included
func GetModules(c *fiber.Ctx) error {
	db := database.GetDB()

	var modules []models.Module
	if err := db.Preload("Lessons", func(db *gorm.DB) *gorm.DB {
		return db.Order("lessons.order_index ASC, lessons.id ASC")
	}).Order("order_index ASC, id ASC").Find(&modules).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch modules"})
	}

	return c.JSON(fiber.Map{"success": true, "modules": modules})
}

// CreateModule creates a module (draft by default)
func CreateModule(c *fiber.Ctx) error {
	var module models.Module
	if err := c.BodyParser(&module); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if module.Title == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Title is required"})
	}
	if module.Status == "" {
		module.Status = models.StatusDraft
	}

	db := database.GetDB()
	if err := db.Create(&module).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create module"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "module": module})
}

// UpdateModule updates a module (title, order, publish status)
func UpdateModule(c *fiber.Ctx) error {
	db := database.GetDB()

	var module models.Module
	if err := db.First(&module, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Module not found"})
	}

	if err := c.BodyParser(&module); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := db.Save(&module).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update module"})
	}

	return c.JSON(fiber.Map{"success": true, "module": module})
}

// CreateLesson creates a lesson under a module
func CreateLesson(c *fiber.Ctx) error {
	var lesson models.Lesson
	if err := c.BodyParser(&lesson); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if lesson.ModuleID == 0 || lesson.Title == "" {
		return c.Status(400).JSON(fiber.Map{"error": "module_id and title are required"})
	}
	if lesson.Status == "" {
		lesson.Status = models.StatusDraft
	}

	db := database.GetDB()

	var module models.Module
	if err := db.First(&module, lesson.ModuleID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Module not found"})
	}

	if err := db.Create(&lesson).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create lesson"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "lesson": lesson})
}

// UpdateLesson updates a lesson (title, order, reward, publish status).
// Unpublishing a lesson leaves existing completions in place; they just
// stop counting toward progress.
func UpdateLesson(c *fiber.Ctx) error {
	db := database.GetDB()

	var lesson models.Lesson
	if err := db.First(&lesson, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Lesson not found"})
	}

	if err := c.BodyParser(&lesson); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := db.Save(&lesson).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update lesson"})
	}

	return c.JSON(fiber.Map{"success": true, "lesson": lesson})
}
