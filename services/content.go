// services/content.go - Content Tree Reader
package services

import (
	"context"

	"academy/database"
	"academy/models"
)

// ModuleNode is one published module with its published lessons, both in
// display order. The slice returned by LoadTree is a snapshot; it does
// not reflect catalog edits made after the call returns.
type ModuleNode struct {
	Module  models.Module  `json:"module"`
	Lessons []models.Lesson `json:"lessons"`
}

// LoadTree returns the ordered published content tree. All-or-nothing:
// any read failure surfaces ErrContentUnavailable and no partial tree.
func LoadTree(ctx context.Context) ([]ModuleNode, error) {
	db := database.GetDB().WithContext(ctx)

	var modules []models.Module
	if err := db.Where("status = ?", models.StatusPublished).
		Order("order_index ASC, id ASC").
		Find(&modules).Error; err != nil {
		return nil, contentErr(err)
	}

	tree := make([]ModuleNode, 0, len(modules))
	if len(modules) == 0 {
		return tree, nil
	}

	moduleIDs := make([]uint, len(modules))
	for i, m := range modules {
		moduleIDs[i] = m.ID
	}

	var lessons []models.Lesson
	if err := db.Where("module_id IN ? AND status = ?", moduleIDs, models.StatusPublished).
		Order("module_id ASC, order_index ASC, id ASC").
		Find(&lessons).Error; err != nil {
		return nil, contentErr(err)
	}

	byModule := make(map[uint][]models.Lesson, len(modules))
	for _, l := range lessons {
		byModule[l.ModuleID] = append(byModule[l.ModuleID], l)
	}

	for _, m := range modules {
		tree = append(tree, ModuleNode{Module: m, Lessons: byModule[m.ID]})
	}

	return tree, nil
}
