// services/badges.go - Badge Rule Evaluator and Badge Awarder
package services

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"academy/database"
	"academy/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Evaluate returns the IDs of every active badge the user currently
// qualifies for. Pure: it only inspects the snapshot it is handed and
// never touches the store. Manual badges never auto-qualify. An empty
// published tree qualifies no tree-based badge, and modules without
// published lessons are excluded from both tree checks.
func Evaluate(tree []ModuleNode, completed map[uint]bool, registrationRank int, badges []models.Badge) []uint {
	var qualified []uint

	for _, badge := range badges {
		if !badge.IsActive {
			continue
		}

		ok := false
		switch badge.Requirement {
		case models.RequirementAllModulesStarted:
			ok = allModulesStarted(tree, completed)
		case models.RequirementAllModulesCompleted:
			ok = allModulesCompleted(tree, completed)
		case models.RequirementFirstNRegistrants:
			ok = registrationRank > 0 && registrationRank <= badge.Threshold
		case models.RequirementManual:
			// admin grant only
		}

		if ok {
			qualified = append(qualified, badge.ID)
		}
	}

	return qualified
}

func allModulesStarted(tree []ModuleNode, completed map[uint]bool) bool {
	gradable := 0
	for _, node := range tree {
		if len(node.Lessons) == 0 {
			continue
		}
		gradable++

		started := false
		for _, l := range node.Lessons {
			if completed[l.ID] {
				started = true
				break
			}
		}
		if !started {
			return false
		}
	}
	return gradable > 0
}

func allModulesCompleted(tree []ModuleNode, completed map[uint]bool) bool {
	gradable := 0
	for _, node := range tree {
		if len(node.Lessons) == 0 {
			continue
		}
		gradable++

		for _, l := range node.Lessons {
			if !completed[l.ID] {
				return false
			}
		}
	}
	return gradable > 0
}

// RegistrationRank returns the user's 1-based position by account
// creation time among non-guest members, ties broken by id.
func RegistrationRank(ctx context.Context, userID uint) (int, error) {
	db := database.GetDB().WithContext(ctx)

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, storeErr(err)
	}

	// Guests never hold a registration rank.
	if user.IsGuest {
		return 0, nil
	}

	var rank int64
	if err := db.Model(&models.User{}).
		Where("is_guest = ?", false).
		Where("created_at < ? OR (created_at = ? AND id <= ?)", user.CreatedAt, user.CreatedAt, user.ID).
		Count(&rank).Error; err != nil {
		return 0, storeErr(err)
	}

	return int(rank), nil
}

// AwardQualifying evaluates the user against every active badge and
// unlocks the ones not yet owned. Each unlock is one transaction: a
// conditional insert guarded by the unique (user, badge) index plus the
// reward ledger append. A concurrent caller losing the insert race is a
// benign no-op, never an error. Returns only the badges this call newly
// created. Reads go straight to the authoritative stores; awarding
// never consults a cache.
func AwardQualifying(ctx context.Context, userID uint) ([]models.Badge, error) {
	db := database.GetDB().WithContext(ctx)

	var badges []models.Badge
	if err := db.Where("is_active = ?", true).Order("id ASC").Find(&badges).Error; err != nil {
		return nil, storeErr(err)
	}

	tree, err := LoadTree(ctx)
	if err != nil {
		return nil, err
	}

	completed, err := completedLessonSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	regRank, err := RegistrationRank(ctx, userID)
	if err != nil {
		return nil, err
	}

	var ownedIDs []uint
	if err := db.Model(&models.UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &ownedIDs).Error; err != nil {
		return nil, storeErr(err)
	}
	owned := make(map[uint]bool, len(ownedIDs))
	for _, id := range ownedIDs {
		owned[id] = true
	}

	byID := make(map[uint]models.Badge, len(badges))
	for _, b := range badges {
		byID[b.ID] = b
	}

	newlyUnlocked := []models.Badge{}
	for _, badgeID := range Evaluate(tree, completed, regRank, badges) {
		if owned[badgeID] {
			continue
		}
		badge := byID[badgeID]

		created, err := awardBadge(ctx, userID, badge)
		if err != nil {
			return nil, err
		}
		if created {
			newlyUnlocked = append(newlyUnlocked, badge)
		}
	}

	for _, badge := range newlyUnlocked {
		if notifier := GetNotifier(); notifier != nil {
			notifier.Publish(userID, badge)
		}
	}

	return newlyUnlocked, nil
}

// GrantBadge unlocks one badge for a user by explicit administrative
// action. This is the only path for manual badges; it reuses the same
// conditional insert as automatic awarding, so granting twice (or
// racing an automatic award) still yields one unlock.
func GrantBadge(ctx context.Context, userID, badgeID uint) (bool, error) {
	db := database.GetDB().WithContext(ctx)

	var badge models.Badge
	if err := db.First(&badge, badgeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, gorm.ErrRecordNotFound
		}
		return false, storeErr(err)
	}

	created, err := awardBadge(ctx, userID, badge)
	if err != nil {
		return false, err
	}

	if created {
		if notifier := GetNotifier(); notifier != nil {
			notifier.Publish(userID, badge)
		}
	}
	return created, nil
}

// awardBadge atomically creates the unlock record and its reward event.
// Returns false when a concurrent caller already holds the unlock.
func awardBadge(ctx context.Context, userID uint, badge models.Badge) (bool, error) {
	db := database.GetDB().WithContext(ctx)

	created := false
	err := db.Transaction(func(tx *gorm.DB) error {
		unlock := models.UserBadge{
			UserID:     userID,
			BadgeID:    badge.ID,
			UnlockedAt: time.Now().UTC(),
		}

		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
			DoNothing: true,
		}).Create(&unlock)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			// Lost the race to a concurrent evaluation.
			debugf("badge %d already awarded to user %d by a concurrent caller", badge.ID, userID)
			return nil
		}
		created = true

		if badge.XPReward > 0 {
			event := models.XPEvent{
				UserID:     userID,
				SourceKind: models.XPSourceBadge,
				SourceID:   badge.ID,
				Amount:     badge.XPReward,
				OccurredAt: unlock.UnlockedAt,
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

func debugf(format string, args ...interface{}) {
	if os.Getenv("APP_ENV") != "production" {
		log.Printf("DEBUG: "+format, args...)
	}
}
