// services/rank.go - Rank Resolver
package services

import (
	"context"

	"academy/database"
	"academy/models"
)

// LoadRanks returns the rank ladder in ascending display order. Ranks
// are static configuration loaded once per request.
func LoadRanks(ctx context.Context) ([]models.Rank, error) {
	db := database.GetDB().WithContext(ctx)

	var ranks []models.Rank
	if err := db.Order("order_index ASC, min_xp ASC").Find(&ranks).Error; err != nil {
		return nil, storeErr(err)
	}
	return ranks, nil
}

// ResolveRank maps a total XP value to the highest-order rank whose
// threshold it meets. Falls back to the lowest rank when no threshold
// matches; the second return is false only for an empty ladder.
func ResolveRank(xpTotal int, ranks []models.Rank) (models.Rank, bool) {
	if len(ranks) == 0 {
		return models.Rank{}, false
	}

	for i := len(ranks) - 1; i >= 0; i-- {
		if ranks[i].MinXP <= xpTotal {
			return ranks[i], true
		}
	}
	return ranks[0], true
}

// GetRank resolves a user's current rank from their all-time XP total.
// Returns the rank and the total it was resolved from.
func GetRank(ctx context.Context, userID uint) (models.Rank, int, error) {
	total, err := TotalXP(ctx, userID, WindowAll)
	if err != nil {
		return models.Rank{}, 0, err
	}

	ranks, err := LoadRanks(ctx)
	if err != nil {
		return models.Rank{}, 0, err
	}

	rank, _ := ResolveRank(total, ranks)
	return rank, total, nil
}
