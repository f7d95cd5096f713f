package model

import (
	"time"

	"github.com/google/uuid"
)

type Reward struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	PointsCost  int64     `json:"points_cost" db:"points_cost"`
	MinTier     Tier      `json:"min_tier" db:"min_tier"`
	Active      bool      `json:"active" db:"active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// tierRank orders tiers for min-tier eligibility checks.
var tierRank = map[Tier]int{
	TierBronze: 0,
	TierSilver: 1,
	TierGold:   2,
}

// MeetsTier reports whether a member at tier t can claim a reward gated at
// min.
func MeetsTier(t, min Tier) bool {
	return tierRank[t] >= tierRank[min]
}
