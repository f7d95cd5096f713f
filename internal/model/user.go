package model

import (
	"time"

	"github.com/google/uuid"
)

type Tier string

const (
	TierBronze Tier = "bronze"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

// Tier thresholds on lifetime earned points. Must match the
// update_user_standing trigger in migrations.
const (
	SilverThreshold = 100
	GoldThreshold   = 500
)

type User struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	Email          *string    `json:"email,omitempty" db:"email"`
	DisplayName    string     `json:"display_name" db:"display_name"`
	ReferralCode   string     `json:"referral_code" db:"referral_code"`
	ReferredBy     *uuid.UUID `json:"referred_by,omitempty" db:"referred_by"`
	CurrentPoints  int64      `json:"current_points" db:"current_points"`
	LifetimePoints int64      `json:"lifetime_points" db:"lifetime_points"`
	MembershipTier Tier       `json:"membership_tier" db:"membership_tier"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// UserStanding is the aggregate projection the award flow reads back after
// inserting a transaction. It is maintained by a database trigger and may
// briefly lag the just-inserted row.
type UserStanding struct {
	CurrentPoints  int64  `db:"current_points"`
	MembershipTier Tier   `db:"membership_tier"`
	DisplayName    string `db:"display_name"`
}

// Fallback standing used when the read-back after a successful award fails.
const (
	DefaultTier        = TierBronze
	DefaultDisplayName = "Coffee Lover"
)
