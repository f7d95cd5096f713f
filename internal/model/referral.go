package model

import (
	"time"

	"github.com/google/uuid"
)

type Referral struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ReferrerID  uuid.UUID `json:"referrer_id" db:"referrer_id"`
	ReferredID  uuid.UUID `json:"referred_id" db:"referred_id"`
	BonusPoints int64     `json:"bonus_points" db:"bonus_points"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type ReferralStats struct {
	TotalReferred int   `json:"total_referred" db:"total_referred"`
	BonusPoints   int64 `json:"bonus_points" db:"bonus_points"`
}

// DefaultReferralBonusPoints is credited to the referrer when a referred
// member applies their code, unless overridden via settings.
const DefaultReferralBonusPoints = 50
