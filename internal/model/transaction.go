package model

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionTypeEarn          TransactionType = "earn"
	TransactionTypeRedeem        TransactionType = "redeem"
	TransactionTypeReferralBonus TransactionType = "referral_bonus"
	TransactionTypeAdjustment    TransactionType = "adjustment"
)

// PointsTransaction is one row of the append-only loyalty ledger. Rows are
// never updated or deleted; corrections happen via new offsetting rows.
type PointsTransaction struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	UserID    uuid.UUID       `json:"user_id" db:"user_id"`
	Type      TransactionType `json:"type" db:"transaction_type"`
	Points    int64           `json:"points" db:"points"` // always positive; sign comes from the type
	Notes     string          `json:"notes" db:"notes"`
	SourceID  *string         `json:"source_id,omitempty" db:"source_id"` // caller-supplied idempotency key
	ChatSlot  *int64          `json:"-" db:"chat_slot"`                   // minute bucket, set for chat earns only
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
