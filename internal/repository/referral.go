package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/model"
)

var ErrReferralNotFound = errors.New("referral not found")

func (r *Repository) GetReferralByReferredID(ctx context.Context, referredID uuid.UUID) (*model.Referral, error) {
	var referral model.Referral
	err := r.db.GetContext(ctx, &referral, "SELECT * FROM referrals WHERE referred_id = $1", referredID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReferralNotFound
		}
		return nil, err
	}
	return &referral, nil
}

// CreateReferral records the referral and credits the referrer's bonus in
// one transaction, so the relationship and the payout cannot diverge.
func (r *Repository) CreateReferral(ctx context.Context, referral *model.Referral) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO referrals (referrer_id, referred_id, bonus_points)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		referral.ReferrerID, referral.ReferredID, referral.BonusPoints,
	).Scan(&referral.ID, &referral.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create referral: %w", err)
	}

	notes := "Referral bonus - invited a friend to the café"
	_, err = tx.ExecContext(ctx, `
		INSERT INTO loyalty_transactions (user_id, transaction_type, points, notes, source_id)
		VALUES ($1, 'referral_bonus', $2, $3, $4)`,
		referral.ReferrerID, referral.BonusPoints, notes, referral.ID.String())
	if err != nil {
		return fmt.Errorf("failed to credit referral bonus: %w", err)
	}

	return tx.Commit()
}

func (r *Repository) GetReferralStats(ctx context.Context, referrerID uuid.UUID) (*model.ReferralStats, error) {
	var stats model.ReferralStats
	err := r.db.GetContext(ctx, &stats, `
		SELECT COUNT(*) AS total_referred, COALESCE(SUM(bonus_points), 0) AS bonus_points
		FROM referrals
		WHERE referrer_id = $1`,
		referrerID)
	return &stats, err
}

func (r *Repository) GetReferredUsers(ctx context.Context, referrerID uuid.UUID) ([]model.User, error) {
	var users []model.User
	err := r.db.SelectContext(ctx, &users, `
		SELECT u.* FROM users u
		JOIN referrals ref ON ref.referred_id = u.id
		WHERE ref.referrer_id = $1
		ORDER BY ref.created_at DESC`,
		referrerID)
	return users, err
}
