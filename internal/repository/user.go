package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, email, display_name, referral_code, referred_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			display_name = EXCLUDED.display_name,
			updated_at = NOW()
		RETURNING current_points, lifetime_points, membership_tier, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		user.ID,
		user.Email,
		user.DisplayName,
		user.ReferralCode,
		user.ReferredBy,
	).Scan(&user.CurrentPoints, &user.LifetimePoints, &user.MembershipTier, &user.CreatedAt, &user.UpdatedAt)
}

func (r *Repository) GetUserByReferralCode(ctx context.Context, code string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE referral_code = $1", code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserStanding returns the aggregate projection maintained by the
// update_user_standing trigger. Callers must tolerate it lagging a
// just-inserted transaction.
func (r *Repository) GetUserStanding(ctx context.Context, id uuid.UUID) (*model.UserStanding, error) {
	var standing model.UserStanding
	err := r.db.GetContext(ctx, &standing,
		"SELECT current_points, membership_tier, display_name FROM users WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &standing, nil
}

// ReconcileStandings re-derives every user's points and tier from the
// ledger. The trigger keeps standings current per insert; this heals any
// drift (manual row surgery, restored backups).
func (r *Repository) ReconcileStandings(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users u SET
			current_points = COALESCE(t.balance, 0),
			lifetime_points = COALESCE(t.earned, 0),
			membership_tier = CASE
				WHEN COALESCE(t.earned, 0) >= $1 THEN 'gold'
				WHEN COALESCE(t.earned, 0) >= $2 THEN 'silver'
				ELSE 'bronze'
			END,
			updated_at = NOW()
		FROM (
			SELECT user_id,
				SUM(CASE WHEN transaction_type = 'redeem' THEN -points ELSE points END) AS balance,
				SUM(CASE WHEN transaction_type = 'redeem' THEN 0 ELSE points END) AS earned
			FROM loyalty_transactions
			GROUP BY user_id
		) t
		WHERE t.user_id = u.id
			AND (u.current_points <> COALESCE(t.balance, 0)
				OR u.lifetime_points <> COALESCE(t.earned, 0))`,
		model.GoldThreshold, model.SilverThreshold)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
