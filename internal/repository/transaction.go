package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/model"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrChatSlotTaken surfaces the partial unique index on
	// (user_id, chat_slot): two racing chat awards in the same minute
	// bucket cannot both commit.
	ErrChatSlotTaken = errors.New("chat slot already taken")

	// ErrDuplicateSource surfaces the partial unique index on
	// (user_id, source_id): a concurrent retry with the same
	// idempotency key already committed.
	ErrDuplicateSource = errors.New("source id already used")
)

const (
	pgUniqueViolation = "23505"

	chatSlotIndexName = "idx_loyalty_transactions_chat_slot"
	sourceIndexName   = "idx_loyalty_transactions_source"
)

// InsertTransaction appends one row to the loyalty ledger. The row's ID and
// CreatedAt are filled in from the insert. Unique violations are mapped per
// constraint so callers can tell a chat-window collision from an
// idempotency-key replay.
func (r *Repository) InsertTransaction(ctx context.Context, t *model.PointsTransaction) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO loyalty_transactions (user_id, transaction_type, points, notes, source_id, chat_slot)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		t.UserID, t.Type, t.Points, t.Notes, t.SourceID, t.ChatSlot,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			switch pgErr.ConstraintName {
			case chatSlotIndexName:
				return ErrChatSlotTaken
			case sourceIndexName:
				return ErrDuplicateSource
			}
		}
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// CountChatEarnsSince counts earn transactions for the user inside the
// sliding rate-limit window, matched on the "chat" substring of the notes.
func (r *Repository) CountChatEarnsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM loyalty_transactions
		WHERE user_id = $1
			AND transaction_type = 'earn'
			AND notes LIKE '%chat%'
			AND created_at > $2`,
		userID, since)
	return count, err
}

// GetEarnBySource looks up a prior earn transaction by the caller-supplied
// idempotency key.
func (r *Repository) GetEarnBySource(ctx context.Context, userID uuid.UUID, sourceID string) (*model.PointsTransaction, error) {
	var t model.PointsTransaction
	err := r.db.GetContext(ctx, &t, `
		SELECT * FROM loyalty_transactions
		WHERE user_id = $1 AND source_id = $2 AND transaction_type = 'earn'`,
		userID, sourceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &t, nil
}

// GetTransactions returns the user's ledger page, newest first.
func (r *Repository) GetTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.PointsTransaction, error) {
	var transactions []model.PointsTransaction
	err := r.db.SelectContext(ctx, &transactions, `
		SELECT * FROM loyalty_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	return transactions, err
}

// RedeemReward atomically checks the member's balance against the reward
// cost and appends the redeem transaction. The user row is locked for the
// duration so concurrent redemptions cannot overspend.
// Returns the new balance.
func (r *Repository) RedeemReward(ctx context.Context, userID uuid.UUID, reward *model.Reward) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var current int64
	err = tx.GetContext(ctx, &current, "SELECT current_points FROM users WHERE id = $1 FOR UPDATE", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}

	if current < reward.PointsCost {
		return current, ErrInsufficientPoints
	}

	notes := "Redeemed reward: " + reward.Name
	_, err = tx.ExecContext(ctx, `
		INSERT INTO loyalty_transactions (user_id, transaction_type, points, notes, source_id)
		VALUES ($1, 'redeem', $2, $3, $4)`,
		userID, reward.PointsCost, notes, reward.ID.String())
	if err != nil {
		return 0, fmt.Errorf("failed to create redeem transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return current - reward.PointsCost, nil
}

var ErrInsufficientPoints = errors.New("insufficient points")
