package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/model"
)

var ErrRewardNotFound = errors.New("reward not found")

func (r *Repository) GetReward(ctx context.Context, id uuid.UUID) (*model.Reward, error) {
	var reward model.Reward
	err := r.db.GetContext(ctx, &reward, "SELECT * FROM rewards WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRewardNotFound
		}
		return nil, err
	}
	return &reward, nil
}

func (r *Repository) ListActiveRewards(ctx context.Context) ([]model.Reward, error) {
	var rewards []model.Reward
	err := r.db.SelectContext(ctx, &rewards, `
		SELECT * FROM rewards
		WHERE active = TRUE
		ORDER BY points_cost ASC`)
	return rewards, err
}
