package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/model"
)

var (
	ErrRewardInactive = errors.New("reward is no longer available")
	ErrTierTooLow     = errors.New("membership tier too low for this reward")
)

// RewardStore is satisfied by *repository.Repository.
type RewardStore interface {
	GetReward(ctx context.Context, id uuid.UUID) (*model.Reward, error)
	ListActiveRewards(ctx context.Context) ([]model.Reward, error)
	GetUserStanding(ctx context.Context, userID uuid.UUID) (*model.UserStanding, error)
	RedeemReward(ctx context.Context, userID uuid.UUID, reward *model.Reward) (int64, error)
}

type RewardService struct {
	store RewardStore
}

func NewRewardService(store RewardStore) *RewardService {
	return &RewardService{store: store}
}

func (s *RewardService) ListRewards(ctx context.Context) ([]model.Reward, error) {
	return s.store.ListActiveRewards(ctx)
}

type RedeemResult struct {
	Reward     *model.Reward
	NewBalance int64
}

// Redeem checks availability, tier gating and balance, then appends the
// redeem transaction. Balance check and insert are serialized on the user
// row inside the store.
func (s *RewardService) Redeem(ctx context.Context, userID, rewardID uuid.UUID) (*RedeemResult, error) {
	reward, err := s.store.GetReward(ctx, rewardID)
	if err != nil {
		return nil, err
	}
	if !reward.Active {
		return nil, ErrRewardInactive
	}

	standing, err := s.store.GetUserStanding(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !model.MeetsTier(standing.MembershipTier, reward.MinTier) {
		return nil, ErrTierTooLow
	}

	newBalance, err := s.store.RedeemReward(ctx, userID, reward)
	if err != nil {
		return nil, err
	}

	return &RedeemResult{Reward: reward, NewBalance: newBalance}, nil
}
