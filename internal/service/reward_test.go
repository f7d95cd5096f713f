package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/model"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/repository"
)

type fakeRewardStore struct {
	rewards  map[uuid.UUID]*model.Reward
	standing *model.UserStanding
	redeemed []uuid.UUID
}

func (f *fakeRewardStore) GetReward(_ context.Context, id uuid.UUID) (*model.Reward, error) {
	reward, ok := f.rewards[id]
	if !ok {
		return nil, repository.ErrRewardNotFound
	}
	return reward, nil
}

func (f *fakeRewardStore) ListActiveRewards(_ context.Context) ([]model.Reward, error) {
	var out []model.Reward
	for _, r := range f.rewards {
		if r.Active {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRewardStore) GetUserStanding(_ context.Context, _ uuid.UUID) (*model.UserStanding, error) {
	return f.standing, nil
}

func (f *fakeRewardStore) RedeemReward(_ context.Context, userID uuid.UUID, reward *model.Reward) (int64, error) {
	if f.standing.CurrentPoints < reward.PointsCost {
		return f.standing.CurrentPoints, repository.ErrInsufficientPoints
	}
	f.standing.CurrentPoints -= reward.PointsCost
	f.redeemed = append(f.redeemed, reward.ID)
	return f.standing.CurrentPoints, nil
}

func newRewardFixture(reward *model.Reward, standing *model.UserStanding) (*RewardService, *fakeRewardStore) {
	store := &fakeRewardStore{
		rewards:  map[uuid.UUID]*model.Reward{reward.ID: reward},
		standing: standing,
	}
	return NewRewardService(store), store
}

func TestRedeemHappyPath(t *testing.T) {
	reward := &model.Reward{ID: uuid.New(), Name: "Free Espresso", PointsCost: 50, MinTier: model.TierBronze, Active: true}
	svc, store := newRewardFixture(reward, &model.UserStanding{CurrentPoints: 120, MembershipTier: model.TierSilver})

	result, err := svc.Redeem(context.Background(), uuid.New(), reward.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(70), result.NewBalance)
	assert.Equal(t, []uuid.UUID{reward.ID}, store.redeemed)
}

func TestRedeemUnknownReward(t *testing.T) {
	reward := &model.Reward{ID: uuid.New(), PointsCost: 50, MinTier: model.TierBronze, Active: true}
	svc, _ := newRewardFixture(reward, &model.UserStanding{CurrentPoints: 120, MembershipTier: model.TierSilver})

	_, err := svc.Redeem(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrRewardNotFound)
}

func TestRedeemInactiveReward(t *testing.T) {
	reward := &model.Reward{ID: uuid.New(), PointsCost: 50, MinTier: model.TierBronze, Active: false}
	svc, store := newRewardFixture(reward, &model.UserStanding{CurrentPoints: 120, MembershipTier: model.TierSilver})

	_, err := svc.Redeem(context.Background(), uuid.New(), reward.ID)
	assert.ErrorIs(t, err, ErrRewardInactive)
	assert.Empty(t, store.redeemed)
}

func TestRedeemTierGate(t *testing.T) {
	reward := &model.Reward{ID: uuid.New(), PointsCost: 50, MinTier: model.TierGold, Active: true}
	svc, store := newRewardFixture(reward, &model.UserStanding{CurrentPoints: 5000, MembershipTier: model.TierSilver})

	_, err := svc.Redeem(context.Background(), uuid.New(), reward.ID)
	assert.ErrorIs(t, err, ErrTierTooLow)
	assert.Empty(t, store.redeemed)
}

func TestRedeemInsufficientPoints(t *testing.T) {
	reward := &model.Reward{ID: uuid.New(), PointsCost: 500, MinTier: model.TierBronze, Active: true}
	svc, store := newRewardFixture(reward, &model.UserStanding{CurrentPoints: 80, MembershipTier: model.TierGold})

	_, err := svc.Redeem(context.Background(), uuid.New(), reward.ID)
	assert.ErrorIs(t, err, repository.ErrInsufficientPoints)
	assert.Empty(t, store.redeemed)
}
