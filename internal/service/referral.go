package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/model"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/repository"
)

var (
	ErrSelfReferral          = errors.New("you cannot apply your own referral code")
	ErrReferralAlreadyExists = errors.New("a referral code was already applied to this account")
	ErrInvalidReferralCode   = errors.New("referral code not found")
)

const referralBonusSettingKey = "referral_bonus_points"

// ReferralStore is satisfied by *repository.Repository.
type ReferralStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByReferralCode(ctx context.Context, code string) (*model.User, error)
	GetReferralByReferredID(ctx context.Context, referredID uuid.UUID) (*model.Referral, error)
	CreateReferral(ctx context.Context, referral *model.Referral) error
	GetReferralStats(ctx context.Context, referrerID uuid.UUID) (*model.ReferralStats, error)
	GetReferredUsers(ctx context.Context, referrerID uuid.UUID) ([]model.User, error)
	GetSettingInt64(ctx context.Context, key string) (int64, error)
}

type ReferralService struct {
	store        ReferralStore
	defaultBonus int64
}

func NewReferralService(store ReferralStore, defaultBonus int64) *ReferralService {
	if defaultBonus <= 0 {
		defaultBonus = model.DefaultReferralBonusPoints
	}
	return &ReferralService{store: store, defaultBonus: defaultBonus}
}

// ApplyCode links the caller to the code's owner and credits the owner's
// bonus. One referral per referred account, ever.
func (s *ReferralService) ApplyCode(ctx context.Context, userID uuid.UUID, code string) (*model.Referral, error) {
	referrer, err := s.store.GetUserByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidReferralCode
		}
		return nil, err
	}

	if referrer.ID == userID {
		return nil, ErrSelfReferral
	}

	_, err = s.store.GetReferralByReferredID(ctx, userID)
	if err == nil {
		return nil, ErrReferralAlreadyExists
	}
	if !errors.Is(err, repository.ErrReferralNotFound) {
		return nil, err
	}

	referral := &model.Referral{
		ReferrerID:  referrer.ID,
		ReferredID:  userID,
		BonusPoints: s.bonusPoints(ctx),
	}

	if err := s.store.CreateReferral(ctx, referral); err != nil {
		return nil, err
	}

	return referral, nil
}

func (s *ReferralService) GetStats(ctx context.Context, userID uuid.UUID) (*model.ReferralStats, error) {
	return s.store.GetReferralStats(ctx, userID)
}

func (s *ReferralService) GetCode(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.ReferralCode, nil
}

func (s *ReferralService) GetReferredUsers(ctx context.Context, userID uuid.UUID) ([]model.User, error) {
	return s.store.GetReferredUsers(ctx, userID)
}

// bonusPoints prefers the runtime setting so staff can tune campaigns
// without a redeploy.
func (s *ReferralService) bonusPoints(ctx context.Context) int64 {
	bonus, err := s.store.GetSettingInt64(ctx, referralBonusSettingKey)
	if err != nil || bonus <= 0 {
		return s.defaultBonus
	}
	return bonus
}
