package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/config"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/model"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/repository"
)

var (
	ErrInvalidAction = errors.New("invalid action type")
	ErrInvalidPoints = errors.New("points must be a positive integer")
	ErrRateLimited   = errors.New("chat reward cooldown active")
)

// AwardStore is the storage surface the award flow needs. Satisfied by
// *repository.Repository.
type AwardStore interface {
	CountChatEarnsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
	GetEarnBySource(ctx context.Context, userID uuid.UUID, sourceID string) (*model.PointsTransaction, error)
	InsertTransaction(ctx context.Context, t *model.PointsTransaction) error
	GetUserStanding(ctx context.Context, userID uuid.UUID) (*model.UserStanding, error)
	GetTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.PointsTransaction, error)
}

type AwardRequest struct {
	Type     string
	Points   int64
	SourceID string // optional idempotency key; retries with the same key award once
}

type AwardResult struct {
	PointsEarned int64
	TotalPoints  int64
	Tier         model.Tier
	DisplayName  string
	Duplicate    bool // true when SourceID matched a prior award
}

type AwardService struct {
	store AwardStore
	now   func() time.Time
}

func NewAwardService(store AwardStore) *AwardService {
	return &AwardService{store: store, now: time.Now}
}

// Award validates the request, rate-limits chat awards, appends one earn
// transaction and reads back the caller's standing. The standing is
// maintained by a trigger and may lag the insert; a failed read-back never
// fails an award that already committed.
func (s *AwardService) Award(ctx context.Context, userID uuid.UUID, req AwardRequest) (*AwardResult, error) {
	action := model.ActionType(req.Type)
	if !action.Valid() {
		return nil, ErrInvalidAction
	}
	if req.Points <= 0 {
		return nil, ErrInvalidPoints
	}

	if req.SourceID != "" {
		prior, err := s.store.GetEarnBySource(ctx, userID, req.SourceID)
		if err == nil {
			return s.buildResult(ctx, userID, prior.Points, true), nil
		}
		if !errors.Is(err, repository.ErrTransactionNotFound) {
			return nil, err
		}
	}

	now := s.now()

	tx := &model.PointsTransaction{
		UserID: userID,
		Type:   model.TransactionTypeEarn,
		Points: req.Points,
		Notes:  action.Notes(),
	}
	if req.SourceID != "" {
		sourceID := req.SourceID
		tx.SourceID = &sourceID
	}

	if action == model.ActionChat {
		count, err := s.store.CountChatEarnsSince(ctx, userID, now.Add(-config.ChatRewardWindow))
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrRateLimited
		}

		// Minute bucket backing the partial unique index; turns the
		// check-then-act race between concurrent chat awards into a
		// constraint violation instead of a double award.
		slot := now.Unix() / 60
		tx.ChatSlot = &slot
	}

	if err := s.store.InsertTransaction(ctx, tx); err != nil {
		if errors.Is(err, repository.ErrChatSlotTaken) {
			return nil, ErrRateLimited
		}
		if errors.Is(err, repository.ErrDuplicateSource) && req.SourceID != "" {
			// A concurrent retry with the same idempotency key won the
			// insert; report its award instead of failing.
			prior, lookupErr := s.store.GetEarnBySource(ctx, userID, req.SourceID)
			if lookupErr != nil {
				return nil, err
			}
			return s.buildResult(ctx, userID, prior.Points, true), nil
		}
		return nil, err
	}

	return s.buildResult(ctx, userID, req.Points, false), nil
}

// GetHistory returns the caller's ledger page, newest first.
func (s *AwardService) GetHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.PointsTransaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.GetTransactions(ctx, userID, limit, offset)
}

func (s *AwardService) buildResult(ctx context.Context, userID uuid.UUID, pointsEarned int64, duplicate bool) *AwardResult {
	result := &AwardResult{
		PointsEarned: pointsEarned,
		TotalPoints:  0,
		Tier:         model.DefaultTier,
		DisplayName:  model.DefaultDisplayName,
		Duplicate:    duplicate,
	}

	standing, err := s.store.GetUserStanding(ctx, userID)
	if err != nil || standing == nil {
		// Transaction is already durable; report success with defaults.
		return result
	}

	result.TotalPoints = standing.CurrentPoints
	result.Tier = standing.MembershipTier
	result.DisplayName = standing.DisplayName
	return result
}
