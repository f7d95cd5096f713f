package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/model"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/repository"
)

type fakeAwardStore struct {
	transactions []*model.PointsTransaction
	standing     *model.UserStanding
	standingErr  error
	insertErr    error

	// sourceRaceWinner simulates a concurrent retry with the same
	// idempotency key committing between the lookup and the insert: the
	// insert fails with ErrDuplicateSource and the winner's row becomes
	// visible.
	sourceRaceWinner *model.PointsTransaction

	rateLimitQueries int
}

func (f *fakeAwardStore) CountChatEarnsSince(_ context.Context, userID uuid.UUID, since time.Time) (int, error) {
	f.rateLimitQueries++
	count := 0
	for _, t := range f.transactions {
		if t.UserID == userID && t.Type == model.TransactionTypeEarn &&
			strings.Contains(t.Notes, "chat") && t.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

func (f *fakeAwardStore) GetEarnBySource(_ context.Context, userID uuid.UUID, sourceID string) (*model.PointsTransaction, error) {
	for _, t := range f.transactions {
		if t.UserID == userID && t.Type == model.TransactionTypeEarn &&
			t.SourceID != nil && *t.SourceID == sourceID {
			return t, nil
		}
	}
	return nil, repository.ErrTransactionNotFound
}

func (f *fakeAwardStore) InsertTransaction(_ context.Context, t *model.PointsTransaction) error {
	if f.sourceRaceWinner != nil {
		f.transactions = append(f.transactions, f.sourceRaceWinner)
		f.sourceRaceWinner = nil
		return repository.ErrDuplicateSource
	}
	if f.insertErr != nil {
		return f.insertErr
	}
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	f.transactions = append(f.transactions, t)
	return nil
}

func (f *fakeAwardStore) GetUserStanding(_ context.Context, _ uuid.UUID) (*model.UserStanding, error) {
	if f.standingErr != nil {
		return nil, f.standingErr
	}
	return f.standing, nil
}

func (f *fakeAwardStore) GetTransactions(_ context.Context, userID uuid.UUID, limit, offset int) ([]model.PointsTransaction, error) {
	var out []model.PointsTransaction
	for i := len(f.transactions) - 1; i >= 0; i-- {
		if f.transactions[i].UserID == userID {
			out = append(out, *f.transactions[i])
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func newAwardFixture() (*AwardService, *fakeAwardStore) {
	store := &fakeAwardStore{
		standing: &model.UserStanding{
			CurrentPoints:  150,
			MembershipTier: model.TierSilver,
			DisplayName:    "Maya",
		},
	}
	return NewAwardService(store), store
}

func TestAwardEveryValidAction(t *testing.T) {
	expectedNotes := map[string]string{
		"chill":        "Sit & Chill reward - took time to relax in the café",
		"chat":         "Community chat participation",
		"song_request": "Song request interaction",
		"photo_upload": "Photo contest participation",
	}

	for actionType, notes := range expectedNotes {
		t.Run(actionType, func(t *testing.T) {
			svc, store := newAwardFixture()
			userID := uuid.New()

			result, err := svc.Award(context.Background(), userID, AwardRequest{Type: actionType, Points: 5})
			require.NoError(t, err)

			require.Len(t, store.transactions, 1)
			tx := store.transactions[0]
			assert.Equal(t, model.TransactionTypeEarn, tx.Type)
			assert.Equal(t, int64(5), tx.Points)
			assert.Equal(t, notes, tx.Notes)
			assert.Equal(t, userID, tx.UserID)

			assert.Equal(t, int64(5), result.PointsEarned)
			assert.Equal(t, int64(150), result.TotalPoints)
			assert.Equal(t, model.TierSilver, result.Tier)
			assert.Equal(t, "Maya", result.DisplayName)
		})
	}
}

func TestAwardChatRateLimitedWithinWindow(t *testing.T) {
	svc, store := newAwardFixture()
	userID := uuid.New()

	_, err := svc.Award(context.Background(), userID, AwardRequest{Type: "chat", Points: 1})
	require.NoError(t, err)

	_, err = svc.Award(context.Background(), userID, AwardRequest{Type: "chat", Points: 1})
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Len(t, store.transactions, 1, "rejected award must not insert a row")
}

func TestAwardChatAllowedAfterWindow(t *testing.T) {
	svc, store := newAwardFixture()
	userID := uuid.New()

	_, err := svc.Award(context.Background(), userID, AwardRequest{Type: "chat", Points: 1})
	require.NoError(t, err)

	// Age the first award past the 60s window.
	store.transactions[0].CreatedAt = store.transactions[0].CreatedAt.Add(-61 * time.Second)

	_, err = svc.Award(context.Background(), userID, AwardRequest{Type: "chat", Points: 1})
	require.NoError(t, err)
	assert.Len(t, store.transactions, 2)
}

func TestAwardNoRateLimitForOtherActions(t *testing.T) {
	for _, actionType := range []string{"chill", "song_request", "photo_upload"} {
		t.Run(actionType, func(t *testing.T) {
			svc, store := newAwardFixture()
			userID := uuid.New()

			for i := 0; i < 5; i++ {
				_, err := svc.Award(context.Background(), userID, AwardRequest{Type: actionType, Points: 2})
				require.NoError(t, err)
			}
			assert.Len(t, store.transactions, 5)
			assert.Zero(t, store.rateLimitQueries, "non-chat actions must not query the rate-limit window")
		})
	}
}

func TestAwardRejectsNonPositivePoints(t *testing.T) {
	svc, store := newAwardFixture()
	userID := uuid.New()

	for _, points := range []int64{0, -5} {
		_, err := svc.Award(context.Background(), userID, AwardRequest{Type: "chill", Points: points})
		assert.ErrorIs(t, err, ErrInvalidPoints)
	}
	assert.Empty(t, store.transactions)
}

func TestAwardRejectsUnknownAction(t *testing.T) {
	svc, store := newAwardFixture()

	_, err := svc.Award(context.Background(), uuid.New(), AwardRequest{Type: "unknown_type", Points: 1})
	assert.ErrorIs(t, err, ErrInvalidAction)
	assert.Empty(t, store.transactions)
	assert.Zero(t, store.rateLimitQueries)
}

func TestAwardSucceedsWhenReadBackFails(t *testing.T) {
	svc, store := newAwardFixture()
	store.standingErr = errors.New("connection reset")

	result, err := svc.Award(context.Background(), uuid.New(), AwardRequest{Type: "chill", Points: 10})
	require.NoError(t, err, "a committed award must not be reported as failed")

	assert.Len(t, store.transactions, 1)
	assert.Equal(t, int64(10), result.PointsEarned)
	assert.Equal(t, int64(0), result.TotalPoints)
	assert.Equal(t, model.TierBronze, result.Tier)
	assert.Equal(t, "Coffee Lover", result.DisplayName)
}

func TestAwardIdempotentOnSourceID(t *testing.T) {
	svc, store := newAwardFixture()
	userID := uuid.New()

	first, err := svc.Award(context.Background(), userID, AwardRequest{Type: "photo_upload", Points: 25, SourceID: "contest-42"})
	require.NoError(t, err)
	assert.False(t, first.Duplicate)

	second, err := svc.Award(context.Background(), userID, AwardRequest{Type: "photo_upload", Points: 25, SourceID: "contest-42"})
	require.NoError(t, err)

	assert.True(t, second.Duplicate)
	assert.Equal(t, int64(25), second.PointsEarned)
	assert.Len(t, store.transactions, 1, "retries with the same source must not double-award")
}

func TestAwardDuplicateSourceConflictReturnsPriorAward(t *testing.T) {
	svc, store := newAwardFixture()
	userID := uuid.New()
	sourceID := "contest-42"

	store.sourceRaceWinner = &model.PointsTransaction{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      model.TransactionTypeEarn,
		Points:    25,
		Notes:     model.ActionPhotoUpload.Notes(),
		SourceID:  &sourceID,
		CreatedAt: time.Now(),
	}

	result, err := svc.Award(context.Background(), userID, AwardRequest{Type: "photo_upload", Points: 25, SourceID: sourceID})
	require.NoError(t, err, "losing a same-key insert race must not fail the request")
	assert.NotErrorIs(t, err, ErrRateLimited)

	assert.True(t, result.Duplicate)
	assert.Equal(t, int64(25), result.PointsEarned)
	assert.Len(t, store.transactions, 1, "only the race winner's row exists")
}

func TestAwardChatSlotConflictMapsToRateLimited(t *testing.T) {
	svc, store := newAwardFixture()
	store.insertErr = repository.ErrChatSlotTaken

	_, err := svc.Award(context.Background(), uuid.New(), AwardRequest{Type: "chat", Points: 1})
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestAwardPropagatesStorageFailure(t *testing.T) {
	svc, store := newAwardFixture()
	store.insertErr = errors.New("disk on fire")

	_, err := svc.Award(context.Background(), uuid.New(), AwardRequest{Type: "chill", Points: 3})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrRateLimited)
}

func TestGetHistoryClampsLimit(t *testing.T) {
	svc, _ := newAwardFixture()
	userID := uuid.New()

	for i := 0; i < 30; i++ {
		_, err := svc.Award(context.Background(), userID, AwardRequest{Type: "chill", Points: 1})
		require.NoError(t, err)
	}

	page, err := svc.GetHistory(context.Background(), userID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, page, 20, "limit defaults to 20")

	page, err = svc.GetHistory(context.Background(), userID, 1000, 0)
	require.NoError(t, err)
	assert.Len(t, page, 30, "limit is clamped to 100")
}
