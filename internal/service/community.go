package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/cache"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/model"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/repository"
)

var (
	ErrEmptyTrack  = errors.New("track name is required")
	ErrMoodTooLong = errors.New("mood must be 32 characters or fewer")
)

const defaultMood = "chill"

type CommunityService struct {
	repo     *repository.Repository
	presence *cache.Presence
}

func NewCommunityService(repo *repository.Repository, presence *cache.Presence) *CommunityService {
	return &CommunityService{repo: repo, presence: presence}
}

// CheckIn marks the member present in the community hub with a mood. The
// entry expires on its own; repeat check-ins refresh it.
func (s *CommunityService) CheckIn(ctx context.Context, userID uuid.UUID, displayName, mood string) error {
	mood = strings.TrimSpace(mood)
	if mood == "" {
		mood = defaultMood
	}
	if len(mood) > 32 {
		return ErrMoodTooLong
	}

	return s.presence.CheckIn(ctx, cache.Member{
		UserID:      userID,
		DisplayName: displayName,
		Mood:        mood,
	})
}

func (s *CommunityService) CheckOut(ctx context.Context, userID uuid.UUID) error {
	return s.presence.CheckOut(ctx, userID)
}

func (s *CommunityService) ActiveMembers(ctx context.Context) ([]cache.Member, error) {
	return s.presence.Active(ctx)
}

// RequestSong persists a song request. Spotify playback is handled by the
// front of house; the backend only keeps the queue.
func (s *CommunityService) RequestSong(ctx context.Context, userID uuid.UUID, track, artist string) (*model.SongRequest, error) {
	track = strings.TrimSpace(track)
	if track == "" {
		return nil, ErrEmptyTrack
	}

	req := &model.SongRequest{
		UserID: userID,
		Track:  track,
		Artist: strings.TrimSpace(artist),
	}
	if err := s.repo.CreateSongRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *CommunityService) ListSongRequests(ctx context.Context, limit int) ([]model.SongRequest, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.ListSongRequests(ctx, limit)
}
