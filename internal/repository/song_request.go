package repository

import (
	"context"
	"fmt"

	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/model"
)

func (r *Repository) CreateSongRequest(ctx context.Context, req *model.SongRequest) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO song_requests (user_id, track, artist)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		req.UserID, req.Track, req.Artist,
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create song request: %w", err)
	}
	return nil
}

func (r *Repository) ListSongRequests(ctx context.Context, limit int) ([]model.SongRequest, error) {
	var requests []model.SongRequest
	err := r.db.SelectContext(ctx, &requests, `
		SELECT * FROM song_requests
		ORDER BY created_at DESC
		LIMIT $1`,
		limit)
	return requests, err
}
