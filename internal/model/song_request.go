package model

import (
	"time"

	"github.com/google/uuid"
)

type SongRequest struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Track     string    `json:"track" db:"track"`
	Artist    string    `json:"artist" db:"artist"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
