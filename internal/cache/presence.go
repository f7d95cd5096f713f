package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const presenceKeyPrefix = "presence:"

// Member is one active community-hub check-in.
type Member struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Mood        string    `json:"mood"`
	CheckedInAt time.Time `json:"checked_in_at"`
}

// Presence stores ephemeral check-ins in redis. Entries expire on their own
// after the TTL, so leaving the café needs no explicit action.
type Presence struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewPresence(client *redis.Client, ttl time.Duration) *Presence {
	return &Presence{redis: client, ttl: ttl}
}

func (p *Presence) CheckIn(ctx context.Context, member Member) error {
	member.CheckedInAt = time.Now().UTC()
	payload, err := json.Marshal(member)
	if err != nil {
		return err
	}
	return p.redis.Set(ctx, presenceKey(member.UserID), payload, p.ttl).Err()
}

func (p *Presence) CheckOut(ctx context.Context, userID uuid.UUID) error {
	return p.redis.Del(ctx, presenceKey(userID)).Err()
}

// Active lists everyone currently checked in. Keys that expire between the
// scan and the read are skipped.
func (p *Presence) Active(ctx context.Context) ([]Member, error) {
	members := make([]Member, 0)

	iter := p.redis.Scan(ctx, 0, presenceKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		payload, err := p.redis.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, err
		}

		var member Member
		if err := json.Unmarshal(payload, &member); err != nil {
			continue
		}
		members = append(members, member)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return members, nil
}

func presenceKey(userID uuid.UUID) string {
	return presenceKeyPrefix + userID.String()
}
