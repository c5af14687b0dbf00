package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReadStateRepository tracks which notification ids a dashboard
// session has already seen. The set only ever grows (idempotent
// union); marking reads never touches solicitation records.
type ReadStateRepository interface {
	ReadIDs(ctx context.Context, sessionID string) (map[string]struct{}, error)
	MarkRead(ctx context.Context, sessionID string, ids ...string) error
}

type readStateRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReadStateRepository builds a Redis-backed read-state store.
// Entries expire with the session so abandoned dashboards don't
// accumulate keys forever.
func NewReadStateRepository(client *redis.Client, ttl time.Duration) ReadStateRepository {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &readStateRepository{client: client, ttl: ttl}
}

func readStateKey(sessionID string) string {
	return "notifications:read:" + sessionID
}

func (r *readStateRepository) ReadIDs(ctx context.Context, sessionID string) (map[string]struct{}, error) {
	members, err := r.client.SMembers(ctx, readStateKey(sessionID)).Result()
	if err != nil {
		return nil, err
	}
	ids := make(map[string]struct{}, len(members))
	for _, m := range members {
		ids[m] = struct{}{}
	}
	return ids, nil
}

func (r *readStateRepository) MarkRead(ctx context.Context, sessionID string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	key := readStateKey(sessionID)
	members := make([]any, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	pipe := r.client.Pipeline()
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, r.ttl)
	_, err := pipe.Exec(ctx)
	return err
}
