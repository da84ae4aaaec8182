package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/weddingplan/planner-api/internal/core/domain"
	"github.com/weddingplan/planner-api/internal/core/ports"
)

// KeyPrefix namespaces the local planner slots.
// Key format: wedding-planner-storage-v1:<user_id>
const KeyPrefix = "wedding-planner-storage-v1"

// SnapshotCache is the durable local slot of each user's planner, stored as
// a JSON string without expiry.
type SnapshotCache struct {
	client redis.UniversalClient
}

var _ ports.SnapshotCache = (*SnapshotCache)(nil)

// NewSnapshotCache creates a SnapshotCache wrapping the given Redis client.
func NewSnapshotCache(client redis.UniversalClient) *SnapshotCache {
	return &SnapshotCache{client: client}
}

// Put overwrites the slot of userID.
func (c *SnapshotCache) Put(ctx context.Context, userID string, snap domain.LocalSnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode local snapshot: %w", err)
	}
	if err := c.client.Set(ctx, c.key(userID), raw, 0).Err(); err != nil {
		return fmt.Errorf("write local snapshot: %w", err)
	}
	return nil
}

// Get reads the slot of userID. An empty slot or undecodable content is
// reported as domain.ErrSnapshotNotFound so the caller falls back to defaults.
func (c *SnapshotCache) Get(ctx context.Context, userID string) (*domain.LocalSnapshot, error) {
	raw, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("read local snapshot: %w", err)
	}

	var snap domain.LocalSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSnapshotNotFound, err)
	}
	return &snap, nil
}

// Delete clears the slot of userID.
func (c *SnapshotCache) Delete(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}

func (c *SnapshotCache) key(userID string) string {
	return fmt.Sprintf("%s:%s", KeyPrefix, userID)
}
