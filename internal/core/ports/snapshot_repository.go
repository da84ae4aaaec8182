package ports

import (
	"context"

	"github.com/weddingplan/planner-api/internal/core/domain"
)

// SnapshotRepository is the remote document store: one document per user.
type SnapshotRepository interface {
	// Save overwrites the whole document of userID and returns the new
	// revision. When expectRevision is non-negative the write only succeeds
	// if the stored revision still equals it; otherwise domain.ErrSyncConflict
	// is returned. A negative expectRevision means last-write-wins.
	Save(ctx context.Context, userID string, snap domain.CloudSnapshot, expectRevision int64) (int64, error)

	// Load returns the stored document or domain.ErrSnapshotNotFound.
	Load(ctx context.Context, userID string) (*domain.CloudDocument, error)
}

// SnapshotCache is the local durable slot holding the latest LocalSnapshot
// of each user.
type SnapshotCache interface {
	Put(ctx context.Context, userID string, snap domain.LocalSnapshot) error
	// Get returns domain.ErrSnapshotNotFound when the slot is empty or its
	// content cannot be decoded.
	Get(ctx context.Context, userID string) (*domain.LocalSnapshot, error)
	Delete(ctx context.Context, userID string) error
}
