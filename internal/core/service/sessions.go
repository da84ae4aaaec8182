package service

import (
	"context"

	"github.com/weddingplan/planner-api/internal/core/store"
)

// Sessions gives services access to the open planner stores.
// *store.Registry satisfies it.
type Sessions interface {
	Acquire(ctx context.Context, userID string) (*store.Store, error)
	Lookup(userID string) (*store.Store, bool)
	Release(userID string)
	Discard(ctx context.Context, userID string) error
}
