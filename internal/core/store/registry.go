package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/weddingplan/planner-api/internal/core/domain"
	"github.com/weddingplan/planner-api/internal/core/ports"
)

// Registry owns the open Store of every active user. Stores are created on
// first access, loading the local slot and, for cloud-enabled users, the
// remote document.
type Registry struct {
	mu     sync.Mutex
	stores map[string]*Store
	group  singleflight.Group

	users  ports.UserRepository
	remote ports.SnapshotRepository
	opts   Options
	log    zerolog.Logger
}

// NewRegistry returns an empty Registry. opts is the template for every Store;
// remote may be nil.
func NewRegistry(users ports.UserRepository, remote ports.SnapshotRepository, opts Options) *Registry {
	return &Registry{
		stores: make(map[string]*Store),
		users:  users,
		remote: remote,
		opts:   opts,
		log:    opts.Logger,
	}
}

// Acquire returns the open store of userID, loading it if needed.
func (r *Registry) Acquire(ctx context.Context, userID string) (*Store, error) {
	if s, ok := r.Lookup(userID); ok {
		return s, nil
	}

	// The load is shared by every waiter, so it must outlive the caller that
	// happened to start it.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := r.group.Do(userID, func() (any, error) {
		if s, ok := r.Lookup(userID); ok {
			return s, nil
		}
		s, err := r.load(loadCtx, userID)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.stores[userID] = s
		r.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Store), nil
}

// Lookup returns the store of userID if it is open.
func (r *Registry) Lookup(userID string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[userID]
	return s, ok
}

// Release flushes any pending sync of userID and closes its store.
func (r *Registry) Release(userID string) {
	r.mu.Lock()
	s, ok := r.stores[userID]
	delete(r.stores, userID)
	r.mu.Unlock()
	if !ok {
		return
	}
	s.Flush()
	s.Close()
}

// Discard closes the store of userID without pushing pending edits and waits
// for cloud writes already queued. Used before the user's data is erased.
func (r *Registry) Discard(ctx context.Context, userID string) error {
	r.mu.Lock()
	s, ok := r.stores[userID]
	delete(r.stores, userID)
	r.mu.Unlock()
	if !ok {
		return nil
	}
	return s.Discard(ctx)
}

// CloseAll flushes and closes every open store.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	stores := r.stores
	r.stores = make(map[string]*Store)
	r.mu.Unlock()

	for _, s := range stores {
		s.Flush()
		s.Close()
	}
}

// Open reports how many stores are loaded.
func (r *Registry) Open() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

func (r *Registry) load(ctx context.Context, userID string) (*Store, error) {
	user, err := r.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	log := r.log.With().Str("user_id", userID).Logger()
	st := DefaultState(user)
	haveLocal := false

	if r.opts.Cache != nil {
		snap, err := r.opts.Cache.Get(ctx, userID)
		switch {
		case err == nil:
			st = FromLocal(*snap, user)
			haveLocal = true
		case errors.Is(err, domain.ErrSnapshotNotFound):
			log.Debug().Msg("no local snapshot, using defaults")
		default:
			log.Warn().Err(err).Msg("local snapshot unreadable, using defaults")
		}
	}

	if r.remote != nil && user.CloudEnabled() {
		doc, err := r.remote.Load(ctx, userID)
		switch {
		case err == nil:
			if !haveLocal || doc.Revision > st.Revision {
				st, _ = ApplyCloudDocument(*doc)(st)
				log.Info().Int64("revision", doc.Revision).Msg("restored planner data from cloud")
			}
		case errors.Is(err, domain.ErrSnapshotNotFound):
		default:
			log.Warn().Err(err).Msg("cloud snapshot unavailable, keeping local data")
		}
	}

	return New(userID, st, r.opts), nil
}
