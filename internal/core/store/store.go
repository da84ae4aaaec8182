package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/weddingplan/planner-api/internal/core/domain"
	"github.com/weddingplan/planner-api/internal/core/ports"
)

// Options configures a Store. Cache and Sink may be nil, which disables local
// persistence and cloud sync respectively.
type Options struct {
	Cache                ports.SnapshotCache
	Sink                 ports.SyncSink
	QuietPeriod          time.Duration
	NotificationDuration time.Duration
	// ConflictCheck conditions each cloud write on the last seen revision.
	ConflictCheck bool
	NewID         func() string
	Logger        zerolog.Logger
}

// Store is the authoritative in-memory planner state of one user.
type Store struct {
	userID        string
	state         atomic.Pointer[State]
	mu            sync.Mutex
	cache         ports.SnapshotCache
	sink          ports.SyncSink
	notifier      *Notifier
	bridge        *SyncBridge
	conflictCheck bool
	newID         func() string
	log           zerolog.Logger

	// closed is guarded by mu. A closed store no longer writes its local
	// slot nor hands jobs to the sink.
	closed   bool
	inflight sync.WaitGroup
}

// New returns a Store for userID starting from initial.
func New(userID string, initial State, opts Options) *Store {
	s := &Store{
		userID:        userID,
		cache:         opts.Cache,
		sink:          opts.Sink,
		notifier:      NewNotifier(opts.NotificationDuration),
		conflictCheck: opts.ConflictCheck,
		newID:         opts.NewID,
		log:           opts.Logger.With().Str("user_id", userID).Logger(),
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	s.bridge = NewSyncBridge(opts.QuietPeriod, s.pushSnapshot)

	st := initial.Clone()
	s.state.Store(&st)
	return s
}

// UserID returns the owner of the store.
func (s *Store) UserID() string { return s.userID }

// NewID returns a fresh entity identifier.
func (s *Store) NewID() string { return s.newID() }

// Snapshot returns a copy of the current state. It never waits for writers.
func (s *Store) Snapshot() State {
	return s.state.Load().Clone()
}

// Dispatch applies a to the current state, publishes the result, writes the
// local snapshot and runs the effects the action returned. A local
// persistence failure is returned after the effects ran; the in-memory state
// keeps the change.
func (s *Store) Dispatch(ctx context.Context, a Action) (State, error) {
	next, effects, err := s.commit(ctx, a, true)
	s.run(effects)
	return next, err
}

func (s *Store) commit(ctx context.Context, a Action, persist bool) (State, []Effect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, effects := a(s.state.Load().Clone())
	published := next.Clone()
	s.state.Store(&published)

	if !persist || s.cache == nil || s.closed {
		return next, effects, nil
	}
	if err := s.cache.Put(ctx, s.userID, next.Local()); err != nil {
		return next, effects, fmt.Errorf("persist local snapshot: %w", err)
	}
	return next, effects, nil
}

func (s *Store) run(effects []Effect) {
	for _, e := range effects {
		switch e := e.(type) {
		case Notify:
			s.notifier.Add(e.Kind, e.Message, e.Duration)
		case ScheduleSync:
			s.bridge.Trigger()
		}
	}
}

// Notify posts a toast outside of an action.
func (s *Store) Notify(kind domain.NotificationKind, message string, d time.Duration) string {
	return s.notifier.Add(kind, message, d)
}

// Notifications lists pending toasts.
func (s *Store) Notifications() []domain.Notification {
	return s.notifier.List()
}

// DismissNotification removes a toast; unknown IDs are ignored.
func (s *Store) DismissNotification(id string) {
	s.notifier.Remove(id)
}

// SyncPending reports whether a debounced cloud write is waiting.
func (s *Store) SyncPending() bool {
	return s.bridge.Pending()
}

// Flush pushes a pending cloud write without waiting for the quiet period.
func (s *Store) Flush() bool {
	return s.bridge.Flush()
}

// ReserveUsage takes one advisor call of kind from the free quota. It
// reports false, leaving the counter untouched, when limit calls were already
// used. Check and increment happen under the writer lock.
func (s *Store) ReserveUsage(ctx context.Context, kind domain.UsageKind, limit int) (bool, error) {
	granted := false
	_, _, err := s.commit(ctx, func(st State) (State, []Effect) {
		if st.GuestUsage.Count(kind) >= limit {
			return st, nil
		}
		granted = true
		st.GuestUsage = st.GuestUsage.Increment(kind)
		return st, nil
	}, true)
	return granted, err
}

// Close cancels pending timers. Pending edits are not pushed; call Flush
// first to keep them. Later writes stay in memory only.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.bridge.Stop()
	s.notifier.Close()
}

// Discard closes the store without pushing pending edits and waits until
// cloud writes already handed to the sink have completed.
func (s *Store) Discard(ctx context.Context) error {
	s.Close()
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// pushSnapshot is the debounce callback: it takes a fresh snapshot and hands
// it to the sink when the user has cloud storage enabled.
func (s *Store) pushSnapshot() {
	st := s.state.Load()
	if !st.User.CloudEnabled() {
		s.log.Debug().Msg("cloud storage disabled, sync skipped")
		return
	}
	if s.sink == nil {
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.inflight.Add(1)
	s.mu.Unlock()

	_, _, _ = s.commit(context.Background(), SetSyncing(true), false)

	job := ports.SyncJob{
		UserID:   s.userID,
		Snapshot: st.Cloud(),
		Done:     s.syncDone,
	}
	if s.conflictCheck {
		job.BaseRevision = s.revision
	}
	s.sink.Submit(job)
}

// revision is read by the sync worker right before the write, so a job queued
// behind another one sees the revision that one produced.
func (s *Store) revision() int64 {
	return s.state.Load().Revision
}

func (s *Store) syncDone(revision int64, err error) {
	defer s.inflight.Done()
	ctx := context.Background()
	switch {
	case err == nil:
		_, _, perr := s.commit(ctx, func(st State) (State, []Effect) {
			st.Revision = revision
			st.IsSyncing = false
			return st, nil
		}, true)
		if perr != nil {
			s.log.Warn().Err(perr).Msg("failed to persist synced revision")
		}
	case errors.Is(err, domain.ErrSyncConflict):
		_, _, _ = s.commit(ctx, SetSyncing(false), false)
		s.notifier.Add(domain.NotifyError, "Your data was changed on another device; reload before editing", 0)
	default:
		_, _, _ = s.commit(ctx, SetSyncing(false), false)
	}
}
