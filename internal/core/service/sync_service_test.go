package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/weddingplan/planner-api/internal/core/domain"
	"github.com/weddingplan/planner-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubSnapshotRepo struct {
	saved    map[string]domain.CloudSnapshot
	revision int64
	saveErr  error
	lastBase int64
	deadline bool
}

func newStubSnapshotRepo() *stubSnapshotRepo {
	return &stubSnapshotRepo{saved: make(map[string]domain.CloudSnapshot)}
}

func (r *stubSnapshotRepo) Save(ctx context.Context, userID string, snap domain.CloudSnapshot, expect int64) (int64, error) {
	_, r.deadline = ctx.Deadline()
	r.lastBase = expect
	if r.saveErr != nil {
		return 0, r.saveErr
	}
	r.revision++
	r.saved[userID] = snap
	return r.revision, nil
}

func (r *stubSnapshotRepo) Load(_ context.Context, userID string) (*domain.CloudDocument, error) {
	snap, ok := r.saved[userID]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return &domain.CloudDocument{UserID: userID, Revision: r.revision, Snapshot: snap}, nil
}

type doneRecorder struct {
	calls    int
	revision int64
	err      error
}

func (d *doneRecorder) done(rev int64, err error) {
	d.calls++
	d.revision = rev
	d.err = err
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestSyncService_Process_Success(t *testing.T) {
	repo := newStubSnapshotRepo()
	svc := NewSyncService(repo, time.Second, zerolog.Nop())
	rec := &doneRecorder{}

	job := ports.SyncJob{
		UserID:   "user_1",
		Snapshot: domain.CloudSnapshot{Guests: []domain.Guest{{ID: "g1"}}},
		Done:     rec.done,
	}
	if err := svc.Process(context.Background(), job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.calls != 1 || rec.revision != 1 || rec.err != nil {
		t.Fatalf("unexpected completion: %+v", rec)
	}
	if len(repo.saved["user_1"].Guests) != 1 {
		t.Fatalf("snapshot not saved")
	}
	if !repo.deadline {
		t.Fatalf("expected the write to carry a deadline")
	}
	if repo.lastBase != -1 {
		t.Fatalf("expected base revision to be forwarded, got %d", repo.lastBase)
	}
}

func TestSyncService_Process_Conflict(t *testing.T) {
	repo := newStubSnapshotRepo()
	repo.saveErr = domain.ErrSyncConflict
	svc := NewSyncService(repo, time.Second, zerolog.Nop())
	rec := &doneRecorder{}

	err := svc.Process(context.Background(), ports.SyncJob{UserID: "user_1", BaseRevision: func() int64 { return 3 }, Done: rec.done})
	if !errors.Is(err, domain.ErrSyncConflict) {
		t.Fatalf("expected ErrSyncConflict, got %v", err)
	}
	if rec.calls != 1 || !errors.Is(rec.err, domain.ErrSyncConflict) {
		t.Fatalf("completion not reported: %+v", rec)
	}
	if repo.lastBase != 3 {
		t.Fatalf("expected base revision 3, got %d", repo.lastBase)
	}
}

func TestSyncService_Process_WriteFailureWithoutCallback(t *testing.T) {
	repo := newStubSnapshotRepo()
	repo.saveErr = errors.New("connection reset")
	svc := NewSyncService(repo, 0, zerolog.Nop())

	if err := svc.Process(context.Background(), ports.SyncJob{UserID: "user_1"}); err == nil {
		t.Fatalf("expected error")
	}
}
