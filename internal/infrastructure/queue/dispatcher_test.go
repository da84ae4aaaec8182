package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/weddingplan/planner-api/internal/core/domain"
	"github.com/weddingplan/planner-api/internal/core/ports"
)

type recordingService struct {
	mu    sync.Mutex
	order map[string][]int64
	err   error
}

func (s *recordingService) Process(_ context.Context, job ports.SyncJob) error {
	s.mu.Lock()
	s.order[job.UserID] = append(s.order[job.UserID], job.ExpectRevision())
	s.mu.Unlock()
	if job.Done != nil {
		job.Done(job.ExpectRevision()+1, s.err)
	}
	return s.err
}

func TestDispatcher_PreservesPerUserOrder(t *testing.T) {
	svc := &recordingService{order: make(map[string][]int64)}
	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(context.Background())

	users := []string{"a", "b", "c", "d", "e"}
	for rev := int64(0); rev < 20; rev++ {
		for _, u := range users {
			d.Submit(ports.SyncJob{UserID: u, BaseRevision: func() int64 { return rev }})
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	for _, u := range users {
		got := svc.order[u]
		if len(got) != 20 {
			t.Fatalf("user %s: expected 20 jobs, got %d", u, len(got))
		}
		for i, rev := range got {
			if rev != int64(i) {
				t.Fatalf("user %s: job %d out of order (%d)", u, i, rev)
			}
		}
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, &recordingService{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	first := d.shardIndex("user_1")
	for i := 0; i < 10; i++ {
		if d.shardIndex("user_1") != first {
			t.Fatalf("shard index changed")
		}
	}
}

func TestDispatcher_SubmitAfterClose(t *testing.T) {
	d := NewDispatcher(1, &recordingService{order: make(map[string][]int64)}, zerolog.Nop())
	d.Start(context.Background())
	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}

	var got error
	d.Submit(ports.SyncJob{UserID: "a", Done: func(_ int64, err error) { got = err }})
	if !errors.Is(got, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", got)
	}
}

func TestSyncResult(t *testing.T) {
	cases := map[string]error{
		"ok":       nil,
		"conflict": domain.ErrSyncConflict,
		"error":    errors.New("boom"),
	}
	for want, err := range cases {
		if got := syncResult(err); got != want {
			t.Fatalf("syncResult(%v) = %s, want %s", err, got, want)
		}
	}
}
