package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/weddingplan/planner-api/internal/core/domain"
	"github.com/weddingplan/planner-api/internal/core/ports"
)

const defaultWriteTimeout = 10 * time.Second

type syncService struct {
	repo    ports.SnapshotRepository
	timeout time.Duration
	log     zerolog.Logger
}

// NewSyncService returns a SyncService writing snapshots to repo. Each write
// is bounded by timeout.
func NewSyncService(repo ports.SnapshotRepository, timeout time.Duration, log zerolog.Logger) ports.SyncService {
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	return &syncService{repo: repo, timeout: timeout, log: log}
}

// Process overwrites the remote document of job.UserID with job.Snapshot and
// reports the outcome to job.Done. Failures are not retried; the next edit
// schedules a fresh write.
func (s *syncService) Process(ctx context.Context, job ports.SyncJob) error {
	wctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	base := job.ExpectRevision()
	rev, err := s.repo.Save(wctx, job.UserID, job.Snapshot, base)
	if job.Done != nil {
		job.Done(rev, err)
	}

	switch {
	case err == nil:
		s.log.Debug().
			Str("user_id", job.UserID).
			Int64("revision", rev).
			Int("guests", len(job.Snapshot.Guests)).
			Int("budget_items", len(job.Snapshot.BudgetItems)).
			Msg("cloud snapshot saved")
		return nil
	case errors.Is(err, domain.ErrSyncConflict):
		s.log.Warn().Str("user_id", job.UserID).Int64("base_revision", base).Msg("cloud snapshot rejected, revision moved")
	default:
		s.log.Error().Err(err).Str("user_id", job.UserID).Msg("cloud snapshot write failed")
	}
	return fmt.Errorf("sync snapshot: %w", err)
}
