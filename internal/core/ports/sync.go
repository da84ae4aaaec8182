package ports

import (
	"context"

	"github.com/weddingplan/planner-api/internal/core/domain"
)

// SyncJob is a single debounced cloud write.
type SyncJob struct {
	UserID   string
	Snapshot domain.CloudSnapshot
	// BaseRevision, when set, returns the remote revision the write must
	// match. It is read when the job is processed, after earlier jobs of the
	// same user completed. Nil means last write wins.
	BaseRevision func() int64
	// Done, when set, is called once with the outcome of the write.
	Done func(revision int64, err error)
}

// ExpectRevision resolves BaseRevision, returning -1 when unset.
func (j SyncJob) ExpectRevision() int64 {
	if j.BaseRevision == nil {
		return -1
	}
	return j.BaseRevision()
}

// SyncSink accepts sync jobs for asynchronous processing.
type SyncSink interface {
	Submit(job SyncJob)
}

// SyncService performs a queued cloud write.
type SyncService interface {
	Process(ctx context.Context, job SyncJob) error
}
