package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/weddingplan/planner-api/internal/core/domain"
	"github.com/weddingplan/planner-api/internal/core/ports"
)

const collectionPlannerData = "planner_data"

// SnapshotRepository stores one planner document per user, keyed by user ID.
type SnapshotRepository struct {
	col *mongo.Collection
	now func() time.Time
}

var _ ports.SnapshotRepository = (*SnapshotRepository)(nil)

func NewSnapshotRepository(db *mongo.Database) *SnapshotRepository {
	return &SnapshotRepository{col: db.Collection(collectionPlannerData), now: time.Now}
}

type snapshotDocument struct {
	UserID    string               `bson:"_id"`
	Revision  int64                `bson:"revision"`
	UpdatedAt time.Time            `bson:"updated_at"`
	Snapshot  domain.CloudSnapshot `bson:"snapshot"`
}

// Save overwrites the snapshot of userID and bumps its revision. With a
// non-negative expectRevision the filter also matches the revision; when the
// stored document has moved on, the upsert collides on _id and the write is
// reported as domain.ErrSyncConflict.
func (r *SnapshotRepository) Save(ctx context.Context, userID string, snap domain.CloudSnapshot, expectRevision int64) (int64, error) {
	filter := bson.M{"_id": userID}
	if expectRevision >= 0 {
		filter["revision"] = expectRevision
	}
	update := bson.M{
		"$set": bson.M{
			"snapshot":   snap,
			"updated_at": r.now().UTC(),
		},
		"$inc": bson.M{"revision": int64(1)},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After).
		SetProjection(bson.M{"revision": 1})

	var out struct {
		Revision int64 `bson:"revision"`
	}
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, domain.ErrSyncConflict
		}
		return 0, fmt.Errorf("save snapshot: %w", err)
	}
	return out.Revision, nil
}

// Load returns the stored document of userID.
func (r *SnapshotRepository) Load(ctx context.Context, userID string) (*domain.CloudDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc snapshotDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return &domain.CloudDocument{
		UserID:    doc.UserID,
		Revision:  doc.Revision,
		UpdatedAt: doc.UpdatedAt,
		Snapshot:  doc.Snapshot,
	}, nil
}

// Delete removes the document of userID. Missing documents are ignored.
func (r *SnapshotRepository) Delete(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}
