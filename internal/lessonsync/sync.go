// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lessonsync replaces the remote lesson collection with a freshly
// parsed lesson set.
//
// A sync has two phases. The delete phase lists every document in the
// collection and removes them; the insert phase stores each lesson under a
// newly allocated document id. Each phase commits in batches of at most
// BatchLimit writes and every batch is atomic, but the phases are not atomic
// together: a failed insert after a successful delete leaves the collection
// partly filled.
//
// Ordering decides whether the insert phase waits for the delete phase.
// OrderSequential (the default) never leaves old and new lessons side by
// side. OrderConcurrent starts both at once; a delete listing taken after
// some inserts committed would also remove new lessons, so it is only safe
// when the collection is known to be quiet.
package lessonsync

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/tpadmin/internal/docstore"
	"github.com/pdiddy/tpadmin/internal/logging"
	"github.com/pdiddy/tpadmin/pkg/types"
)

const (
	// Collection holds one document per lesson.
	Collection = "lessons"

	// BatchLimit is Firestore's maximum number of writes per batch.
	BatchLimit = 500
)

// Phase names the part of a sync that failed.
type Phase string

const (
	PhaseList   Phase = "list"
	PhaseDelete Phase = "delete"
	PhaseInsert Phase = "insert"
)

// SyncError reports a failed listing or batch commit.
type SyncError struct {
	Phase Phase
	Cause error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync %s phase: %v", e.Phase, e.Cause)
}

func (e *SyncError) Unwrap() error { return e.Cause }

// Result counts the writes of a successful sync.
type Result struct {
	Deleted  int
	Inserted int
	Batches  int
}

// Options configures a Syncer.
type Options struct {
	Ordering  types.Ordering
	BatchSize int
	Logger    *logging.Logger
}

// Syncer performs full-replace syncs against one store.
type Syncer struct {
	store     docstore.Store
	ordering  types.Ordering
	batchSize int
	log       *logging.Logger
}

// New creates a Syncer. Zero options mean sequential ordering, BatchLimit
// batches, and no logging. Batch sizes above BatchLimit are clamped.
func New(store docstore.Store, opts Options) (*Syncer, error) {
	ordering := opts.Ordering
	switch ordering {
	case "":
		ordering = types.OrderSequential
	case types.OrderSequential, types.OrderConcurrent:
	default:
		return nil, fmt.Errorf("unknown ordering %q: use sequential or concurrent", ordering)
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 || batchSize > BatchLimit {
		batchSize = BatchLimit
	}

	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	return &Syncer{
		store:     store,
		ordering:  ordering,
		batchSize: batchSize,
		log:       log.With("component", "lessonsync"),
	}, nil
}

// SyncLessons replaces the lessons collection with lessons. The lesson's own
// ID field is stored as data; document ids come from the store.
func (s *Syncer) SyncLessons(ctx context.Context, lessons []types.Lesson) (Result, error) {
	var deleted, deleteBatches, inserted, insertBatches int

	deletePhase := func(ctx context.Context) error {
		var err error
		deleted, deleteBatches, err = s.deleteAll(ctx)
		return err
	}
	insertPhase := func(ctx context.Context) error {
		var err error
		inserted, insertBatches, err = s.insertAll(ctx, lessons)
		return err
	}

	s.log.Info("sync started", "lessons", len(lessons), "ordering", string(s.ordering), "batch_size", s.batchSize)

	switch s.ordering {
	case types.OrderConcurrent:
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return deletePhase(gctx) })
		g.Go(func() error { return insertPhase(gctx) })
		if err := g.Wait(); err != nil {
			return Result{}, err
		}
	default:
		if err := deletePhase(ctx); err != nil {
			return Result{}, err
		}
		if err := insertPhase(ctx); err != nil {
			return Result{}, err
		}
	}

	res := Result{Deleted: deleted, Inserted: inserted, Batches: deleteBatches + insertBatches}
	s.log.Info("sync finished", "deleted", res.Deleted, "inserted", res.Inserted, "batches", res.Batches)
	return res, nil
}

func (s *Syncer) deleteAll(ctx context.Context) (int, int, error) {
	ids, err := s.store.ListDocuments(ctx, Collection)
	if err != nil {
		return 0, 0, &SyncError{Phase: PhaseList, Cause: err}
	}

	writes := make([]docstore.Write, len(ids))
	for i, id := range ids {
		writes[i] = docstore.Write{Op: docstore.OpDelete, Collection: Collection, ID: id}
	}

	// Nothing to delete means nothing to commit.
	if len(writes) == 0 {
		return 0, 0, nil
	}
	batches, err := s.commitChunks(ctx, PhaseDelete, writes)
	if err != nil {
		return 0, batches, err
	}
	return len(ids), batches, nil
}

func (s *Syncer) insertAll(ctx context.Context, lessons []types.Lesson) (int, int, error) {
	writes := make([]docstore.Write, len(lessons))
	for i, l := range lessons {
		writes[i] = docstore.Write{
			Op:         docstore.OpSet,
			Collection: Collection,
			ID:         s.store.NewID(Collection),
			Data:       l,
		}
	}

	batches, err := s.commitChunks(ctx, PhaseInsert, writes)
	if err != nil {
		return 0, batches, err
	}
	return len(lessons), batches, nil
}

// commitChunks commits writes in batches of s.batchSize. An empty writes
// slice still commits one empty batch. It returns the number of batches
// committed before any failure.
func (s *Syncer) commitChunks(ctx context.Context, phase Phase, writes []docstore.Write) (int, error) {
	committed := 0
	for start := 0; start == 0 || start < len(writes); start += s.batchSize {
		end := start + s.batchSize
		if end > len(writes) {
			end = len(writes)
		}

		if err := s.store.Commit(ctx, writes[start:end]); err != nil {
			s.log.Error("batch commit failed", "phase", string(phase), "batch", committed, "error", err)
			return committed, &SyncError{Phase: phase, Cause: err}
		}
		committed++
		s.log.Debug("batch committed", "phase", string(phase), "writes", end-start)
	}
	return committed, nil
}
