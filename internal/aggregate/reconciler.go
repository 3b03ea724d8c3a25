package aggregate

import (
	"context"

	"go.uber.org/zap"

	"github.com/driftwood-social/driftwood/internal/db"
	"github.com/driftwood-social/driftwood/internal/models"
	"github.com/driftwood-social/driftwood/pkg/logging"
)

// Reconciler replays Recompute over every votable item. It is the
// designated repair action for aggregate drift: recounting is always
// safe, so recovery never needs manual ledger edits. Runs out of band
// via cmd/reconcile, never on the request path.
type Reconciler struct {
	repo       *db.Repository
	maintainer *Maintainer
	logger     *zap.Logger
	batchSize  int
}

// NewReconciler creates a new reconciler
func NewReconciler(repo *db.Repository, maintainer *Maintainer, batchSize int) *Reconciler {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &Reconciler{
		repo:       repo,
		maintainer: maintainer,
		logger:     logging.WithComponent("reconciler"),
		batchSize:  batchSize,
	}
}

// ReconcileAll walks all posts, then all comments, recomputing each.
func (r *Reconciler) ReconcileAll(ctx context.Context) error {
	posts, err := r.reconcileKind(ctx, models.TargetPost)
	if err != nil {
		return err
	}
	comments, err := r.reconcileKind(ctx, models.TargetComment)
	if err != nil {
		return err
	}

	r.logger.Info("Reconciliation complete",
		zap.Int64("posts", posts),
		zap.Int64("comments", comments))
	return nil
}

func (r *Reconciler) reconcileKind(ctx context.Context, kind models.TargetKind) (int64, error) {
	var done int64
	afterID := int64(0)

	for {
		select {
		case <-ctx.Done():
			return done, ctx.Err()
		default:
		}

		ids, err := r.idsAfter(ctx, kind, afterID)
		if err != nil {
			return done, err
		}
		if len(ids) == 0 {
			return done, nil
		}

		for _, id := range ids {
			if err := r.maintainer.Recompute(ctx, kind, id); err != nil {
				// Keep going; a single bad row should not stop recovery.
				r.logger.Error("Failed to reconcile item",
					zap.String("target_kind", kind.String()),
					zap.Int64("target_id", id),
					zap.Error(err))
				continue
			}
			done++
		}

		afterID = ids[len(ids)-1]
		r.logger.Debug("Reconciled batch",
			zap.String("target_kind", kind.String()),
			zap.Int64("after_id", afterID),
			zap.Int("batch", len(ids)))
	}
}

func (r *Reconciler) idsAfter(ctx context.Context, kind models.TargetKind, afterID int64) ([]int64, error) {
	if kind == models.TargetPost {
		return db.NewPostRepository(r.repo).IDsAfter(ctx, afterID, r.batchSize)
	}
	return db.NewCommentRepository(r.repo).IDsAfter(ctx, afterID, r.batchSize)
}
