package aggregate

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/driftwood-social/driftwood/internal/apperror"
	"github.com/driftwood-social/driftwood/internal/db"
	"github.com/driftwood-social/driftwood/internal/models"
	"github.com/driftwood-social/driftwood/pkg/logging"
)

// Maintainer owns the derived vote counters on posts and comments. It
// is the single writer: every caller path funnels through Recompute,
// which does a full recount rather than an increment so any missed or
// doubled ledger mutation heals on the next pass instead of drifting.
type Maintainer struct {
	repo       *db.Repository
	logger     *zap.Logger
	maxRetries int
}

// NewMaintainer creates a new aggregate maintainer
func NewMaintainer(repo *db.Repository, maxRetries int) *Maintainer {
	return &Maintainer{
		repo:       repo,
		logger:     logging.WithComponent("aggregate"),
		maxRetries: maxRetries,
	}
}

// Recompute recounts the ledger for one target and writes
// upvote_count, downvote_count and vote_score. Safe to run
// concurrently with itself and with new votes; a vote landing after
// the count snapshot is picked up by the recompute that vote triggers.
func (m *Maintainer) Recompute(ctx context.Context, kind models.TargetKind, targetID int64) error {
	if !kind.Valid() {
		return apperror.Validationf("invalid target kind %d", kind)
	}

	var lastErr error
	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 50 * time.Millisecond):
			}
		}

		lastErr = m.recomputeOnce(ctx, kind, targetID)
		if lastErr == nil {
			return nil
		}

		m.logger.Warn("Recompute attempt failed",
			zap.String("target_kind", kind.String()),
			zap.Int64("target_id", targetID),
			zap.Int("attempt", attempt+1),
			zap.Error(lastErr))
	}

	return apperror.Unavailablef(lastErr, "recompute %s %d failed after %d attempts",
		kind, targetID, m.maxRetries+1)
}

func (m *Maintainer) recomputeOnce(ctx context.Context, kind models.TargetKind, targetID int64) error {
	voteRepo := db.NewVoteRepository(m.repo)
	upvotes, downvotes, err := voteRepo.Tally(ctx, kind, targetID)
	if err != nil {
		return fmt.Errorf("tally votes: %w", err)
	}

	switch kind {
	case models.TargetPost:
		err = db.NewPostRepository(m.repo).SetAggregates(ctx, targetID, upvotes, downvotes)
	case models.TargetComment:
		err = db.NewCommentRepository(m.repo).SetAggregates(ctx, targetID, upvotes, downvotes)
	}
	if err != nil {
		return fmt.Errorf("write aggregates: %w", err)
	}

	m.logger.Debug("Recomputed aggregates",
		zap.String("target_kind", kind.String()),
		zap.Int64("target_id", targetID),
		zap.Int64("upvotes", upvotes),
		zap.Int64("downvotes", downvotes))

	return nil
}
