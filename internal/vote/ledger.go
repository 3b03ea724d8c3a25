package vote

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/driftwood-social/driftwood/internal/aggregate"
	"github.com/driftwood-social/driftwood/internal/apperror"
	"github.com/driftwood-social/driftwood/internal/db"
	"github.com/driftwood-social/driftwood/internal/models"
	"github.com/driftwood-social/driftwood/internal/notify"
	"github.com/driftwood-social/driftwood/pkg/logging"
	"github.com/driftwood-social/driftwood/pkg/telemetry"
)

// Ledger owns the authoritative vote records: one signed value per
// (voter, target), upserted in place. A cast is "set my vote to v",
// never "increment", which is what makes blind client retries safe.
type Ledger struct {
	repo       *db.Repository
	maintainer *aggregate.Maintainer
	notifier   *notify.Notifier
	logger     *zap.Logger
	maxRetries int
}

// NewLedger creates a new vote ledger
func NewLedger(repo *db.Repository, maintainer *aggregate.Maintainer, notifier *notify.Notifier, maxRetries int) *Ledger {
	return &Ledger{
		repo:       repo,
		maintainer: maintainer,
		notifier:   notifier,
		logger:     logging.WithComponent("vote-ledger"),
		maxRetries: maxRetries,
	}
}

// targetState is what the ledger needs to know about a votable item
// before accepting a vote on it.
type targetState struct {
	authorID  int64
	isLocked  bool
	isDeleted bool
}

// Cast upserts the voter's value on the target. Value 0 retracts; a
// retraction with no existing record is a no-op and returns an
// unpersisted zero-value record. Emits a vote notification on a
// transition to a different non-zero value; notification failure never
// fails the cast. Aggregates are recomputed before return so the next
// read of the item reflects the ledger.
func (l *Ledger) Cast(ctx context.Context, voterID int64, kind models.TargetKind, targetID int64, value int16) (*models.Vote, error) {
	ctx, span := telemetry.StartSpan(ctx, "vote.cast")
	defer span.End()

	if value < -1 || value > 1 {
		return nil, apperror.Validationf("vote value must be -1, 0 or 1, got %d", value)
	}
	if !kind.Valid() {
		return nil, apperror.Validationf("invalid target kind %d", kind)
	}
	if targetID <= 0 {
		return nil, apperror.Validationf("invalid target id %d", targetID)
	}

	target, err := l.loadTarget(ctx, kind, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil || target.isDeleted {
		return nil, apperror.NotFoundf("%s %d not found", kind, targetID)
	}
	if target.isLocked {
		return nil, apperror.Forbiddenf("%s %d is locked", kind, targetID)
	}
	if target.authorID == voterID {
		return nil, apperror.ErrSelfVote
	}

	voteRepo := db.NewVoteRepository(l.repo)
	existing, err := voteRepo.GetByVoterTarget(ctx, voterID, kind, targetID)
	if err != nil {
		return nil, apperror.Unavailablef(err, "read vote ledger")
	}

	prev := int16(0)
	if existing != nil {
		prev = existing.Value
	}

	// Retraction with nothing to retract: no record, no side effects.
	if value == 0 && existing == nil {
		return &models.Vote{
			VoterID:    voterID,
			TargetKind: kind,
			TargetID:   targetID,
			Value:      0,
		}, nil
	}

	record := &models.Vote{
		VoterID:    voterID,
		TargetKind: kind,
		TargetID:   targetID,
		Value:      value,
		UpdatedAt:  time.Now().UTC(),
	}

	// Identical value: the upsert would be a no-op; skip the write so
	// repeated calls produce no side effects at all.
	if prev != value || existing == nil {
		if err := l.upsertWithRetry(ctx, voteRepo, record); err != nil {
			return nil, err
		}

		if err := l.maintainer.Recompute(ctx, kind, targetID); err != nil {
			// The ledger write stands; the next mutation or the
			// reconciler will recount.
			l.logger.Error("Recompute after cast failed",
				zap.String("target_kind", kind.String()),
				zap.Int64("target_id", targetID),
				zap.Error(err))
		}
	}

	if notify.ShouldNotify(prev, value) {
		l.notifier.VoteReceived(ctx, voterID, target.authorID, kind, targetID, value)
	}

	if existing != nil {
		record.ID = existing.ID
	}
	return record, nil
}

// Delete removes a vote record. Only the vote's owner or an
// administrator may delete it.
func (l *Ledger) Delete(ctx context.Context, voteID, requesterID int64) error {
	ctx, span := telemetry.StartSpan(ctx, "vote.delete")
	defer span.End()

	voteRepo := db.NewVoteRepository(l.repo)
	vote, err := voteRepo.GetByID(ctx, voteID)
	if err != nil {
		return apperror.Unavailablef(err, "read vote ledger")
	}
	if vote == nil {
		return apperror.NotFoundf("vote %d not found", voteID)
	}

	if vote.VoterID != requesterID {
		requester, err := db.NewAccountRepository(l.repo).GetByID(ctx, requesterID)
		if err != nil {
			return apperror.Unavailablef(err, "read requester account")
		}
		if requester == nil || !requester.IsAdmin {
			return apperror.Forbiddenf("vote %d does not belong to account %d", voteID, requesterID)
		}
	}

	if err := voteRepo.Delete(ctx, voteID); err != nil {
		return apperror.Unavailablef(err, "delete vote %d", voteID)
	}

	if err := l.maintainer.Recompute(ctx, vote.TargetKind, vote.TargetID); err != nil {
		l.logger.Error("Recompute after delete failed",
			zap.String("target_kind", vote.TargetKind.String()),
			zap.Int64("target_id", vote.TargetID),
			zap.Error(err))
	}

	return nil
}

// VotesForViewer returns the viewer's current values over a set of
// targets as a map, in a single query. Used only by the feed overlay.
func (l *Ledger) VotesForViewer(ctx context.Context, voterID int64, kind models.TargetKind, targetIDs []int64) (map[int64]int16, error) {
	votes, err := db.NewVoteRepository(l.repo).GetForViewer(ctx, voterID, kind, targetIDs)
	if err != nil {
		return nil, err
	}
	result := make(map[int64]int16, len(votes))
	for _, v := range votes {
		result[v.TargetID] = v.Value
	}
	return result, nil
}

func (l *Ledger) upsertWithRetry(ctx context.Context, voteRepo *db.VoteRepository, record *models.Vote) error {
	var lastErr error
	for attempt := 0; attempt <= l.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 25 * time.Millisecond):
			}
		}

		lastErr = voteRepo.Upsert(ctx, record)
		if lastErr == nil {
			return nil
		}

		l.logger.Warn("Vote upsert attempt failed",
			zap.Int64("voter_id", record.VoterID),
			zap.String("target_kind", record.TargetKind.String()),
			zap.Int64("target_id", record.TargetID),
			zap.Int("attempt", attempt+1),
			zap.Error(lastErr))
	}
	return apperror.Unavailablef(lastErr, "vote upsert failed after %d attempts", l.maxRetries+1)
}

func (l *Ledger) loadTarget(ctx context.Context, kind models.TargetKind, targetID int64) (*targetState, error) {
	switch kind {
	case models.TargetPost:
		post, err := db.NewPostRepository(l.repo).GetByID(ctx, targetID)
		if err != nil {
			return nil, apperror.Unavailablef(err, "read post %d", targetID)
		}
		if post == nil {
			return nil, nil
		}
		return &targetState{
			authorID:  post.AuthorID,
			isLocked:  post.IsLocked,
			isDeleted: post.IsDeleted,
		}, nil
	case models.TargetComment:
		comment, err := db.NewCommentRepository(l.repo).GetByID(ctx, targetID)
		if err != nil {
			return nil, apperror.Unavailablef(err, "read comment %d", targetID)
		}
		if comment == nil {
			return nil, nil
		}
		return &targetState{
			authorID:  comment.AuthorID,
			isLocked:  comment.IsLocked,
			isDeleted: comment.IsDeleted,
		}, nil
	}
	return nil, apperror.Validationf("invalid target kind %d", kind)
}
