package notify

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/driftwood-social/driftwood/internal/db"
	"github.com/driftwood-social/driftwood/internal/models"
	"github.com/driftwood-social/driftwood/pkg/logging"
)

// Notifier emits vote notifications to item authors. Emission is
// fire-and-forget: a failed write is logged and dropped, and must never
// fail or roll back the vote that produced it.
type Notifier struct {
	repo   *db.Repository
	logger *zap.Logger
}

// NewNotifier creates a new notifier
func NewNotifier(repo *db.Repository) *Notifier {
	return &Notifier{
		repo:   repo,
		logger: logging.WithComponent("notify"),
	}
}

// ShouldNotify implements the transition rule for vote notifications:
// only a change to a different non-zero value notifies. Retractions
// (next == 0) and repeats never do.
func ShouldNotify(prev, next int16) bool {
	return next != 0 && next != prev
}

// VoteReceived records a "vote received" notification addressed to the
// target's author, tagged with direction by notification type.
func (n *Notifier) VoteReceived(ctx context.Context, actorID, recipientID int64, kind models.TargetKind, targetID int64, value int16) {
	typeID := models.NotifyTypeVoteUp
	if value < 0 {
		typeID = models.NotifyTypeVoteDown
	}

	notif := &models.Notification{
		Type:      typeID,
		CreatedAt: time.Now().UTC(),
		SrcID:     sql.NullInt64{Int64: actorID, Valid: true},
		DstID:     sql.NullInt64{Int64: recipientID, Valid: true},
	}
	switch kind {
	case models.TargetPost:
		notif.PostID = sql.NullInt64{Int64: targetID, Valid: true}
	case models.TargetComment:
		notif.CommentID = sql.NullInt64{Int64: targetID, Valid: true}
	}

	notifRepo := db.NewNotificationRepository(n.repo)
	if err := notifRepo.Create(ctx, notif); err != nil {
		n.logger.Warn("Failed to write vote notification",
			zap.Int64("actor_id", actorID),
			zap.Int64("recipient_id", recipientID),
			zap.String("target_kind", kind.String()),
			zap.Int64("target_id", targetID),
			zap.Error(err))
	}
}

// SetLastRead updates the lastread_at timestamp for an account
func (n *Notifier) SetLastRead(ctx context.Context, accountID int64, when time.Time) error {
	return db.NewAccountRepository(n.repo).SetLastRead(ctx, accountID, when)
}
