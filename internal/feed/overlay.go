package feed

import (
	"context"

	"go.uber.org/zap"

	"github.com/driftwood-social/driftwood/internal/db"
	"github.com/driftwood-social/driftwood/internal/models"
)

// overlay is the per-viewer state merged into a page of results:
// current vote values and saved markers for exactly the page's ids.
type overlay struct {
	votes map[int64]int16
	saved map[int64]bool
}

// emptyOverlay is what anonymous viewers get, with no lookups at all.
func emptyOverlay() *overlay {
	return &overlay{votes: map[int64]int16{}, saved: map[int64]bool{}}
}

// loadOverlay collects the page's item ids and issues one batched vote
// lookup and one batched saved lookup. Never one query per item. A
// failure here degrades the page to unpersonalized rather than failing
// the request; the caller decides that, so errors are returned as-is.
func (c *Composer) loadOverlay(ctx context.Context, viewerID int64, kind models.TargetKind, ids []int64) (*overlay, error) {
	votes, err := c.ledger.VotesForViewer(ctx, viewerID, kind, ids)
	if err != nil {
		return nil, err
	}
	saved, err := db.NewSavedItemRepository(c.repo).GetSetForViewer(ctx, viewerID, kind, ids)
	if err != nil {
		return nil, err
	}
	return &overlay{votes: votes, saved: saved}, nil
}

// overlayOrEmpty wraps loadOverlay with the graceful-degradation rule:
// if only the personalization step fails, the feed still serves.
func (c *Composer) overlayOrEmpty(ctx context.Context, viewer *models.Account, kind models.TargetKind, ids []int64) *overlay {
	if viewer == nil || len(ids) == 0 {
		return emptyOverlay()
	}
	ov, err := c.loadOverlay(ctx, viewer.ID, kind, ids)
	if err != nil {
		c.logger.Warn("Personalization overlay failed, serving unpersonalized",
			zap.Int64("viewer_id", viewer.ID),
			zap.String("target_kind", kind.String()),
			zap.Error(err))
		return emptyOverlay()
	}
	return ov
}

// applyOverlay merges viewer state into post items in place.
func applyOverlay(items []Item, ov *overlay) {
	for i := range items {
		id := items[i].Post.ID
		items[i].ViewerVote = ov.votes[id]
		items[i].IsSaved = ov.saved[id]
	}
}

// applyCommentOverlay merges viewer state into comment items in place.
func applyCommentOverlay(items []CommentItem, ov *overlay) {
	for i := range items {
		id := items[i].Comment.ID
		items[i].ViewerVote = ov.votes[id]
		items[i].IsSaved = ov.saved[id]
	}
}
