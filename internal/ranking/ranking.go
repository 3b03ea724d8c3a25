package ranking

import (
	"fmt"
	"time"
)

// Ordering selects one of the supported rank-key modes. The formulas
// here are user-visible ordering contracts; changing a coefficient or a
// guard changes what every client sees.
type Ordering string

const (
	OrderingNew           Ordering = "new"
	OrderingTop           Ordering = "top"
	OrderingHot           Ordering = "hot"
	OrderingControversial Ordering = "controversial"
	OrderingTrending      Ordering = "trending"
)

// ParseOrdering validates and returns an ordering from its wire form.
func ParseOrdering(s string) (Ordering, error) {
	switch Ordering(s) {
	case OrderingNew, OrderingTop, OrderingHot, OrderingControversial, OrderingTrending:
		return Ordering(s), nil
	}
	return "", fmt.Errorf("invalid ordering: %q", s)
}

// Signals is the per-item input to every rank key: current aggregates
// plus timestamps. It is ephemeral; nothing persists a rank key.
type Signals struct {
	ID            int64
	VoteScore     int64
	UpvoteCount   int64
	DownvoteCount int64
	CommentCount  int64
	CreatedAt     time.Time
	IsPinned      bool
}

// ControversyRatio is |up - down| / (up + down + 1); lower means more
// evenly split. The +1 keeps zero-vote items off the top and away from
// a division fault.
func ControversyRatio(upvotes, downvotes int64) float64 {
	diff := upvotes - downvotes
	if diff < 0 {
		diff = -diff
	}
	return float64(diff) / float64(upvotes+downvotes+1)
}

// TrendingScore is (score + 3*comments) / max(ageHours, 1). The floor
// on age keeps items younger than an hour from scoring unboundedly.
func TrendingScore(voteScore, commentCount int64, createdAt, now time.Time) float64 {
	ageHours := now.Sub(createdAt).Hours()
	if ageHours < 1 {
		ageHours = 1
	}
	return float64(voteScore+3*commentCount) / ageHours
}

// Less reports whether a ranks strictly before b under the ordering.
// Every mode ends in a created-at then id tie-break so equal keys sort
// deterministically.
func Less(a, b Signals, o Ordering, now time.Time) bool {
	switch o {
	case OrderingNew:
		// key = createdAt, descending

	case OrderingTop:
		if a.VoteScore != b.VoteScore {
			return a.VoteScore > b.VoteScore
		}

	case OrderingHot:
		// pinned items sort before everything regardless of other keys
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		if a.VoteScore != b.VoteScore {
			return a.VoteScore > b.VoteScore
		}
		if a.CommentCount != b.CommentCount {
			return a.CommentCount > b.CommentCount
		}

	case OrderingControversial:
		ra := ControversyRatio(a.UpvoteCount, a.DownvoteCount)
		rb := ControversyRatio(b.UpvoteCount, b.DownvoteCount)
		if ra != rb {
			return ra < rb
		}

	case OrderingTrending:
		ta := TrendingScore(a.VoteScore, a.CommentCount, a.CreatedAt, now)
		tb := TrendingScore(b.VoteScore, b.CommentCount, b.CreatedAt, now)
		if ta != tb {
			return ta > tb
		}
	}

	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// PostOrderClause returns the Postgres ORDER BY expression for posts.
// It must agree exactly with Less; the ranking tests pin both sides.
func PostOrderClause(o Ordering) string {
	return orderClause(o, "comment_count")
}

// CommentOrderClause returns the ORDER BY expression for comments,
// whose activity counter is reply_count.
func CommentOrderClause(o Ordering) string {
	return orderClause(o, "reply_count")
}

func orderClause(o Ordering, activityCol string) string {
	switch o {
	case OrderingTop:
		return "vote_score DESC, created_at DESC, id DESC"
	case OrderingHot:
		return fmt.Sprintf("is_pinned DESC, vote_score DESC, %s DESC, created_at DESC, id DESC", activityCol)
	case OrderingControversial:
		return "ABS(upvote_count - downvote_count)::float / (upvote_count + downvote_count + 1) ASC, created_at DESC, id DESC"
	case OrderingTrending:
		return fmt.Sprintf(
			"(vote_score + 3 * %s) / GREATEST(EXTRACT(EPOCH FROM (NOW() - created_at)) / 3600.0, 1) DESC, created_at DESC, id DESC",
			activityCol)
	default: // OrderingNew
		return "created_at DESC, id DESC"
	}
}
