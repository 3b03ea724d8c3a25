package ranking

import (
	"math"
	"sort"
	"strings"
	"testing"
	"time"
)

func TestParseOrdering(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Ordering
		wantErr bool
	}{
		{"new", "new", OrderingNew, false},
		{"top", "top", OrderingTop, false},
		{"hot", "hot", OrderingHot, false},
		{"controversial", "controversial", OrderingControversial, false},
		{"trending", "trending", OrderingTrending, false},
		{"empty", "", "", true},
		{"unknown", "spicy", "", true},
		{"case sensitive", "Hot", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOrdering(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOrdering(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOrdering(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestControversyRatio(t *testing.T) {
	tests := []struct {
		name     string
		upvotes   int64
		downvotes int64
		want      float64
	}{
		{"lopsided", 10, 2, 8.0 / 13.0},
		{"perfect split", 6, 6, 0},
		{"no votes", 0, 0, 0},
		{"all downvotes", 0, 5, 5.0 / 6.0},
		{"all upvotes", 5, 0, 5.0 / 6.0},
		{"single upvote", 1, 0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ControversyRatio(tt.upvotes, tt.downvotes)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ControversyRatio(%d, %d) = %v, want %v", tt.upvotes, tt.downvotes, got, tt.want)
			}
		})
	}
}

func TestControversialOrdersEvenSplitFirst(t *testing.T) {
	// Item A: 10 up / 2 down is less contested than item B: 6 up / 6 down.
	now := time.Now()
	a := Signals{ID: 1, UpvoteCount: 10, DownvoteCount: 2, CreatedAt: now}
	b := Signals{ID: 2, UpvoteCount: 6, DownvoteCount: 6, CreatedAt: now}

	if !Less(b, a, OrderingControversial, now) {
		t.Error("expected even split to rank before lopsided item")
	}
	if Less(a, b, OrderingControversial, now) {
		t.Error("expected lopsided item to rank after even split")
	}
}

func TestTrendingScore(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		voteScore    int64
		commentCount int64
		age          time.Duration
		want         float64
	}{
		{"two hours old", 10, 2, 2 * time.Hour, 8},
		{"age floored at one hour", 10, 2, 10 * time.Minute, 16},
		{"zero age", 7, 1, 0, 10},
		{"negative score", -4, 0, 2 * time.Hour, -2},
		{"comments weighted triple", 0, 3, 1 * time.Hour, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrendingScore(tt.voteScore, tt.commentCount, now.Add(-tt.age), now)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("TrendingScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLess(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	earlier := now.Add(-1 * time.Hour)

	tests := []struct {
		name     string
		a, b     Signals
		ordering Ordering
		want     bool
	}{
		{
			name:     "new prefers recent",
			a:        Signals{ID: 1, CreatedAt: now},
			b:        Signals{ID: 2, CreatedAt: earlier},
			ordering: OrderingNew,
			want:     true,
		},
		{
			name:     "new tie-breaks by id descending",
			a:        Signals{ID: 2, CreatedAt: now},
			b:        Signals{ID: 1, CreatedAt: now},
			ordering: OrderingNew,
			want:     true,
		},
		{
			name:     "top prefers higher score",
			a:        Signals{ID: 1, VoteScore: 5, CreatedAt: earlier},
			b:        Signals{ID: 2, VoteScore: 3, CreatedAt: now},
			ordering: OrderingTop,
			want:     true,
		},
		{
			name:     "top tie-breaks by created_at",
			a:        Signals{ID: 1, VoteScore: 5, CreatedAt: now},
			b:        Signals{ID: 2, VoteScore: 5, CreatedAt: earlier},
			ordering: OrderingTop,
			want:     true,
		},
		{
			name:     "hot puts pinned first",
			a:        Signals{ID: 1, IsPinned: true, CreatedAt: earlier},
			b:        Signals{ID: 2, VoteScore: 100, CommentCount: 50, CreatedAt: now},
			ordering: OrderingHot,
			want:     true,
		},
		{
			name:     "hot falls through to comment count",
			a:        Signals{ID: 1, VoteScore: 5, CommentCount: 9, CreatedAt: earlier},
			b:        Signals{ID: 2, VoteScore: 5, CommentCount: 4, CreatedAt: now},
			ordering: OrderingHot,
			want:     true,
		},
		{
			name:     "controversial prefers even split",
			a:        Signals{ID: 1, UpvoteCount: 6, DownvoteCount: 6, CreatedAt: earlier},
			b:        Signals{ID: 2, UpvoteCount: 10, DownvoteCount: 2, CreatedAt: now},
			ordering: OrderingControversial,
			want:     true,
		},
		{
			name:     "trending prefers high velocity",
			a:        Signals{ID: 1, VoteScore: 20, CreatedAt: now.Add(-1 * time.Hour)},
			b:        Signals{ID: 2, VoteScore: 20, CreatedAt: now.Add(-4 * time.Hour)},
			ordering: OrderingTrending,
			want:     true,
		},
		{
			name:     "trending tie-breaks by created_at then id",
			a:        Signals{ID: 2, VoteScore: 10, CreatedAt: now.Add(-30 * time.Minute)},
			b:        Signals{ID: 1, VoteScore: 10, CreatedAt: now.Add(-30 * time.Minute)},
			ordering: OrderingTrending,
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Less(tt.a, tt.b, tt.ordering, now); got != tt.want {
				t.Errorf("Less() = %v, want %v", got, tt.want)
			}
			// Strict weak ordering: the reverse comparison must disagree.
			if tt.want {
				if Less(tt.b, tt.a, tt.ordering, now) {
					t.Error("Less() is not antisymmetric")
				}
			}
		})
	}
}

func TestLessSortsDeterministically(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	items := []Signals{
		{ID: 3, VoteScore: 5, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: 1, VoteScore: 5, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: 2, VoteScore: 9, CreatedAt: now.Add(-3 * time.Hour)},
		{ID: 4, VoteScore: 5, CreatedAt: now.Add(-1 * time.Hour)},
	}

	sort.SliceStable(items, func(i, j int) bool {
		return Less(items[i], items[j], OrderingTop, now)
	})

	wantIDs := []int64{2, 4, 3, 1}
	for i, want := range wantIDs {
		if items[i].ID != want {
			t.Fatalf("position %d: got id %d, want %d", i, items[i].ID, want)
		}
	}
}

func TestOrderClauses(t *testing.T) {
	tests := []struct {
		name     string
		ordering Ordering
		clause   func(Ordering) string
		want     string
	}{
		{
			"posts new", OrderingNew, PostOrderClause,
			"created_at DESC, id DESC",
		},
		{
			"posts top", OrderingTop, PostOrderClause,
			"vote_score DESC, created_at DESC, id DESC",
		},
		{
			"posts hot", OrderingHot, PostOrderClause,
			"is_pinned DESC, vote_score DESC, comment_count DESC, created_at DESC, id DESC",
		},
		{
			"posts controversial", OrderingControversial, PostOrderClause,
			"ABS(upvote_count - downvote_count)::float / (upvote_count + downvote_count + 1) ASC, created_at DESC, id DESC",
		},
		{
			"comments hot", OrderingHot, CommentOrderClause,
			"is_pinned DESC, vote_score DESC, reply_count DESC, created_at DESC, id DESC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.clause(tt.ordering); got != tt.want {
				t.Errorf("order clause = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTrendingClauseUsesActivityColumn(t *testing.T) {
	post := PostOrderClause(OrderingTrending)
	comment := CommentOrderClause(OrderingTrending)

	if !strings.Contains(post, "3 * comment_count") {
		t.Errorf("post trending clause missing comment weight: %q", post)
	}
	if !strings.Contains(comment, "3 * reply_count") {
		t.Errorf("comment trending clause missing reply weight: %q", comment)
	}
	for _, clause := range []string{post, comment} {
		if !strings.Contains(clause, "GREATEST") {
			t.Errorf("trending clause missing age floor: %q", clause)
		}
		if !strings.HasSuffix(clause, "created_at DESC, id DESC") {
			t.Errorf("trending clause missing tie-break: %q", clause)
		}
	}
}
