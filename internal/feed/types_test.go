package feed

import (
	"testing"

	"github.com/driftwood-social/driftwood/internal/models"
)

func TestParseScope(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Scope
		wantErr bool
	}{
		{"global", "global", ScopeGlobal, false},
		{"community", "community", ScopeCommunity, false},
		{"author", "author", ScopeAuthor, false},
		{"home", "home", ScopeHome, false},
		{"tag", "tag", ScopeTag, false},
		{"search", "search", ScopeSearch, false},
		{"empty", "", "", true},
		{"unknown", "friends", "", true},
		{"case sensitive", "Global", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScope(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseScope(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseScope(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name       string
		totalCount int64
		pageSize   int
		expected   int
	}{
		{"exact fit", 50, 25, 2},
		{"partial last page", 25, 10, 3},
		{"single item", 1, 25, 1},
		{"empty result", 0, 25, 0},
		{"one under boundary", 24, 25, 1},
		{"one over boundary", 26, 25, 2},
		{"zero page size", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalPages(tt.totalCount, tt.pageSize); got != tt.expected {
				t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.totalCount, tt.pageSize, got, tt.expected)
			}
		})
	}
}

func TestApplyOverlay(t *testing.T) {
	items := []Item{
		{Post: &models.Post{ID: 1}},
		{Post: &models.Post{ID: 2}},
		{Post: &models.Post{ID: 3}},
	}
	ov := &overlay{
		votes: map[int64]int16{1: 1, 3: -1},
		saved: map[int64]bool{2: true},
	}

	applyOverlay(items, ov)

	if items[0].ViewerVote != 1 || items[0].IsSaved {
		t.Errorf("item 1 overlay = (%d, %v), want (1, false)", items[0].ViewerVote, items[0].IsSaved)
	}
	if items[1].ViewerVote != 0 || !items[1].IsSaved {
		t.Errorf("item 2 overlay = (%d, %v), want (0, true)", items[1].ViewerVote, items[1].IsSaved)
	}
	if items[2].ViewerVote != -1 || items[2].IsSaved {
		t.Errorf("item 3 overlay = (%d, %v), want (-1, false)", items[2].ViewerVote, items[2].IsSaved)
	}
}

func TestApplyCommentOverlay(t *testing.T) {
	items := []CommentItem{
		{Comment: &models.Comment{ID: 11}},
		{Comment: &models.Comment{ID: 12}},
	}
	ov := &overlay{
		votes: map[int64]int16{12: 1},
		saved: map[int64]bool{11: true},
	}

	applyCommentOverlay(items, ov)

	if items[0].ViewerVote != 0 || !items[0].IsSaved {
		t.Errorf("comment 11 overlay = (%d, %v), want (0, true)", items[0].ViewerVote, items[0].IsSaved)
	}
	if items[1].ViewerVote != 1 || items[1].IsSaved {
		t.Errorf("comment 12 overlay = (%d, %v), want (1, false)", items[1].ViewerVote, items[1].IsSaved)
	}
}

func TestEmptyOverlayDefaults(t *testing.T) {
	items := []Item{{Post: &models.Post{ID: 5}, ViewerVote: 1, IsSaved: true}}
	applyOverlay(items, emptyOverlay())

	if items[0].ViewerVote != 0 || items[0].IsSaved {
		t.Errorf("empty overlay should clear viewer state, got (%d, %v)", items[0].ViewerVote, items[0].IsSaved)
	}
}
