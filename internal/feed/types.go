package feed

import (
	"fmt"

	"github.com/driftwood-social/driftwood/internal/models"
	"github.com/driftwood-social/driftwood/internal/ranking"
)

// Scope selects the candidate predicate for a feed.
type Scope string

const (
	ScopeGlobal    Scope = "global"
	ScopeCommunity Scope = "community"
	ScopeAuthor    Scope = "author"
	ScopeHome      Scope = "home" // viewer's subscribed communities
	ScopeTag       Scope = "tag"
	ScopeSearch    Scope = "search"
)

// ParseScope validates and returns a scope from its wire form.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeGlobal, ScopeCommunity, ScopeAuthor, ScopeHome, ScopeTag, ScopeSearch:
		return Scope(s), nil
	}
	return "", fmt.Errorf("invalid scope: %q", s)
}

// Request describes one feed composition.
type Request struct {
	Scope    Scope
	Ordering ranking.Ordering

	// Scope arguments; which one applies depends on Scope.
	CommunityName string
	AuthorName    string
	Tag           string
	Query         string

	// Viewer is nil for anonymous requests. NSFW inclusion follows the
	// viewer's stored preference.
	Viewer *models.Account

	Page     int
	PageSize int
}

// Item is a read-only projection of a post plus the viewer overlay.
// Constructed per request, never persisted.
type Item struct {
	Post       *models.Post    `json:"post"`
	Author     *models.Account `json:"author,omitempty"`
	ViewerVote int16           `json:"viewer_vote"`
	IsSaved    bool            `json:"is_saved"`
}

// CommentItem is the comment-listing analogue of Item.
type CommentItem struct {
	Comment    *models.Comment `json:"comment"`
	Author     *models.Account `json:"author,omitempty"`
	ViewerVote int16           `json:"viewer_vote"`
	IsSaved    bool            `json:"is_saved"`
}

// Pagination carries page metadata for a composed feed.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// Page is one composed page of feed results.
type Page struct {
	Items      []Item     `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// CommentPage is one composed page of comment results.
type CommentPage struct {
	Items      []CommentItem `json:"items"`
	Pagination Pagination    `json:"pagination"`
}

// TotalPages computes the page count for a result set. Zero results
// mean zero pages.
func TotalPages(totalCount int64, pageSize int) int {
	if pageSize <= 0 || totalCount <= 0 {
		return 0
	}
	return int((totalCount + int64(pageSize) - 1) / int64(pageSize))
}
