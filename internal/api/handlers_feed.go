package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/driftwood-social/driftwood/internal/apperror"
	"github.com/driftwood-social/driftwood/internal/feed"
	"github.com/driftwood-social/driftwood/internal/ranking"
)

// getFeed handles GET /api/feed
func (r *Router) getFeed(c *gin.Context) {
	scope := feed.ScopeGlobal
	if s := c.Query("scope"); s != "" {
		parsed, err := feed.ParseScope(s)
		if err != nil {
			abortError(c, apperror.Validationf("%v", err))
			return
		}
		scope = parsed
	}

	ordering := ranking.OrderingHot
	if s := c.Query("sort"); s != "" {
		parsed, err := ranking.ParseOrdering(s)
		if err != nil {
			abortError(c, apperror.Validationf("%v", err))
			return
		}
		ordering = parsed
	}

	req := feed.Request{
		Scope:         scope,
		Ordering:      ordering,
		CommunityName: c.Query("community"),
		AuthorName:    c.Query("author"),
		Tag:           c.Query("tag"),
		Query:         c.Query("q"),
		Viewer:        viewer(c),
		Page:          intQuery(c, "page", 1),
		PageSize:      intQuery(c, "page_size", 0),
	}

	page, err := r.composer.Compose(c.Request.Context(), req)
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// getComments handles GET /api/posts/:id/comments
func (r *Router) getComments(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || postID <= 0 {
		abortError(c, apperror.Validationf("malformed post id"))
		return
	}

	ordering := ranking.OrderingTop
	if s := c.Query("sort"); s != "" {
		parsed, err := ranking.ParseOrdering(s)
		if err != nil {
			abortError(c, apperror.Validationf("%v", err))
			return
		}
		ordering = parsed
	}

	page, err := r.composer.ComposeComments(c.Request.Context(), postID, ordering, viewer(c),
		intQuery(c, "page", 1), intQuery(c, "page_size", 0))
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// intQuery parses an integer query parameter with a default.
func intQuery(c *gin.Context, name string, defaultValue int) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return v
}
