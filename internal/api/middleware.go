package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/driftwood-social/driftwood/internal/cache"
	"github.com/driftwood-social/driftwood/internal/db"
	"github.com/driftwood-social/driftwood/internal/models"
)

// viewerKey is the gin context key holding the resolved viewer account.
const viewerKey = "viewer"

// identityMiddleware resolves the viewer from the X-Account-ID header.
// Authentication itself happens at the upstream gateway; by the time a
// request reaches this service the header is trusted. Requests without
// it proceed anonymously.
func (r *Router) identityMiddleware() gin.HandlerFunc {
	accountRepo := db.NewAccountRepository(r.repo)

	return func(c *gin.Context) {
		raw := c.GetHeader("X-Account-ID")
		if raw == "" {
			c.Next()
			return
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed X-Account-ID"})
			return
		}

		account, err := accountRepo.GetByID(c.Request.Context(), id)
		if err != nil {
			r.logger.Error("Failed to resolve viewer", zap.Int64("account_id", id), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "identity lookup failed"})
			return
		}
		if account == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "unknown account"})
			return
		}

		c.Set(viewerKey, account)
		c.Next()
	}
}

// viewer returns the resolved account, nil for anonymous requests.
func viewer(c *gin.Context) *models.Account {
	if v, ok := c.Get(viewerKey); ok {
		if account, ok := v.(*models.Account); ok {
			return account
		}
	}
	return nil
}

// requireViewer rejects anonymous requests.
func requireViewer(c *gin.Context) *models.Account {
	account := viewer(c)
	if account == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return nil
	}
	return account
}

// rateLimitMiddleware is a redis fixed-window admission check on vote
// casting. An unreachable limiter fails open: losing rate limiting is
// better than losing votes.
func (r *Router) rateLimitMiddleware(perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.cache == nil || perMinute <= 0 {
			c.Next()
			return
		}

		account := viewer(c)
		if account == nil {
			c.Next()
			return
		}

		window := time.Now().UTC().Unix() / 60
		key := fmt.Sprintf("ratelimit:vote:%d:%d", account.ID, window)
		count, err := r.cache.Incr(c.Request.Context(), key, time.Minute)
		if err != nil {
			if err != cache.ErrCacheDisabled {
				r.logger.Warn("Rate limiter unavailable, failing open", zap.Error(err))
			}
			c.Next()
			return
		}

		if count > int64(perMinute) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "vote rate limit exceeded"})
			return
		}

		c.Next()
	}
}
