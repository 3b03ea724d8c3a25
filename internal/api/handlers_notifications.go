package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/driftwood-social/driftwood/internal/apperror"
	"github.com/driftwood-social/driftwood/internal/db"
)

// listNotifications handles GET /api/notifications, keyset-paginated
// by last_id.
func (r *Router) listNotifications(c *gin.Context) {
	account := requireViewer(c)
	if account == nil {
		return
	}

	lastID := int64(intQuery(c, "last_id", 0))
	limit := intQuery(c, "limit", 50)
	if limit > 100 {
		limit = 100
	}

	notifs, err := db.NewNotificationRepository(r.repo).GetByDstID(c.Request.Context(), account.ID, lastID, limit)
	if err != nil {
		abortError(c, apperror.Unavailablef(err, "list notifications"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifs})
}

// unreadNotifications handles GET /api/notifications/unread
func (r *Router) unreadNotifications(c *gin.Context) {
	account := requireViewer(c)
	if account == nil {
		return
	}

	count, err := db.NewNotificationRepository(r.repo).UnreadCount(c.Request.Context(), account)
	if err != nil {
		abortError(c, apperror.Unavailablef(err, "count unread notifications"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"unread":   count,
		"lastread": account.LastreadAt,
	})
}

// markNotificationsRead handles POST /api/notifications/read
func (r *Router) markNotificationsRead(c *gin.Context) {
	account := requireViewer(c)
	if account == nil {
		return
	}

	now := time.Now().UTC()
	if err := r.notifier.SetLastRead(c.Request.Context(), account.ID, now); err != nil {
		abortError(c, apperror.Unavailablef(err, "mark notifications read"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"lastread": now})
}
