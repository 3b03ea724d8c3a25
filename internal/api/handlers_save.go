package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/driftwood-social/driftwood/internal/apperror"
	"github.com/driftwood-social/driftwood/internal/db"
	"github.com/driftwood-social/driftwood/internal/models"
)

// savedItemInput identifies a save/unsave target.
type savedItemInput struct {
	TargetKind string `json:"target_kind" binding:"required"`
	TargetID   int64  `json:"target_id" binding:"required"`
}

func (r *Router) parseSavedInput(c *gin.Context) (*models.Account, models.TargetKind, int64, bool) {
	account := requireViewer(c)
	if account == nil {
		return nil, 0, 0, false
	}

	var input savedItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortError(c, apperror.Validationf("invalid saved-item payload: %v", err))
		return nil, 0, 0, false
	}

	kind, err := models.ParseTargetKind(input.TargetKind)
	if err != nil {
		abortError(c, apperror.Validationf("%v", err))
		return nil, 0, 0, false
	}
	if input.TargetID <= 0 {
		abortError(c, apperror.Validationf("invalid target id %d", input.TargetID))
		return nil, 0, 0, false
	}

	return account, kind, input.TargetID, true
}

// saveItem handles PUT /api/saved; saving twice is a no-op.
func (r *Router) saveItem(c *gin.Context) {
	account, kind, targetID, ok := r.parseSavedInput(c)
	if !ok {
		return
	}

	item := &models.SavedItem{
		AccountID:  account.ID,
		TargetKind: kind,
		TargetID:   targetID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.NewSavedItemRepository(r.repo).Save(c.Request.Context(), item); err != nil {
		abortError(c, apperror.Unavailablef(err, "save item"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": true})
}

// unsaveItem handles DELETE /api/saved
func (r *Router) unsaveItem(c *gin.Context) {
	account, kind, targetID, ok := r.parseSavedInput(c)
	if !ok {
		return
	}

	if err := db.NewSavedItemRepository(r.repo).Unsave(c.Request.Context(), account.ID, kind, targetID); err != nil {
		abortError(c, apperror.Unavailablef(err, "unsave item"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": false})
}
