package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/driftwood-social/driftwood/internal/apperror"
	"github.com/driftwood-social/driftwood/internal/models"
)

// castVoteInput is the POST /api/votes request body.
type castVoteInput struct {
	TargetKind string `json:"target_kind" binding:"required"`
	TargetID   int64  `json:"target_id" binding:"required"`
	Value      *int16 `json:"value" binding:"required"`
}

// castVote handles POST /api/votes. The operation is an idempotent
// upsert: "set my vote on this target to value".
func (r *Router) castVote(c *gin.Context) {
	account := requireViewer(c)
	if account == nil {
		return
	}

	var input castVoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortError(c, apperror.Validationf("invalid vote payload: %v", err))
		return
	}

	kind, err := models.ParseTargetKind(input.TargetKind)
	if err != nil {
		abortError(c, apperror.Validationf("%v", err))
		return
	}

	vote, err := r.ledger.Cast(c.Request.Context(), account.ID, kind, input.TargetID, *input.Value)
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          vote.ID,
		"target_kind": vote.TargetKind.String(),
		"target_id":   vote.TargetID,
		"value":       vote.Value,
		"updated_at":  vote.UpdatedAt,
	})
}

// deleteVote handles DELETE /api/votes/:id
func (r *Router) deleteVote(c *gin.Context) {
	account := requireViewer(c)
	if account == nil {
		return
	}

	voteID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || voteID <= 0 {
		abortError(c, apperror.Validationf("malformed vote id"))
		return
	}

	if err := r.ledger.Delete(c.Request.Context(), voteID, account.ID); err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": voteID})
}
