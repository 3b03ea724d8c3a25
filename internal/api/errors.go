package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/driftwood-social/driftwood/internal/apperror"
)

// statusFor maps the error taxonomy to HTTP status codes.
func statusFor(err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindForbidden:
		return http.StatusForbidden
	case apperror.KindConflict:
		return http.StatusConflict
	case apperror.KindUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// abortError writes a JSON error response with the mapped status.
func abortError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), gin.H{
		"error": err.Error(),
		"kind":  apperror.KindOf(err).String(),
	})
}
