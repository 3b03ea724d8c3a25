package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/driftwood-social/driftwood/internal/apperror"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", apperror.Validationf("bad value"), http.StatusBadRequest},
		{"not found", apperror.NotFoundf("post 7"), http.StatusNotFound},
		{"forbidden", apperror.Forbiddenf("private"), http.StatusForbidden},
		{"self vote", apperror.ErrSelfVote, http.StatusForbidden},
		{"conflict", apperror.Conflictf(errors.New("deadlock"), "upsert"), http.StatusConflict},
		{"unavailable", apperror.Unavailablef(errors.New("down"), "store"), http.StatusServiceUnavailable},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.expected {
				t.Errorf("statusFor() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestAbortError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	abortError(c, apperror.NotFoundf("post 42 not found"))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"kind":"not_found"`) || !strings.Contains(body, "post 42 not found") {
		t.Errorf("unexpected body: %s", body)
	}
}
