package vote

import (
	"context"
	"testing"

	"github.com/driftwood-social/driftwood/internal/apperror"
	"github.com/driftwood-social/driftwood/internal/models"
)

func TestCastRejectsInvalidInput(t *testing.T) {
	// Validation happens before any store access, so a bare ledger is
	// enough to exercise it.
	l := NewLedger(nil, nil, nil, 0)

	tests := []struct {
		name     string
		kind     models.TargetKind
		targetID int64
		value    int16
	}{
		{"value too high", models.TargetPost, 1, 2},
		{"value too low", models.TargetPost, 1, -2},
		{"unknown kind", models.TargetKind(0), 1, 1},
		{"out of range kind", models.TargetKind(7), 1, 1},
		{"zero target id", models.TargetPost, 0, 1},
		{"negative target id", models.TargetComment, -5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Cast(context.Background(), 42, tt.kind, tt.targetID, tt.value)
			if err == nil {
				t.Fatal("Cast() expected error")
			}
			if apperror.KindOf(err) != apperror.KindValidation {
				t.Errorf("Cast() error kind = %v, want validation", apperror.KindOf(err))
			}
		})
	}
}
