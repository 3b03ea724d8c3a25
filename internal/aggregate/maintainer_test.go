package aggregate

import (
	"context"
	"testing"

	"github.com/driftwood-social/driftwood/internal/apperror"
	"github.com/driftwood-social/driftwood/internal/models"
)

func TestRecomputeRejectsInvalidKind(t *testing.T) {
	m := NewMaintainer(nil, 3)

	tests := []struct {
		name string
		kind models.TargetKind
	}{
		{"zero kind", models.TargetKind(0)},
		{"out of range", models.TargetKind(9)},
		{"negative", models.TargetKind(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Recompute(context.Background(), tt.kind, 1)
			if err == nil {
				t.Fatal("Recompute() expected error")
			}
			if apperror.KindOf(err) != apperror.KindValidation {
				t.Errorf("Recompute() error kind = %v, want validation", apperror.KindOf(err))
			}
		})
	}
}
