package feed

import (
	"testing"
	"time"

	"github.com/driftwood-social/driftwood/internal/ranking"
)

func TestNormalizePaging(t *testing.T) {
	c := &Composer{defaultPageSize: 25, maxPageSize: 100}

	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"defaults", 0, 0, 1, 25},
		{"negative page", -3, 10, 1, 10},
		{"within bounds", 2, 50, 2, 50},
		{"oversized page clamps", 1, 500, 1, 100},
		{"negative size defaults", 4, -1, 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := c.normalizePaging(tt.page, tt.pageSize)
			if page != tt.wantPage || pageSize != tt.wantPageSize {
				t.Errorf("normalizePaging(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.pageSize, page, pageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestCacheTTL(t *testing.T) {
	tests := []struct {
		name     string
		ordering ranking.Ordering
		expected time.Duration
	}{
		{"new refreshes fast", ranking.OrderingNew, 3 * time.Second},
		{"hot tolerates staleness", ranking.OrderingHot, 300 * time.Second},
		{"trending tolerates staleness", ranking.OrderingTrending, 300 * time.Second},
		{"top", ranking.OrderingTop, 30 * time.Second},
		{"controversial default", ranking.OrderingControversial, 60 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cacheTTL(tt.ordering); got != tt.expected {
				t.Errorf("cacheTTL(%q) = %v, want %v", tt.ordering, got, tt.expected)
			}
		})
	}
}
