package notify

import (
	"testing"
)

func TestShouldNotify(t *testing.T) {
	tests := []struct {
		name     string
		prev     int16
		next     int16
		expected bool
	}{
		{"first upvote", 0, 1, true},
		{"first downvote", 0, -1, true},
		{"flip up to down", 1, -1, true},
		{"flip down to up", -1, 1, true},
		{"repeat upvote", 1, 1, false},
		{"repeat downvote", -1, -1, false},
		{"retract upvote", 1, 0, false},
		{"retract downvote", -1, 0, false},
		{"retract nothing", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldNotify(tt.prev, tt.next); got != tt.expected {
				t.Errorf("ShouldNotify(%d, %d) = %v, want %v", tt.prev, tt.next, got, tt.expected)
			}
		})
	}
}
