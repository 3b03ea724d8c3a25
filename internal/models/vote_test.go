package models

import (
	"testing"
)

func TestTargetKindValid(t *testing.T) {
	tests := []struct {
		name     string
		kind     TargetKind
		expected bool
	}{
		{"post", TargetPost, true},
		{"comment", TargetComment, true},
		{"zero", TargetKind(0), false},
		{"out of range", TargetKind(3), false},
		{"negative", TargetKind(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.Valid(); got != tt.expected {
				t.Errorf("Valid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTargetKindString(t *testing.T) {
	tests := []struct {
		name     string
		kind     TargetKind
		expected string
	}{
		{"post", TargetPost, "post"},
		{"comment", TargetComment, "comment"},
		{"unknown", TargetKind(9), "unknown(9)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseTargetKind(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected TargetKind
		wantErr  bool
	}{
		{"post", "post", TargetPost, false},
		{"comment", "comment", TargetComment, false},
		{"empty", "", 0, true},
		{"unknown", "reply", 0, true},
		{"case sensitive", "Post", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTargetKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTargetKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseTargetKind(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTableNames(t *testing.T) {
	tests := []struct {
		name     string
		table    string
		expected string
	}{
		{"votes", Vote{}.TableName(), "drift_votes"},
		{"accounts", Account{}.TableName(), "drift_accounts"},
		{"posts", Post{}.TableName(), "drift_posts"},
		{"comments", Comment{}.TableName(), "drift_comments"},
		{"saved items", SavedItem{}.TableName(), "drift_saved_items"},
		{"notifications", Notification{}.TableName(), "drift_notifs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.table != tt.expected {
				t.Errorf("TableName() = %q, want %q", tt.table, tt.expected)
			}
		})
	}
}
