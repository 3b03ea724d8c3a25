package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		expected string
	}{
		{"validation", KindValidation, "validation"},
		{"not_found", KindNotFound, "not_found"},
		{"forbidden", KindForbidden, "forbidden"},
		{"conflict", KindConflict, "conflict"},
		{"unavailable", KindUnavailable, "unavailable"},
		{"unknown", KindUnknown, "unknown"},
		{"out of range", Kind(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{"validation error", Validationf("bad value"), KindValidation},
		{"not found error", NotFoundf("post %d", 7), KindNotFound},
		{"forbidden error", Forbiddenf("locked"), KindForbidden},
		{"conflict error", Conflictf(errors.New("deadlock"), "upsert"), KindConflict},
		{"unavailable error", Unavailablef(errors.New("down"), "store"), KindUnavailable},
		{"wrapped error", fmt.Errorf("outer: %w", NotFoundf("gone")), KindNotFound},
		{"plain error", errors.New("plain"), KindUnknown},
		{"nil error", nil, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.expected {
				t.Errorf("KindOf() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	bare := Validationf("value out of range")
	if bare.Error() != "validation: value out of range" {
		t.Errorf("Error() = %q", bare.Error())
	}

	wrapped := Unavailablef(errors.New("dial tcp refused"), "vote store unreachable")
	want := "unavailable: vote store unreachable: dial tcp refused"
	if wrapped.Error() != want {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), want)
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Conflictf(cause, "tally failed")
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestErrSelfVote(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"sentinel itself", ErrSelfVote, true},
		{"wrapped sentinel", fmt.Errorf("cast: %w", ErrSelfVote), true},
		{"other forbidden", Forbiddenf("community is private"), false},
		{"not found", NotFoundf("post"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, ErrSelfVote); got != tt.expected {
				t.Errorf("errors.Is(err, ErrSelfVote) = %v, want %v", got, tt.expected)
			}
		})
	}

	if KindOf(ErrSelfVote) != KindForbidden {
		t.Error("ErrSelfVote should map to the forbidden kind")
	}
}

func TestBareKindMatch(t *testing.T) {
	// A target with kind only matches any error of that kind.
	err := Forbiddenf("community is private")
	if !errors.Is(err, &Error{Kind: KindForbidden}) {
		t.Error("expected bare-kind target to match")
	}
	if errors.Is(err, &Error{Kind: KindNotFound}) {
		t.Error("expected mismatched kind not to match")
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"conflict retries", Conflictf(errors.New("serialization"), "upsert"), true},
		{"unavailable does not", Unavailablef(errors.New("down"), "store"), false},
		{"validation does not", Validationf("bad"), false},
		{"plain does not", errors.New("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Retryable(tt.err); got != tt.expected {
				t.Errorf("Retryable() = %v, want %v", got, tt.expected)
			}
		})
	}
}
