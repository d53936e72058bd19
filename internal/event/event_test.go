package event

import (
	"strings"
	"testing"
	"time"
)

func TestNewID(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seen := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		id := NewID(now)
		if !strings.HasPrefix(id, "event_1772366400000_") {
			t.Fatalf("NewID() = %q, want time component prefix", id)
		}
		if parts := strings.Split(id, "_"); len(parts) != 4 {
			t.Fatalf("NewID() = %q, want 4 underscore-separated parts", id)
		}
		if seen[id] {
			t.Fatalf("NewID() produced duplicate %q for the same instant", id)
		}
		seen[id] = true
	}
}

func TestNewLegacyID(t *testing.T) {
	id := NewLegacyID(time.UnixMilli(42))
	if !strings.HasPrefix(id, "event_42_") {
		t.Errorf("NewLegacyID() = %q, want prefix event_42_", id)
	}
	if parts := strings.Split(id, "_"); len(parts) != 3 || len(parts[2]) != 9 {
		t.Errorf("NewLegacyID() = %q, want event_<ms>_<9 chars>", id)
	}
}

func TestIsSentinel(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{NotSpecified, true},
		{NotFound, true},
		{"", true},
		{"  ", true},
		{"March 5, 2026", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := IsSentinel(tt.value); got != tt.want {
				t.Errorf("IsSentinel(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestRecord_CapturedAt(t *testing.T) {
	captured := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r := &Record{Timestamp: captured.UnixMilli()}

	if !r.CapturedAt().Equal(captured) {
		t.Errorf("CapturedAt() = %v, want %v", r.CapturedAt(), captured)
	}
}
