package event

import (
	"testing"
	"time"
)

func TestDaysLeft(t *testing.T) {
	// 3 PM local on Mar 10 2026
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)

	tests := []struct {
		name      string
		deadline  string
		want      int
		wantKnown bool
	}{
		{
			name:      "Tomorrow",
			deadline:  "11 March 2026",
			want:      1,
			wantKnown: true,
		},
		{
			name:      "Today is zero",
			deadline:  "2026-03-10",
			want:      0,
			wantKnown: true,
		},
		{
			name:      "Yesterday is negative",
			deadline:  "09/03/2026",
			want:      -1,
			wantKnown: true,
		},
		{
			name:      "Next month",
			deadline:  "Apr 10, 2026",
			want:      31,
			wantKnown: true,
		},
		{
			name:     "Not specified sentinel",
			deadline: NotSpecified,
		},
		{
			name:     "Not found sentinel",
			deadline: NotFound,
		},
		{
			name:     "Unparseable",
			deadline: "soon-ish",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known := DaysLeft(tt.deadline, now)
			if known != tt.wantKnown {
				t.Fatalf("DaysLeft(%q) known = %v, want %v", tt.deadline, known, tt.wantKnown)
			}
			if known && got != tt.want {
				t.Errorf("DaysLeft(%q) = %d, want %d", tt.deadline, got, tt.want)
			}
		})
	}
}

func TestDaysLeft_FarFuture(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)

	got, known := DaysLeft("01/01/9999", now)
	if !known {
		t.Fatal("DaysLeft(01/01/9999) unknown")
	}

	// 2026-03-10 to 9999-01-01: 7973 years minus 68 days, 1933 of them leap years.
	want := 7973*365 + 1933 - 68
	if got != want {
		t.Errorf("DaysLeft(01/01/9999) = %d, want %d", got, want)
	}
}

func TestDaysLeft_DecreasesOnePerDay(t *testing.T) {
	deadline := "20 April 2026"
	start := time.Date(2026, 4, 1, 9, 30, 0, 0, time.Local)

	prev, ok := DaysLeft(deadline, start)
	if !ok {
		t.Fatalf("DaysLeft(%q) unknown", deadline)
	}
	again, _ := DaysLeft(deadline, start)
	if again != prev {
		t.Fatalf("DaysLeft not idempotent: %d then %d", prev, again)
	}

	for i := 1; i <= 25; i++ {
		now := start.AddDate(0, 0, i)
		got, _ := DaysLeft(deadline, now)
		if got != prev-1 {
			t.Fatalf("day %d: DaysLeft = %d, want %d", i, got, prev-1)
		}
		prev = got
	}
}

func TestThresholds_Bucket(t *testing.T) {
	tests := []struct {
		name  string
		days  int
		known bool
		want  Urgency
	}{
		{"unknown", 0, false, UrgencyUnknown},
		{"expired", -1, true, UrgencyExpired},
		{"due today", 0, true, UrgencyUrgent},
		{"three days", 3, true, UrgencyUrgent},
		{"four days", 4, true, UrgencyWarning},
		{"seven days", 7, true, UrgencyWarning},
		{"eight days", 8, true, UrgencyGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UrgencyBucket(tt.days, tt.known); got != tt.want {
				t.Errorf("UrgencyBucket(%d, %v) = %v, want %v", tt.days, tt.known, got, tt.want)
			}
		})
	}

	custom := Thresholds{UrgentDays: 1, WarningDays: 2}
	if got := custom.Bucket(2, true); got != UrgencyWarning {
		t.Errorf("custom.Bucket(2) = %v, want %v", got, UrgencyWarning)
	}
}

func TestRecord_IsExpired(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		deadline string
		want     bool
	}{
		{"past", "2026-05-01", true},
		{"future", "2026-07-01", false},
		{"unknown", NotSpecified, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Record{Deadline: tt.deadline}
			if got := r.IsExpired(now); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}
