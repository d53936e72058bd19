package extract

import (
	"strings"
	"testing"

	"github.com/pfrederiksen/deadline-tracker/internal/event"
)

func TestLocateDeadline(t *testing.T) {
	tests := []struct {
		name      string
		bodyText  string
		fragments []string
		want      string
	}{
		{
			name:     "Labeled deadline stops at sentence end",
			bodyText: "Submission deadline: March 5, 2026. Good luck!",
			want:     "March 5, 2026",
		},
		{
			name:     "Registration closes label",
			bodyText: "Registration closes: 12/01/2026\nSee you there",
			want:     "12/01/2026",
		},
		{
			name:     "Leading connector is stripped",
			bodyText: "Apply by: before 20 Jan 2026!",
			want:     "20 Jan 2026",
		},
		{
			name:     "By-date phrase",
			bodyText: "Hurry, submit by 15 March 2026 to win",
			want:     "15 March 2026",
		},
		{
			name:     "Label without a date is skipped",
			bodyText: "Deadline: TBA. Event ends on 2026-04-01. Stay tuned",
			want:     "2026-04-01",
		},
		{
			name:     "Time of day phrase",
			bodyText: "Submissions close at 11:59 PM on Friday",
			want:     "11:59 PM on Friday",
		},
		{
			name:      "Label found inside a fragment",
			bodyText:  "Welcome hackers",
			fragments: []string{"Last date: 30 Nov 2026"},
			want:      "30 Nov 2026",
		},
		{
			name:      "First date-like fragment",
			bodyText:  "Welcome hackers",
			fragments: []string{"Starts soon", "Feb 20"},
			want:      "Feb 20",
		},
		{
			name:     "Bare ISO date in body",
			bodyText: "The final showcase happens on 2026/05/30 at the hub",
			want:     "2026/05/30",
		},
		{
			name:     "No digits and no months",
			bodyText: "Join us for a fun weekend of hacking with friends",
			want:     event.NotSpecified,
		},
		{
			name:     "No-break spaces in a bare labeled date",
			bodyText: "Register before 15\u00a0Dec\u00a02025 now",
			want:     "15 Dec 2025",
		},
		{
			name:      "No-break spaces in a fragment",
			bodyText:  "Welcome",
			fragments: []string{"Closes\u00a020\u00a0Jan\u00a02026"},
			want:      "20 Jan 2026",
		},
		{
			name:      "Empty body ignores fragments",
			bodyText:  "",
			fragments: []string{"Deadline: 1 Jan 2027"},
			want:      event.NotSpecified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LocateDeadline(tt.bodyText, tt.fragments)
			if got != tt.want {
				t.Errorf("LocateDeadline(%q, %q) = %q, want %q", tt.bodyText, tt.fragments, got, tt.want)
			}
		})
	}
}

func TestLocateDeadline_FragmentSpacesNormalized(t *testing.T) {
	got := LocateDeadline("Welcome hackers", []string{"Kickoff\u00a006/03/2026"})
	if got != "Kickoff 06/03/2026" {
		t.Fatalf("LocateDeadline() = %q, want %q", got, "Kickoff 06/03/2026")
	}
	if event.ParseDate(got).IsZero() {
		t.Errorf("ParseDate(%q) returned zero time", got)
	}
}

func TestLocateDeadline_TruncatesFragment(t *testing.T) {
	fragment := "Round 2 " + strings.Repeat("x", 200)

	got := LocateDeadline("Welcome hackers", []string{fragment})
	if len([]rune(got)) != maxFragmentLen {
		t.Errorf("LocateDeadline() length = %d, want %d", len([]rune(got)), maxFragmentLen)
	}
	if !strings.HasPrefix(got, "Round 2") {
		t.Errorf("LocateDeadline() = %q, want fragment prefix", got)
	}
}
