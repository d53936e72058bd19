package filter

import (
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/deadline-tracker/internal/event"
)

var now = time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return &t
}

func TestFilter_IsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		want   bool
	}{
		{"empty filter", NewFilter(), true},
		{"deadline from", &Filter{DeadlineFrom: day(2026, 3, 1)}, false},
		{"hide expired", &Filter{HideExpired: true}, false},
		{"source", &Filter{Sources: []string{"Devpost"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.IsEmpty(); got != tt.want {
				t.Errorf("Filter.IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Matches(t *testing.T) {
	devpost := &event.Record{EventName: "Global AI Hackathon", Deadline: "March 12, 2026", Source: event.SourceDevpost}
	luma := &event.Record{EventName: "Go Meetup", Deadline: "April 30, 2026", Source: event.SourceLuma}
	expired := &event.Record{EventName: "Old Jam", Deadline: "2026-03-01", Source: event.SourceUnstop}
	unknown := &event.Record{EventName: "Mystery", Deadline: event.NotSpecified, Source: event.SourceOther}

	tests := []struct {
		name   string
		filter *Filter
		rec    *event.Record
		want   bool
	}{
		{"empty filter matches all", NewFilter(), unknown, true},
		{"name substring", &Filter{Names: []string{"ai hack"}}, devpost, true},
		{"name miss", &Filter{Names: []string{"robotics"}}, devpost, false},
		{"source case-insensitive", &Filter{Sources: []string{"luma"}}, luma, true},
		{"source miss", &Filter{Sources: []string{"MLH"}}, luma, false},
		{"in range", &Filter{DeadlineFrom: day(2026, 3, 1), DeadlineTo: day(2026, 3, 31)}, devpost, true},
		{"to is inclusive", &Filter{DeadlineTo: day(2026, 3, 12)}, devpost, true},
		{"after range", &Filter{DeadlineTo: day(2026, 3, 31)}, luma, false},
		{"range needs a date", &Filter{DeadlineFrom: day(2026, 1, 1)}, unknown, false},
		{"hide expired", &Filter{HideExpired: true}, expired, false},
		{"hide expired keeps unknown", &Filter{HideExpired: true}, unknown, true},
		{"urgent bucket", &Filter{Urgencies: []event.Urgency{event.UrgencyUrgent}}, devpost, true},
		{"urgent bucket miss", &Filter{Urgencies: []event.Urgency{event.UrgencyUrgent}}, luma, false},
		{"all criteria", &Filter{Names: []string{"global"}, Sources: []string{"Devpost"}, HideExpired: true}, devpost, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.rec, now, event.DefaultThresholds()); got != tt.want {
				t.Errorf("Filter.Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Apply(t *testing.T) {
	records := []event.Record{
		{EventName: "A", Deadline: "March 12, 2026", Source: event.SourceDevpost},
		{EventName: "B", Deadline: "2026-03-01", Source: event.SourceDevpost},
		{EventName: "C", Deadline: "April 30, 2026", Source: event.SourceDevpost},
	}

	got := (&Filter{HideExpired: true}).Apply(records, now, event.DefaultThresholds())
	if len(got) != 2 || got[0].EventName != "A" || got[1].EventName != "C" {
		t.Errorf("Apply() = %v, want A and C", got)
	}

	if all := NewFilter().Apply(records, now, event.DefaultThresholds()); len(all) != 3 {
		t.Errorf("empty Apply() returned %d records, want 3", len(all))
	}
}

func TestFilter_String(t *testing.T) {
	if got := NewFilter().String(); got != "No active filters" {
		t.Errorf("String() = %q", got)
	}

	f := &Filter{
		DeadlineFrom: day(2026, 3, 1),
		Sources:      []string{"Devpost"},
		Urgencies:    []event.Urgency{event.UrgencyUrgent, event.UrgencyWarning},
		HideExpired:  true,
	}
	want := "From: Mar 1, 2026 | Sources: Devpost | Urgency: urgent, warning | Hide expired"
	if got := f.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseUrgency(t *testing.T) {
	for _, s := range []string{"expired", "URGENT", " warning ", "good", "unknown"} {
		if _, err := ParseUrgency(s); err != nil {
			t.Errorf("ParseUrgency(%q) error = %v", s, err)
		}
	}
	if _, err := ParseUrgency("soon"); err == nil || !strings.Contains(err.Error(), "invalid urgency") {
		t.Errorf("ParseUrgency(soon) error = %v", err)
	}
}

func TestParseDay(t *testing.T) {
	got, err := ParseDay("2026-03-20")
	if err != nil {
		t.Fatalf("ParseDay() error = %v", err)
	}
	if !got.Equal(*day(2026, 3, 20)) {
		t.Errorf("ParseDay() = %v", got)
	}
	if _, err := ParseDay("20/03/2026"); err == nil {
		t.Error("ParseDay(20/03/2026) should fail")
	}
}
