package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/deadline-tracker/internal/event"
)

// Filter represents record filtering criteria
type Filter struct {
	// Deadline range filtering. Records whose deadline does not parse never
	// match a range.
	DeadlineFrom *time.Time `json:"deadline_from,omitempty"`
	DeadlineTo   *time.Time `json:"deadline_to,omitempty"`

	// Event name filtering (case-insensitive substring match)
	Names []string `json:"names,omitempty"`

	// Source filtering (case-insensitive exact match)
	Sources []string `json:"sources,omitempty"`

	// Urgency bucket filtering
	Urgencies []event.Urgency `json:"urgencies,omitempty"`

	HideExpired bool `json:"hide_expired,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
func NewFilter() *Filter {
	return &Filter{}
}

// IsEmpty checks if the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return f.DeadlineFrom == nil &&
		f.DeadlineTo == nil &&
		len(f.Names) == 0 &&
		len(f.Sources) == 0 &&
		len(f.Urgencies) == 0 &&
		!f.HideExpired
}

// Matches checks if a record matches all active filter criteria as of now.
// An empty filter matches all records.
func (f *Filter) Matches(rec *event.Record, now time.Time, th event.Thresholds) bool {
	if f.IsEmpty() {
		return true
	}

	if f.DeadlineFrom != nil || f.DeadlineTo != nil {
		deadline := event.ParseDate(rec.Deadline)
		if deadline.IsZero() {
			return false
		}
		if f.DeadlineFrom != nil && deadline.Before(event.StartOfDay(*f.DeadlineFrom)) {
			return false
		}
		if f.DeadlineTo != nil && deadline.After(event.StartOfDay(*f.DeadlineTo)) {
			return false
		}
	}

	if len(f.Names) > 0 {
		matched := false
		nameLower := strings.ToLower(rec.EventName)
		for _, name := range f.Names {
			if strings.Contains(nameLower, strings.ToLower(name)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(f.Sources) > 0 {
		matched := false
		for _, source := range f.Sources {
			if strings.EqualFold(string(rec.Source), source) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	days, known := rec.DaysLeft(now)
	bucket := th.Bucket(days, known)

	if f.HideExpired && bucket == event.UrgencyExpired {
		return false
	}

	if len(f.Urgencies) > 0 {
		matched := false
		for _, u := range f.Urgencies {
			if u == bucket {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Apply returns the records that match, preserving order. An empty filter
// returns records unchanged.
func (f *Filter) Apply(records []event.Record, now time.Time, th event.Thresholds) []event.Record {
	if f.IsEmpty() {
		return records
	}

	filtered := make([]event.Record, 0, len(records))
	for i := range records {
		if f.Matches(&records[i], now, th) {
			filtered = append(filtered, records[i])
		}
	}

	return filtered
}

// String returns a human-readable description of the active filter criteria.
// Format: "From: Mar 1, 2026 | To: Mar 31, 2026 | Sources: Devpost | Hide expired"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if f.DeadlineFrom != nil {
		parts = append(parts, fmt.Sprintf("From: %s", f.DeadlineFrom.Format("Jan 2, 2006")))
	}

	if f.DeadlineTo != nil {
		parts = append(parts, fmt.Sprintf("To: %s", f.DeadlineTo.Format("Jan 2, 2006")))
	}

	if len(f.Names) > 0 {
		parts = append(parts, fmt.Sprintf("Names: %s", strings.Join(f.Names, ", ")))
	}

	if len(f.Sources) > 0 {
		parts = append(parts, fmt.Sprintf("Sources: %s", strings.Join(f.Sources, ", ")))
	}

	if len(f.Urgencies) > 0 {
		urgencies := make([]string, len(f.Urgencies))
		for i, u := range f.Urgencies {
			urgencies[i] = string(u)
		}
		parts = append(parts, fmt.Sprintf("Urgency: %s", strings.Join(urgencies, ", ")))
	}

	if f.HideExpired {
		parts = append(parts, "Hide expired")
	}

	return strings.Join(parts, " | ")
}

// ParseUrgency validates an urgency bucket name.
func ParseUrgency(s string) (event.Urgency, error) {
	u := event.Urgency(strings.ToLower(strings.TrimSpace(s)))
	switch u {
	case event.UrgencyUnknown, event.UrgencyExpired, event.UrgencyUrgent, event.UrgencyWarning, event.UrgencyGood:
		return u, nil
	}
	return "", fmt.Errorf("invalid urgency: %s (must be expired, urgent, warning, good or unknown)", s)
}

// ParseDay parses a YYYY-MM-DD flag value as a local date.
func ParseDay(s string) (*time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return &t, nil
}
