package event

import (
	"time"
)

// Urgency is the display bucket for a record's days left.
type Urgency string

const (
	UrgencyUnknown Urgency = "unknown"
	UrgencyExpired Urgency = "expired"
	UrgencyUrgent  Urgency = "urgent"
	UrgencyWarning Urgency = "warning"
	UrgencyGood    Urgency = "good"
)

// Thresholds bound the urgent and warning buckets, in days (inclusive).
type Thresholds struct {
	UrgentDays  int `yaml:"urgent_days"`
	WarningDays int `yaml:"warning_days"`
}

// DefaultThresholds returns the 3/7 day policy.
func DefaultThresholds() Thresholds {
	return Thresholds{UrgentDays: 3, WarningDays: 7}
}

// DaysLeft returns ceil((deadline - now) / 1 day). Deadlines are local
// midnight, so this is the number of calendar days from now's date to the
// deadline. The second result is false when the deadline is a sentinel or
// cannot be parsed.
func DaysLeft(deadline string, now time.Time) (int, bool) {
	if IsSentinel(deadline) {
		return 0, false
	}
	parsed := ParseDate(deadline)
	if parsed.IsZero() {
		return 0, false
	}
	return calendarDays(StartOfDay(now), parsed), true
}

// calendarDays counts whole days between two dates. It works on Unix seconds
// of the dates in UTC, so it neither saturates like time.Duration nor drifts
// across DST changes.
func calendarDays(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int((t.Unix() - f.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// DaysLeft is DaysLeft applied to the record's deadline.
func (r *Record) DaysLeft(now time.Time) (int, bool) {
	return DaysLeft(r.Deadline, now)
}

// Bucket maps a days-left value to an urgency bucket.
func (th Thresholds) Bucket(days int, known bool) Urgency {
	switch {
	case !known:
		return UrgencyUnknown
	case days < 0:
		return UrgencyExpired
	case days <= th.UrgentDays:
		return UrgencyUrgent
	case days <= th.WarningDays:
		return UrgencyWarning
	default:
		return UrgencyGood
	}
}

// UrgencyBucket buckets days left with the default thresholds.
func UrgencyBucket(days int, known bool) Urgency {
	return DefaultThresholds().Bucket(days, known)
}

// IsExpired reports whether the record's deadline has passed.
// Returns false if the deadline is unknown.
func (r *Record) IsExpired(now time.Time) bool {
	days, ok := r.DaysLeft(now)
	return ok && days < 0
}
