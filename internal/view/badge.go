package view

import (
	"fmt"
	"time"

	"github.com/pfrederiksen/deadline-tracker/internal/event"
)

// Badge is the days-left indicator shown next to a deadline.
type Badge struct {
	Label   string
	Title   string
	Urgency event.Urgency
}

// DaysLeftBadge builds the badge for a days-left value.
func DaysLeftBadge(days int, known bool, th event.Thresholds) Badge {
	urgency := th.Bucket(days, known)

	switch {
	case urgency == event.UrgencyUnknown:
		return Badge{Label: "❓", Urgency: urgency}
	case urgency == event.UrgencyExpired:
		return Badge{
			Label:   "⏰ Expired",
			Title:   fmt.Sprintf("Deadline passed %d days ago", -days),
			Urgency: urgency,
		}
	case days == 0:
		return Badge{Label: "🔥 Today!", Title: "Due today!", Urgency: urgency}
	case urgency == event.UrgencyUrgent:
		return Badge{
			Label:   fmt.Sprintf("⚠️ %dd", days),
			Title:   fmt.Sprintf("Only %d days left!", days),
			Urgency: urgency,
		}
	case urgency == event.UrgencyWarning:
		return Badge{
			Label:   fmt.Sprintf("📅 %dd", days),
			Title:   fmt.Sprintf("%d days left", days),
			Urgency: urgency,
		}
	default:
		return Badge{
			Label:   fmt.Sprintf("✅ %dd", days),
			Title:   fmt.Sprintf("%d days left", days),
			Urgency: urgency,
		}
	}
}

// DeadlineTooltip is the hover text for a deadline.
func DeadlineTooltip(deadline string, days int, known bool) string {
	if !known {
		return "Deadline: " + deadline
	}
	if days >= 0 {
		return fmt.Sprintf("Deadline: %s (%d days left)", deadline, days)
	}
	return fmt.Sprintf("Deadline: %s (Expired)", deadline)
}

// DateTimeHeader formats the current time the way the list header shows it,
// e.g. "Fri, Oct 16, 2026, 03:04:05 PM".
func DateTimeHeader(now time.Time) string {
	return now.Format("Mon, Jan 2, 2006, 03:04:05 PM")
}

// truncate shortens s to max runes and appends "...".
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
