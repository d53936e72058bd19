package tracker

import (
	"fmt"
	"time"

	"github.com/pfrederiksen/deadline-tracker/internal/event"
)

// Stats are the aggregate figures shown above the event list.
type Stats struct {
	Total             int
	DistinctPlatforms int
	RegisteredToday   int
	// AvgDaysLeft averages the known, non-negative days left. Nil when no
	// record qualifies.
	AvgDaysLeft *float64
}

// AvgDaysLeftDisplay renders AvgDaysLeft with one decimal, or "-" when unknown.
func (s Stats) AvgDaysLeftDisplay() string {
	if s.AvgDaysLeft == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *s.AvgDaysLeft)
}

// ComputeStats aggregates records as of now.
func ComputeStats(records []event.Record, now time.Time) Stats {
	stats := Stats{Total: len(records)}

	today := event.FormatRegisteredDate(now)
	platforms := make(map[event.Source]struct{})
	sum, active := 0, 0

	for i := range records {
		rec := &records[i]
		platforms[rec.Source] = struct{}{}
		if rec.RegisteredDate == today {
			stats.RegisteredToday++
		}
		if days, ok := rec.DaysLeft(now); ok && days >= 0 {
			sum += days
			active++
		}
	}

	stats.DistinctPlatforms = len(platforms)
	if active > 0 {
		avg := float64(sum) / float64(active)
		stats.AvgDaysLeft = &avg
	}

	return stats
}
