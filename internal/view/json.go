package view

import (
	"encoding/json"
	"io"

	"github.com/pfrederiksen/deadline-tracker/internal/event"
	"github.com/pfrederiksen/deadline-tracker/internal/tracker"
)

// JSONView renders machine-readable output.
type JSONView struct {
	opts Options
}

type jsonEvent struct {
	event.Record
	DaysLeft *int          `json:"daysLeft"`
	Urgency  event.Urgency `json:"urgency"`
}

type jsonStats struct {
	Total             int      `json:"total"`
	DistinctPlatforms int      `json:"distinctPlatforms"`
	RegisteredToday   int      `json:"registeredToday"`
	AvgDaysLeft       *float64 `json:"avgDaysLeft"`
}

// RenderEvents writes the records, each with its computed days left and
// urgency, as a JSON array.
func (v *JSONView) RenderEvents(w io.Writer, records []event.Record) error {
	out := make([]jsonEvent, 0, len(records))
	for _, rec := range records {
		item := jsonEvent{Record: rec}
		days, known := rec.DaysLeft(v.opts.Now)
		if known {
			item.DaysLeft = &days
		}
		item.Urgency = v.opts.Thresholds.Bucket(days, known)
		out = append(out, item)
	}
	return writeJSON(w, out)
}

// RenderStats writes the aggregate figures as a JSON object. An unknown
// average is null.
func (v *JSONView) RenderStats(w io.Writer, stats tracker.Stats) error {
	return writeJSON(w, jsonStats{
		Total:             stats.Total,
		DistinctPlatforms: stats.DistinctPlatforms,
		RegisteredToday:   stats.RegisteredToday,
		AvgDaysLeft:       stats.AvgDaysLeft,
	})
}

// ConfirmDelete asks for confirmation on the prompt writer, keeping stdout
// clean for JSON.
func (v *JSONView) ConfirmDelete(rec event.Record) (bool, error) {
	return confirm(v.opts, rec)
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
