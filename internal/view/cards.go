package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/deadline-tracker/internal/event"
	"github.com/pfrederiksen/deadline-tracker/internal/tracker"
)

// CardView renders each event as a block of labeled lines.
type CardView struct {
	opts Options
}

// RenderEvents writes one card per record.
func (v *CardView) RenderEvents(w io.Writer, records []event.Record) error {
	var out strings.Builder

	out.WriteString(fmt.Sprintf("🕒 %s\n", DateTimeHeader(v.opts.Now)))

	if len(records) == 0 {
		out.WriteString("\n" + emptyMessage + "\n")
		_, err := io.WriteString(w, out.String())
		return err
	}

	for i := range records {
		out.WriteString("\n")
		v.writeCard(&out, &records[i])
	}

	_, err := io.WriteString(w, out.String())
	return err
}

func (v *CardView) writeCard(out *strings.Builder, rec *event.Record) {
	days, known := rec.DaysLeft(v.opts.Now)
	badge := DaysLeftBadge(days, known, v.opts.Thresholds)

	out.WriteString(fmt.Sprintf("🏆 %s  [%s]\n", rec.EventName, badge.Label))
	out.WriteString(fmt.Sprintf("   ⏳ %s\n", DeadlineTooltip(rec.Deadline, days, known)))
	out.WriteString(fmt.Sprintf("   🌐 %s · %s\n", rec.Source, rec.Action))
	out.WriteString(fmt.Sprintf("   🔗 %s\n", rec.Link))
	out.WriteString(fmt.Sprintf("   📝 Saved %s · id %s\n", rec.RegisteredDate, rec.ID))
}

// RenderStats writes the aggregate figures on one line.
func (v *CardView) RenderStats(w io.Writer, stats tracker.Stats) error {
	_, err := fmt.Fprintf(w, "📊 %d events · %d platforms · %d today · %s avg days left\n",
		stats.Total, stats.DistinctPlatforms, stats.RegisteredToday, stats.AvgDaysLeftDisplay())
	return err
}

// ConfirmDelete asks for confirmation on the terminal.
func (v *CardView) ConfirmDelete(rec event.Record) (bool, error) {
	return confirm(v.opts, rec)
}
