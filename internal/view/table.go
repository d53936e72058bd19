package view

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pfrederiksen/deadline-tracker/internal/event"
	"github.com/pfrederiksen/deadline-tracker/internal/preferences"
	"github.com/pfrederiksen/deadline-tracker/internal/tracker"
)

// TableView renders the collection as a terminal table, one row per event.
type TableView struct {
	opts Options
}

// RenderEvents writes one table row per record.
func (v *TableView) RenderEvents(w io.Writer, records []event.Record) error {
	fmt.Fprintln(w, DateTimeHeader(v.opts.Now))

	if len(records) == 0 {
		fmt.Fprintln(w, emptyMessage)
		return nil
	}

	t := v.newTable(w)
	t.AppendHeader(table.Row{"Event Name", "Deadline", "Days Left", "Source", "Action", "Link", "Registered", "ID"})
	for i := range records {
		rec := &records[i]
		days, known := rec.DaysLeft(v.opts.Now)
		badge := DaysLeftBadge(days, known, v.opts.Thresholds)
		t.AppendRow(table.Row{
			truncate(rec.EventName, 25),
			rec.Deadline,
			badge.Label,
			rec.Source,
			rec.Action,
			truncate(rec.Link, 30),
			rec.RegisteredDate,
			rec.ID,
		})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d events", len(records))})
	t.Render()

	return nil
}

// RenderStats writes the aggregate figures as a two-column table.
func (v *TableView) RenderStats(w io.Writer, stats tracker.Stats) error {
	t := v.newTable(w)
	t.SetTitle("Statistics")
	t.AppendRows([]table.Row{
		{"Total events", stats.Total},
		{"Platforms", stats.DistinctPlatforms},
		{"Registered today", stats.RegisteredToday},
		{"Avg days left", stats.AvgDaysLeftDisplay()},
	})
	t.Render()

	return nil
}

// ConfirmDelete asks for confirmation on the terminal.
func (v *TableView) ConfirmDelete(rec event.Record) (bool, error) {
	return confirm(v.opts, rec)
}

func (v *TableView) newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if v.opts.Theme == preferences.ThemeDark {
		t.SetStyle(table.StyleColoredDark)
	} else {
		t.SetStyle(table.StyleLight)
	}
	return t
}
