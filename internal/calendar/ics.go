package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pfrederiksen/deadline-tracker/internal/event"
)

// GenerateICS generates an iCalendar (.ics) document with one all-day event
// per record whose deadline parses to a date. Records without a usable
// deadline are skipped; the second result counts them.
func GenerateICS(records []event.Record, now time.Time) (string, int) {
	var ics strings.Builder
	skipped := 0

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//Deadline Tracker//deadline-tracker//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("X-WR-CALNAME:Hackathon Deadlines\r\n")

	for i := range records {
		if !writeEvent(&ics, &records[i], now) {
			skipped++
		}
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String(), skipped
}

// WriteICS writes the calendar for records to w and returns how many records
// were skipped for lack of a parseable deadline.
func WriteICS(w io.Writer, records []event.Record, now time.Time) (int, error) {
	ics, skipped := GenerateICS(records, now)
	if _, err := io.WriteString(w, ics); err != nil {
		return skipped, fmt.Errorf("writing calendar: %w", err)
	}
	return skipped, nil
}

func writeEvent(ics *strings.Builder, rec *event.Record, now time.Time) bool {
	if !rec.HasDeadline() {
		return false
	}
	deadline := event.ParseDate(rec.Deadline)
	if deadline.IsZero() {
		return false
	}

	ics.WriteString("BEGIN:VEVENT\r\n")

	// UID - record id, stable across exports
	ics.WriteString(fmt.Sprintf("UID:%s@deadline-tracker\r\n", rec.ID))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(now)))

	// All-day event on the deadline date; DTEND is exclusive
	ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", formatICSDate(deadline)))
	ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", formatICSDate(deadline.AddDate(0, 0, 1))))

	summary := fmt.Sprintf("Deadline: %s", rec.EventName)
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	description := fmt.Sprintf("%s\nAction: %s\nSource: %s\nDeadline: %s",
		rec.EventName, rec.Action, rec.Source, rec.Deadline)
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))

	if rec.Link != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", rec.Link))
	}
	ics.WriteString(fmt.Sprintf("CATEGORIES:%s\r\n", escapeICS(string(rec.Source))))

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")

	// TRANSP - deadlines do not block time
	ics.WriteString("TRANSP:TRANSPARENT\r\n")

	ics.WriteString("END:VEVENT\r\n")
	return true
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// formatICSDate formats the calendar date of t without converting zones.
func formatICSDate(t time.Time) string {
	return t.Format("20060102")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
