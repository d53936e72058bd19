package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/deadline-tracker/internal/event"
)

// ErrNoData is returned when there is nothing to export.
var ErrNoData = errors.New("no data to export")

// Header is the fixed CSV header row.
var Header = []string{"Event Name", "Deadline", "Days Left", "Source", "Action", "Link", "Registered Date"}

// FileName returns the default export file name for the given day.
func FileName(now time.Time, ext string) string {
	return fmt.Sprintf("hackathon-deadlines-%s.%s", now.Format("2006-01-02"), ext)
}

// CSV renders records as CSV: an unquoted header, then one row per record with
// every field wrapped in double quotes. Rows are joined by "\n" with no
// trailing newline.
func CSV(records []event.Record, now time.Time) (string, error) {
	if len(records) == 0 {
		return "", ErrNoData
	}

	rows := make([]string, 0, len(records)+1)
	rows = append(rows, strings.Join(Header, ","))

	for i := range records {
		rec := &records[i]

		daysLeft := "N/A"
		if days, ok := rec.DaysLeft(now); ok {
			daysLeft = strconv.Itoa(days)
		}

		fields := []string{
			rec.EventName,
			rec.Deadline,
			daysLeft,
			string(rec.Source),
			string(rec.Action),
			rec.Link,
			rec.RegisteredDate,
		}
		for j, f := range fields {
			fields[j] = quote(f)
		}
		rows = append(rows, strings.Join(fields, ","))
	}

	return strings.Join(rows, "\n"), nil
}

// WriteCSV writes the CSV rendering of records to w.
func WriteCSV(w io.Writer, records []event.Record, now time.Time) error {
	data, err := CSV(records, now)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, data); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
