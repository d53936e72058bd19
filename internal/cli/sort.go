package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/deadline-tracker/internal/event"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortStored   SortOrder = "stored"
	SortDeadline SortOrder = "deadline"
	SortName     SortOrder = "name"
	SortSource   SortOrder = "source"
)

func parseSortOrder(s string) (SortOrder, error) {
	order := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	switch order {
	case "":
		return SortStored, nil
	case SortStored, SortDeadline, SortName, SortSource:
		return order, nil
	}
	return "", fmt.Errorf("invalid sort order: %s (must be stored, deadline, name or source)", s)
}

// sortRecords sorts records in place. SortStored keeps the stored
// most-recent-first order.
func sortRecords(records []event.Record, order SortOrder) {
	switch order {
	case SortDeadline:
		sort.SliceStable(records, func(i, j int) bool {
			return compareByDeadline(&records[i], &records[j])
		})
	case SortName:
		sort.SliceStable(records, func(i, j int) bool {
			return strings.ToLower(records[i].EventName) < strings.ToLower(records[j].EventName)
		})
	case SortSource:
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].Source != records[j].Source {
				return records[i].Source < records[j].Source
			}
			// If sources are equal, sort by deadline
			return compareByDeadline(&records[i], &records[j])
		})
	}
}

// compareByDeadline compares two records by their parsed deadline
// Returns true if record i should come before record j
func compareByDeadline(i, j *event.Record) bool {
	dateI := event.ParseDate(i.Deadline)
	dateJ := event.ParseDate(j.Deadline)

	// If both dates are valid, compare them
	if !dateI.IsZero() && !dateJ.IsZero() {
		return dateI.Before(dateJ)
	}

	// If only one date is valid, put the valid one first
	return !dateI.IsZero() && dateJ.IsZero()
}
