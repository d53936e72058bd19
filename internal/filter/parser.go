package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/deadline-tracker/internal/event"
)

const monthNames = `jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|september|oct|october|nov|november|dec|december`

var (
	// "Mar 1-15"
	sameMonthRange = regexp.MustCompile(`(?i)^(` + monthNames + `)\s+(\d{1,2})\s*-\s*(\d{1,2})$`)
	// "Mar 1 - Apr 15"
	crossMonthRange = regexp.MustCompile(`(?i)^(` + monthNames + `)\s+(\d{1,2})\s*-\s*(` + monthNames + `)\s+(\d{1,2})$`)
	// "March"
	wholeMonth = regexp.MustCompile(`(?i)^(` + monthNames + `)$`)
)

// ParseDateRange parses a deadline range relative to now.
//
// Supported formats:
//   - "Mar 1-15" or "March 1-15" - Same month, different days
//   - "March 1 - April 15" - Different months
//   - "March" - Entire month
//
// A month earlier than now's month is taken to be next year. For cross-month
// ranges ending in an earlier month, the end is in the following year.
// Both bounds are local midnight; the end is inclusive.
func ParseDateRange(input string, now time.Time) (*time.Time, *time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil, fmt.Errorf("date range cannot be empty")
	}

	if m := sameMonthRange.FindStringSubmatch(input); m != nil {
		month := event.MonthNumber(m[1])
		year := yearForMonth(month, now)

		from, err := rangeDate(year, month, m[2])
		if err != nil {
			return nil, nil, err
		}
		to, err := rangeDate(year, month, m[3])
		if err != nil {
			return nil, nil, err
		}
		return ordered(from, to)
	}

	if m := crossMonthRange.FindStringSubmatch(input); m != nil {
		month1 := event.MonthNumber(m[1])
		month2 := event.MonthNumber(m[3])
		year1 := yearForMonth(month1, now)
		year2 := year1
		if month2 < month1 {
			year2++
		}

		from, err := rangeDate(year1, month1, m[2])
		if err != nil {
			return nil, nil, err
		}
		to, err := rangeDate(year2, month2, m[4])
		if err != nil {
			return nil, nil, err
		}
		return ordered(from, to)
	}

	if m := wholeMonth.FindStringSubmatch(input); m != nil {
		month := event.MonthNumber(m[1])
		year := yearForMonth(month, now)

		from := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
		// Day 0 of the next month is the last day of this one.
		to := time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local)
		return &from, &to, nil
	}

	return nil, nil, fmt.Errorf("invalid date range format. Use 'Mar 1-15', 'March 1 - April 15', or 'March'")
}

func rangeDate(year int, month time.Month, dayText string) (time.Time, error) {
	day, err := strconv.Atoi(dayText)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day: %s", dayText)
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	if day < 1 || t.Month() != month {
		return time.Time{}, fmt.Errorf("invalid day: %s %s", month, dayText)
	}
	return t, nil
}

func ordered(from, to time.Time) (*time.Time, *time.Time, error) {
	if from.After(to) {
		return nil, nil, fmt.Errorf("start date must be before end date")
	}
	return &from, &to, nil
}

// yearForMonth returns now's year, or the next one if month has already
// passed.
func yearForMonth(month time.Month, now time.Time) int {
	year := now.Year()
	if month < now.Month() {
		year++
	}
	return year
}
