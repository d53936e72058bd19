package event

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// MonthPattern matches a month name or its three-letter abbreviation.
const MonthPattern = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`

var months = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// dateGrammar pairs a pattern with the positions of its year, month and day
// groups. monthName marks grammars whose month group holds a name.
type dateGrammar struct {
	re        *regexp.Regexp
	year      int
	month     int
	day       int
	monthName bool
}

var dateGrammars = []dateGrammar{
	// "15th December 2025", "5 Mar 2026"
	{
		re:        regexp.MustCompile(`(?i)(\d{1,2})(?:st|nd|rd|th)?\s+(` + MonthPattern + `)\s+(\d{4})`),
		year:      3,
		month:     2,
		day:       1,
		monthName: true,
	},
	// "Dec 15, 2025", "March 5th 2026"
	{
		re:        regexp.MustCompile(`(?i)(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+(\d{1,2})(?:st|nd|rd|th)?,?\s*(\d{4})`),
		year:      3,
		month:     1,
		day:       2,
		monthName: true,
	},
	// "2025-12-15", "2025/12/15"
	{
		re:    regexp.MustCompile(`(\d{4})[/\-](\d{1,2})[/\-](\d{1,2})`),
		year:  1,
		month: 2,
		day:   3,
	},
	// "15-12-2025", "15/12/2025": always day first
	{
		re:    regexp.MustCompile(`(\d{1,2})[/\-](\d{1,2})[/\-](\d{4})`),
		year:  3,
		month: 2,
		day:   1,
	},
}

// freeFormLayouts is the best-effort fallback tried against the whole string.
var freeFormLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
	"Mon Jan 2 2006",
	"Mon, Jan 2 2006",
	"Mon, January 2, 2006",
	"Monday, January 2, 2006",
	"January 2 2006 15:04",
	"January 2, 2006 3:04 PM",
	"Jan 2 2006 15:04",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/06",
	"January 2006",
	"Jan 2006",
	"2006",
}

// ParseDate turns a free-form date fragment into a calendar date at local
// midnight. Returns time.Time{} (zero value) if nothing in the text parses.
//
// Grammars are tried in this order, first valid match wins:
//   - "15th December 2025" (day before month name)
//   - "Dec 15, 2025" (month name before day)
//   - "2025-12-15" / "2025/12/15"
//   - "15-12-2025" / "15/12/2025" (day first)
//
// The first grammar that matches decides: if its fields do not form a real
// calendar date the result is the zero time, so "03/25/2025" is never
// reread month first. Only text no grammar matches goes through the list of
// common layouts.
func ParseDate(text string) time.Time {
	text = strings.TrimSpace(NormalizeSpace(text))
	if text == "" {
		return time.Time{}
	}

	for _, g := range dateGrammars {
		m := g.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		t, _ := g.compose(m)
		return t
	}

	return parseFreeForm(text)
}

// NormalizeSpace turns Unicode space separators such as NBSP into plain
// spaces. Line breaks are kept.
func NormalizeSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if r != ' ' && unicode.Is(unicode.Zs, r) {
			return ' '
		}
		return r
	}, s)
}

func (g dateGrammar) compose(m []string) (time.Time, bool) {
	year, err := strconv.Atoi(m[g.year])
	if err != nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(m[g.day])
	if err != nil {
		return time.Time{}, false
	}

	var month time.Month
	if g.monthName {
		month = MonthNumber(m[g.month])
	} else {
		n, err := strconv.Atoi(m[g.month])
		if err != nil {
			return time.Time{}, false
		}
		month = time.Month(n)
	}

	return calendarDate(year, month, day)
}

// MonthNumber maps a month name or abbreviation to its month. Only the first
// three letters are significant. Unknown names return 0.
func MonthNumber(name string) time.Month {
	key := strings.ToLower(name)
	if len(key) > 3 {
		key = key[:3]
	}
	return months[key]
}

// calendarDate builds local midnight for the given fields, rejecting
// anything time.Date would silently normalize.
func calendarDate(year int, month time.Month, day int) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	if t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func parseFreeForm(text string) time.Time {
	for _, layout := range freeFormLayouts {
		t, err := time.ParseInLocation(layout, text, time.Local)
		if err != nil {
			continue
		}
		return StartOfDay(t)
	}
	return time.Time{}
}

// StartOfDay returns local midnight of t's calendar date.
func StartOfDay(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
