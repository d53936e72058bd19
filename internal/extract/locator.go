package extract

import (
	"regexp"
	"strings"

	"github.com/pfrederiksen/deadline-tracker/internal/event"
)

// maxFragmentLen caps a deadline taken verbatim from an auxiliary fragment.
const maxFragmentLen = 100

const monthAbbr = `jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec`

// labeledPatterns are tried in order against body text plus fragments.
// Group 1 holds the candidate deadline span.
var labeledPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)deadline:\s*([^\n.!?]+)`),
	regexp.MustCompile(`(?i)last date:\s*([^\n.!?]+)`),
	regexp.MustCompile(`(?i)submission ends:\s*([^\n.!?]+)`),
	regexp.MustCompile(`(?i)registration closes:\s*([^\n.!?]+)`),
	regexp.MustCompile(`(?i)ends on:\s*([^\n.!?]+)`),
	regexp.MustCompile(`(?i)closing date:\s*([^\n.!?]+)`),
	regexp.MustCompile(`(?i)apply by:\s*([^\n.!?]+)`),
	regexp.MustCompile(`(?i)due date:\s*([^\n.!?]+)`),
	regexp.MustCompile(`(?i)(?:by|before|until)\s+(\d{1,2}\s+(?:` + monthAbbr + `)[a-z]*\s+\d{4})`),
	regexp.MustCompile(`(?i)(?:by|before|until)\s+(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`),
	regexp.MustCompile(`(?i)(?:by|before|until)\s+(\d{4}[/\-]\d{1,2}[/\-]\d{1,2})`),
	regexp.MustCompile(`(?i)submissions? dead\w*:?\s*([^\n.!?]+)`),
	regexp.MustCompile(`(?i)registrations? dead\w*:?\s*([^\n.!?]+)`),
	regexp.MustCompile(`(?i)applications? dead\w*:?\s*([^\n.!?]+)`),
	regexp.MustCompile(`(?i)clos(?:es|ing)\s+(?:on|date)?:?\s*([^\n.!?]+)`),
	regexp.MustCompile(`(?i)ends?\s+(?:on)?:?\s*([^\n.!?]+)`),
	regexp.MustCompile(`(?i)(\d{1,2}(?::\d{2})?\s*(?:am|pm)\s+(?:on|,)?\s*[^.!?\n]{5,30})`),
	regexp.MustCompile(`(?i)(\d{1,2}(?:st|nd|rd|th)?\s+(?:` + event.MonthPattern + `)\s+\d{4})`),
	regexp.MustCompile(`(?i)registrations?\s+(?:close|end)s?:?\s*([^\n.!?]+)`),
	regexp.MustCompile(`(?i)submission\s+period\s+ends?\s*:?\s*([^\n.!?]+)`),
	regexp.MustCompile(`(?i)hackathon\s+ends?\s*:?\s*([^\n.!?]+)`),
}

// bareDatePatterns are the last resort, applied to body text only.
var bareDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:` + monthAbbr + `)[a-z]*\s+\d{4}\b`),
	regexp.MustCompile(`\b\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4}\b`),
	regexp.MustCompile(`(?i)\b(?:` + monthAbbr + `)[a-z]*\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}\b`),
	regexp.MustCompile(`\b\d{4}[/\-]\d{1,2}[/\-]\d{1,2}\b`),
}

var (
	digitPattern      = regexp.MustCompile(`\d+`)
	monthTokenPattern = regexp.MustCompile(`(?i)(` + monthAbbr + `)`)
	leadingConnector  = regexp.MustCompile(`(?i)^(?:on|at|by|before|until)\s+`)
	trailingPunct     = regexp.MustCompile(`[.,;:\s]+$`)
)

// LocateDeadline finds the substring of a page most likely to be its
// submission or registration deadline. Stages, first hit wins:
//  1. labeled phrases ("deadline:", "apply by:", ...) over body text and
//     fragments together, accepting a span only if it looks date-like
//  2. the first date-like auxiliary fragment, truncated to 100 characters
//  3. bare date shapes in the body text
//
// Unicode space separators such as NBSP count as plain spaces in every stage.
//
// Returns event.NotSpecified when bodyText is empty or every stage fails.
func LocateDeadline(bodyText string, fragments []string) string {
	if bodyText == "" {
		return event.NotSpecified
	}

	bodyText = event.NormalizeSpace(bodyText)
	normalized := make([]string, len(fragments))
	for i, fragment := range fragments {
		normalized[i] = event.NormalizeSpace(fragment)
	}
	fragments = normalized

	all := bodyText + " " + strings.Join(fragments, " ")

	for _, re := range labeledPatterns {
		m := re.FindStringSubmatch(all)
		if m == nil || m[1] == "" {
			continue
		}
		candidate := cleanCandidate(m[1])
		if looksDateLike(candidate) {
			return candidate
		}
	}

	for _, fragment := range fragments {
		if looksDateLike(fragment) {
			return truncateRunes(fragment, maxFragmentLen)
		}
	}

	for _, re := range bareDatePatterns {
		if match := re.FindString(bodyText); match != "" {
			return match
		}
	}

	return event.NotSpecified
}

func cleanCandidate(s string) string {
	s = strings.TrimSpace(s)
	s = leadingConnector.ReplaceAllString(s, "")
	return trailingPunct.ReplaceAllString(s, "")
}

// looksDateLike reports whether s holds a digit or a month token.
func looksDateLike(s string) bool {
	return digitPattern.MatchString(s) || monthTokenPattern.MatchString(s)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
