package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/pfrederiksen/deadline-tracker/internal/event"
)

const (
	maxNameLen = 50
	minNameLen = 5
)

var (
	pipeSuffix     = regexp.MustCompile(`\s*\|\s*.*$`)
	hyphenSuffix   = regexp.MustCompile(`\s*-\s*.*$`)
	platformSuffix = regexp.MustCompile(`(?i)(Unstop|Devpost|MLH).*$`)
	firstTextLine  = regexp.MustCompile(`(?m)^([^\n]{10,100})`)
)

// Extract builds a record from a captured page using the current time.
func Extract(title, bodyText, url string, fragments []string) *event.Record {
	return ExtractAt(time.Now(), title, bodyText, url, fragments)
}

// ExtractAt builds a record from a captured page as of now.
func ExtractAt(now time.Time, title, bodyText, url string, fragments []string) *event.Record {
	return &event.Record{
		ID:             event.NewID(now),
		EventName:      EventName(title, bodyText),
		Deadline:       LocateDeadline(bodyText, fragments),
		Source:         ClassifyPlatform(url),
		Action:         ClassifyAction(bodyText, title),
		Link:           url,
		RegisteredDate: event.FormatRegisteredDate(now),
		Timestamp:      now.UnixMilli(),
	}
}

// EventName derives a display name from the page title. Everything after the
// first "|" or "-" is dropped along with a trailing platform name. Names under
// five characters fall back to the first body line of 10 to 100 characters.
// Results longer than 50 characters are cut to 47 plus "...".
func EventName(title, bodyText string) string {
	name := pipeSuffix.ReplaceAllString(title, "")
	name = hyphenSuffix.ReplaceAllString(name, "")
	name = platformSuffix.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)

	if len([]rune(name)) < minNameLen || name == event.UnknownEvent {
		if m := firstTextLine.FindStringSubmatch(bodyText); m != nil {
			name = strings.TrimSpace(m[1])
		}
	}

	if r := []rune(name); len(r) > maxNameLen {
		name = string(r[:maxNameLen-3]) + "..."
	}

	if name == "" {
		return event.UnknownEvent
	}
	return name
}
