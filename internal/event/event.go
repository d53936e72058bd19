package event

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// NotSpecified is stored as the deadline when nothing usable was located.
	NotSpecified = "Not specified"
	// NotFound is a legacy sentinel written by older captures.
	NotFound = "Not found"
	// UnknownEvent is the placeholder event name.
	UnknownEvent = "Unknown Event"

	// RegisteredDateLayout is the layout of Record.RegisteredDate.
	RegisteredDateLayout = "2006-01-02"
)

// Source is the coarse platform label derived from a record's URL.
type Source string

const (
	SourceUnstop       Source = "Unstop"
	SourceDevpost      Source = "Devpost"
	SourceMLH          Source = "MLH"
	SourceHackathonCom Source = "Hackathon.com"
	SourceLuma         Source = "Luma"
	SourcePartiful     Source = "Partiful"
	SourceEventbrite   Source = "Eventbrite"
	SourceMeetup       Source = "Meetup"
	SourceOther        Source = "Other"
)

// Action is what the user has to do before the deadline.
type Action string

const (
	ActionSubmitProject  Action = "Submit project"
	ActionAttendWorkshop Action = "Attend workshop"
	ActionRegisterOnly   Action = "Register only"
)

// Record is a captured event with its deadline. Records are immutable once
// created, except for the ID backfill applied to legacy entries on load.
type Record struct {
	ID             string `json:"id,omitempty"`
	EventName      string `json:"eventName"`
	Deadline       string `json:"deadline"`
	Source         Source `json:"source"`
	Action         Action `json:"action"`
	Link           string `json:"link"`
	RegisteredDate string `json:"registeredDate"`
	Timestamp      int64  `json:"timestamp"` // capture instant, unix milliseconds
}

// CapturedAt returns the capture instant.
func (r *Record) CapturedAt() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// HasDeadline reports whether the deadline holds something other than a sentinel.
func (r *Record) HasDeadline() bool {
	return !IsSentinel(r.Deadline)
}

// IsSentinel reports whether s is one of the "no deadline" placeholders.
func IsSentinel(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == NotSpecified || s == NotFound
}

// NewID generates a record ID from the capture time and two independent
// random components: nine characters of a random UUID and a number below 10000.
func NewID(now time.Time) string {
	return fmt.Sprintf("event_%d_%s_%d", now.UnixMilli(), randomToken(), rand.IntN(10000))
}

// NewLegacyID generates the ID assigned to stored records that predate IDs.
func NewLegacyID(now time.Time) string {
	return fmt.Sprintf("event_%d_%s", now.UnixMilli(), randomToken())
}

func randomToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}

// FormatRegisteredDate renders t as a registered date.
func FormatRegisteredDate(t time.Time) string {
	return t.Format(RegisteredDateLayout)
}
