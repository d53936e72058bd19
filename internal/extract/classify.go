package extract

import (
	"strings"

	"github.com/pfrederiksen/deadline-tracker/internal/event"
)

// platformDomains is checked in order; the first substring found in the URL wins.
var platformDomains = []struct {
	domain string
	source event.Source
}{
	{"unstop.com", event.SourceUnstop},
	{"devpost.com", event.SourceDevpost},
	{"mlh.io", event.SourceMLH},
	{"hackathon.com", event.SourceHackathonCom},
	{"lu.ma", event.SourceLuma},
	{"partiful.com", event.SourcePartiful},
	{"eventbrite.com", event.SourceEventbrite},
	{"meetup.com", event.SourceMeetup},
}

// hackathonDomains are the platforms that host hackathon pages directly.
var hackathonDomains = []string{"unstop.com", "devpost.com", "mlh.io", "hackathon.com"}

// Keyword groups in precedence order: submission outranks workshop outranks registration.
var actionKeywords = []struct {
	action   event.Action
	keywords []string
}{
	{event.ActionSubmitProject, []string{"submit project", "submission", "submit your", "project submission"}},
	{event.ActionAttendWorkshop, []string{"attend workshop", "workshop", "attend event"}},
	{event.ActionRegisterOnly, []string{"register", "sign up", "registration"}},
}

// ClassifyPlatform derives the platform label from a URL.
func ClassifyPlatform(url string) event.Source {
	for _, p := range platformDomains {
		if strings.Contains(url, p.domain) {
			return p.source
		}
	}
	return event.SourceOther
}

// IsHackathonPlatform reports whether url belongs to a dedicated hackathon platform.
func IsHackathonPlatform(url string) bool {
	for _, d := range hackathonDomains {
		if strings.Contains(url, d) {
			return true
		}
	}
	return false
}

// ClassifyAction picks the required action from keywords in the body and title.
func ClassifyAction(bodyText, title string) event.Action {
	text := strings.ToLower(bodyText + " " + title)
	for _, group := range actionKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(text, kw) {
				return group.action
			}
		}
	}
	return event.ActionRegisterOnly
}
