// Package calendar exports event deadlines as an iCalendar (RFC 5545) feed.
//
// Each record whose deadline parses to a date becomes one all-day VEVENT on
// that date, so the feed can be imported into any calendar application.
package calendar
