package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/deadline-tracker/internal/event"
	"github.com/pfrederiksen/deadline-tracker/internal/scraper"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

func parseOutputFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(s))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
	}
	return format, nil
}

// CaptureResult describes a saved event
type CaptureResult struct {
	Event             *event.Record `json:"event"`
	DaysLeft          *int          `json:"days_left"`
	HackathonPlatform bool          `json:"hackathon_platform"`
	Fragments         []string      `json:"auxiliary_fragments,omitempty"`
	Meta              scraper.Meta  `json:"meta"`
}

// ParseResult describes how a piece of text was interpreted
type ParseResult struct {
	Deadline string        `json:"deadline"`
	Date     string        `json:"date,omitempty"`
	DaysLeft *int          `json:"days_left"`
	Urgency  event.Urgency `json:"urgency"`
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeCapture outputs a capture result in the given format
func writeCapture(w io.Writer, result *CaptureResult, format OutputFormat, verbose bool) error {
	if format == FormatJSON {
		return writeJSON(w, result)
	}

	rec := result.Event
	fmt.Fprintln(w, "✅ Event saved successfully!")
	fmt.Fprintf(w, "  Name:     %s\n", rec.EventName)
	fmt.Fprintf(w, "  Deadline: %s\n", rec.Deadline)
	if result.DaysLeft != nil {
		fmt.Fprintf(w, "  Days:     %d\n", *result.DaysLeft)
	}
	platform := string(rec.Source)
	if result.HackathonPlatform {
		platform += " (hackathon platform)"
	}
	fmt.Fprintf(w, "  Source:   %s\n", platform)
	fmt.Fprintf(w, "  Action:   %s\n", rec.Action)
	fmt.Fprintf(w, "  ID:       %s\n", rec.ID)

	if !verbose {
		return nil
	}

	if len(result.Fragments) > 0 {
		fmt.Fprintln(w, "  Fragments:")
		for _, f := range result.Fragments {
			fmt.Fprintf(w, "    - %s\n", f)
		}
	}
	meta := []struct{ label, value string }{
		{"Description", result.Meta.Description},
		{"Keywords", result.Meta.Keywords},
		{"OG title", result.Meta.OGTitle},
		{"OG description", result.Meta.OGDescription},
	}
	for _, m := range meta {
		if m.value != "" {
			fmt.Fprintf(w, "  %s: %s\n", m.label, m.value)
		}
	}

	return nil
}

// writeParse outputs a parse result in the given format
func writeParse(w io.Writer, result *ParseResult, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, result)
	}

	fmt.Fprintf(w, "Deadline: %s\n", result.Deadline)
	if result.Date == "" {
		fmt.Fprintln(w, "Date:     unknown")
	} else {
		fmt.Fprintf(w, "Date:     %s\n", result.Date)
	}
	if result.DaysLeft != nil {
		fmt.Fprintf(w, "Days:     %d\n", *result.DaysLeft)
	}
	fmt.Fprintf(w, "Urgency:  %s\n", result.Urgency)

	return nil
}
