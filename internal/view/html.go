package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/microcosm-cc/bluemonday"

	"github.com/pfrederiksen/deadline-tracker/internal/event"
	"github.com/pfrederiksen/deadline-tracker/internal/tracker"
)

// HTMLView renders a standalone HTML page of event cards. Card markup is
// passed through a bluemonday policy before it is embedded, since names,
// deadlines and links come from scraped pages.
type HTMLView struct {
	opts Options
}

type htmlCard struct {
	ID           string
	Name         string
	ShortName    string
	Deadline     string
	Tooltip      string
	Badge        Badge
	Source       event.Source
	Action       event.Action
	Link         string
	ShortLink    string
	RegisteredOn string
}

var cardsTemplate = template.Must(template.New("cards").Parse(`
<div class="datetime">{{.Header}}</div>
{{- if not .Cards}}
<div class="empty-message">{{.Empty}}</div>
{{- end}}
{{- range .Cards}}
<div class="event-card" data-id="{{.ID}}">
  <h3 title="{{.Name}}">{{.ShortName}}</h3>
  <span class="deadline-badge deadline-tooltip" data-tooltip="{{.Tooltip}}">{{.Deadline}}</span>
  <span class="days-left-badge days-left-{{.Badge.Urgency}}" title="{{.Badge.Title}}">{{.Badge.Label}}</span>
  <span class="platform-badge">{{.Source}}</span>
  <span class="action">{{.Action}}</span>
  <a href="{{.Link}}" class="event-link" title="{{.Link}}">{{.ShortLink}}</a>
  <span class="registered">{{.RegisteredOn}}</span>
</div>
{{- end}}
`))

var statsTemplate = template.Must(template.New("stats").Parse(`
<div class="stats">
  <div class="stat"><span class="stat-value">{{.Total}}</span> <span class="stat-label">Total events</span></div>
  <div class="stat"><span class="stat-value">{{.DistinctPlatforms}}</span> <span class="stat-label">Platforms</span></div>
  <div class="stat"><span class="stat-value">{{.RegisteredToday}}</span> <span class="stat-label">Registered today</span></div>
  <div class="stat"><span class="stat-value">{{.AvgDaysLeftDisplay}}</span> <span class="stat-label">Avg days left</span></div>
</div>
`))

const pageStyle = `body{font-family:sans-serif;margin:24px}
body.light{background:#ffffff;color:#1f2937}
body.dark{background:#111827;color:#f9fafb}
.event-card{border:1px solid #d1d5db;border-radius:12px;padding:12px;margin:12px 0}
.days-left-expired{color:#6b7280}.days-left-urgent{color:#ef4444}
.days-left-warning{color:#f59e0b}.days-left-good{color:#10b981}`

func sanitizePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowDataAttributes()
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// RenderEvents writes an HTML page with one card per record.
func (v *HTMLView) RenderEvents(w io.Writer, records []event.Record) error {
	cards := make([]htmlCard, 0, len(records))
	for i := range records {
		rec := &records[i]
		days, known := rec.DaysLeft(v.opts.Now)
		cards = append(cards, htmlCard{
			ID:           rec.ID,
			Name:         rec.EventName,
			ShortName:    truncate(rec.EventName, 25),
			Deadline:     rec.Deadline,
			Tooltip:      DeadlineTooltip(rec.Deadline, days, known),
			Badge:        DaysLeftBadge(days, known, v.opts.Thresholds),
			Source:       rec.Source,
			Action:       rec.Action,
			Link:         rec.Link,
			ShortLink:    truncate(rec.Link, 30),
			RegisteredOn: rec.RegisteredDate,
		})
	}

	var body bytes.Buffer
	err := cardsTemplate.Execute(&body, map[string]any{
		"Header": DateTimeHeader(v.opts.Now),
		"Empty":  emptyMessage,
		"Cards":  cards,
	})
	if err != nil {
		return fmt.Errorf("rendering cards: %w", err)
	}

	return v.writePage(w, "Hackathon Deadlines", body.String())
}

// RenderStats writes an HTML page with the aggregate figures.
func (v *HTMLView) RenderStats(w io.Writer, stats tracker.Stats) error {
	var body bytes.Buffer
	if err := statsTemplate.Execute(&body, stats); err != nil {
		return fmt.Errorf("rendering stats: %w", err)
	}
	return v.writePage(w, "Hackathon Statistics", body.String())
}

// ConfirmDelete asks for confirmation on the terminal.
func (v *HTMLView) ConfirmDelete(rec event.Record) (bool, error) {
	return confirm(v.opts, rec)
}

func (v *HTMLView) writePage(w io.Writer, title, body string) error {
	_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
%s
</style>
</head>
<body class="%s">
%s
</body>
</html>
`, template.HTMLEscapeString(title), pageStyle, v.opts.Theme, sanitizePolicy().Sanitize(body))
	return err
}
