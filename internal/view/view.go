package view

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pfrederiksen/deadline-tracker/internal/event"
	"github.com/pfrederiksen/deadline-tracker/internal/preferences"
	"github.com/pfrederiksen/deadline-tracker/internal/tracker"
)

// Name identifies a presentation.
type Name string

const (
	NameTable Name = "table"
	NameCards Name = "cards"
	NameHTML  Name = "html"
	NameJSON  Name = "json"
)

// Names lists the available presentations.
var Names = []Name{NameTable, NameCards, NameHTML, NameJSON}

// Renderer is the capability set every presentation of the collection provides.
type Renderer interface {
	RenderEvents(w io.Writer, records []event.Record) error
	RenderStats(w io.Writer, stats tracker.Stats) error
	ConfirmDelete(rec event.Record) (bool, error)
}

// Options are shared by all renderers.
type Options struct {
	Now        time.Time
	Thresholds event.Thresholds
	Theme      preferences.Theme
	// Input and Prompt are used by ConfirmDelete.
	Input  io.Reader
	Prompt io.Writer
}

// New returns the renderer registered under name.
func New(name string, opts Options) (Renderer, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Thresholds == (event.Thresholds{}) {
		opts.Thresholds = event.DefaultThresholds()
	}
	if opts.Theme == "" {
		opts.Theme = preferences.DefaultTheme
	}

	switch Name(strings.ToLower(name)) {
	case NameTable, "":
		return &TableView{opts: opts}, nil
	case NameCards:
		return &CardView{opts: opts}, nil
	case NameHTML:
		return &HTMLView{opts: opts}, nil
	case NameJSON:
		return &JSONView{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unknown view: %s", name)
	}
}

const emptyMessage = `📋 No events saved yet. Run "deadline-tracker capture" to start tracking!`

// confirm asks the delete question on opts.Prompt and reads the answer from
// opts.Input.
func confirm(opts Options, rec event.Record) (bool, error) {
	if opts.Input == nil || opts.Prompt == nil {
		return false, errors.New("no terminal to confirm on; pass --yes")
	}
	fmt.Fprintln(opts.Prompt, "Delete Event")
	return Ask(opts.Input, opts.Prompt, fmt.Sprintf("Are you sure you want to delete %q (%s)?", rec.EventName, rec.ID))
}

// Ask writes a yes/no question to out and reads one line from in. Anything
// but y/yes, including end of input, is a no.
func Ask(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", question)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
