package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/deadline-tracker/internal/calendar"
	"github.com/pfrederiksen/deadline-tracker/internal/event"
	"github.com/pfrederiksen/deadline-tracker/internal/export"
	"github.com/pfrederiksen/deadline-tracker/internal/extract"
	"github.com/pfrederiksen/deadline-tracker/internal/filter"
	"github.com/pfrederiksen/deadline-tracker/internal/logger"
	"github.com/pfrederiksen/deadline-tracker/internal/preferences"
	"github.com/pfrederiksen/deadline-tracker/internal/scraper"
	"github.com/pfrederiksen/deadline-tracker/internal/tracker"
	"github.com/pfrederiksen/deadline-tracker/internal/view"
)

func newCaptureCmd(a *app) *cobra.Command {
	var (
		flagURL      string
		flagHTMLFile string
		flagTextFile string
		flagTitle    string
		flagFormat   string
		flagVerbose  bool
	)

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Save the event described by a web page",
		Long: `Capture an event from a live URL, a saved HTML file or a plain text file.
The deadline, platform and required action are extracted automatically.`,
		Example: `  deadline-tracker capture --url https://devpost.com/hackathon/123
  deadline-tracker capture --html-file page.html --url https://unstop.com/hackathons/x
  deadline-tracker capture --text-file notes.txt --title "Spring Hack" --url https://example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(flagFormat)
			if err != nil {
				return err
			}
			if flagURL == "" {
				return errors.New("--url is required")
			}
			if flagHTMLFile != "" && flagTextFile != "" {
				return errors.New("--html-file and --text-file are mutually exclusive")
			}

			page, err := a.loadPage(cmd, flagURL, flagHTMLFile, flagTextFile, flagTitle)
			if err != nil {
				return err
			}

			// Pages without a <title> often still carry og:title.
			title := page.Title
			if strings.TrimSpace(title) == "" {
				title = page.Meta.OGTitle
			}

			now := a.now()
			rec := extract.ExtractAt(now, title, page.BodyText, page.URL, page.AuxiliaryFragments)
			if err := a.store.Insert(rec); err != nil {
				var dup *tracker.DuplicateEventError
				if errors.As(err, &dup) {
					return fmt.Errorf("❌ event already saved in the last %s (id %s)", a.cfg.DedupWindow, dup.ExistingID)
				}
				return fmt.Errorf("saving event: %w", err)
			}

			result := &CaptureResult{
				Event:             rec,
				HackathonPlatform: extract.IsHackathonPlatform(page.URL),
				Fragments:         page.AuxiliaryFragments,
				Meta:              page.Meta,
			}
			if days, ok := rec.DaysLeft(now); ok {
				result.DaysLeft = &days
			}
			return writeCapture(cmd.OutOrStdout(), result, format, flagVerbose)
		},
	}

	cmd.Flags().StringVar(&flagURL, "url", "", "Page URL (required; fetched unless a file is given)")
	cmd.Flags().StringVar(&flagHTMLFile, "html-file", "", "Read the page from a saved HTML file")
	cmd.Flags().StringVar(&flagTextFile, "text-file", "", "Read the page body from a plain text file")
	cmd.Flags().StringVar(&flagTitle, "title", "", "Page title when using --text-file")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Show the auxiliary deadline fragments and meta tags found on the page")

	return cmd
}

// loadPage builds the page bundle from the live URL or a local file.
func (a *app) loadPage(cmd *cobra.Command, url, htmlFile, textFile, title string) (*scraper.Page, error) {
	switch {
	case htmlFile != "":
		f, err := os.Open(htmlFile)
		if err != nil {
			return nil, fmt.Errorf("opening html file: %w", err)
		}
		defer f.Close()
		return a.scraper.Inspect(f, url)

	case textFile != "":
		data, err := os.ReadFile(textFile)
		if err != nil {
			return nil, fmt.Errorf("reading text file: %w", err)
		}
		return &scraper.Page{Title: title, BodyText: string(data), URL: url}, nil

	default:
		logger.Info("Fetching page", logger.Fields{"url": url})
		return a.scraper.Fetch(cmd.Context(), url)
	}
}

func newListCmd(a *app) *cobra.Command {
	var (
		flagView        string
		flagSort        string
		flagFrom        string
		flagTo          string
		flagRange       string
		flagNames       []string
		flagSources     []string
		flagUrgencies   []string
		flagHideExpired bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved events with days left",
		Example: `  deadline-tracker list --sort deadline
  deadline-tracker list --source Devpost --hide-expired
  deadline-tracker list --urgency urgent,warning --view cards
  deadline-tracker list --from 2026-03-01 --to 2026-03-31 --view json
  deadline-tracker list --range "Mar 15-31"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := parseSortOrder(flagSort)
			if err != nil {
				return err
			}

			f := filter.NewFilter()
			f.Names = flagNames
			f.Sources = flagSources
			f.HideExpired = flagHideExpired
			if flagFrom != "" {
				if f.DeadlineFrom, err = filter.ParseDay(flagFrom); err != nil {
					return err
				}
			}
			if flagTo != "" {
				if f.DeadlineTo, err = filter.ParseDay(flagTo); err != nil {
					return err
				}
			}
			if flagRange != "" {
				if flagFrom != "" || flagTo != "" {
					return errors.New("--range cannot be combined with --from or --to")
				}
				if f.DeadlineFrom, f.DeadlineTo, err = filter.ParseDateRange(flagRange, a.now()); err != nil {
					return err
				}
			}
			for _, s := range flagUrgencies {
				u, err := filter.ParseUrgency(s)
				if err != nil {
					return err
				}
				f.Urgencies = append(f.Urgencies, u)
			}

			r, err := a.renderer(cmd, flagView)
			if err != nil {
				return err
			}

			records, err := a.store.LoadAll()
			if err != nil {
				return err
			}
			if !f.IsEmpty() {
				logger.Debug("Filtering events", logger.Fields{"filter": f.String(), "total": len(records)})
				records = f.Apply(records, a.now(), a.cfg.Urgency)
			}
			sortRecords(records, order)

			return r.RenderEvents(cmd.OutOrStdout(), records)
		},
	}

	cmd.Flags().StringVar(&flagView, "view", string(view.NameTable), "View: table, cards, html or json")
	cmd.Flags().StringVar(&flagSort, "sort", string(SortStored), "Sort order: stored, deadline, name or source")
	cmd.Flags().StringVar(&flagFrom, "from", "", "Only deadlines on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flagTo, "to", "", "Only deadlines on or before this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flagRange, "range", "", "Only deadlines in a range such as 'Mar 1-15', 'March 1 - April 15' or 'March'")
	cmd.Flags().StringSliceVar(&flagNames, "name", nil, "Only events whose name contains this text (repeatable)")
	cmd.Flags().StringSliceVar(&flagSources, "source", nil, "Only events from this source, e.g. Devpost (repeatable)")
	cmd.Flags().StringSliceVar(&flagUrgencies, "urgency", nil, "Only events in these buckets: expired, urgent, warning, good, unknown")
	cmd.Flags().BoolVar(&flagHideExpired, "hide-expired", false, "Hide events whose deadline has passed")

	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	var flagView string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show totals, platforms, today's captures and average days left",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.renderer(cmd, flagView)
			if err != nil {
				return err
			}

			stats, err := a.store.Stats()
			if err != nil {
				return err
			}

			return r.RenderStats(cmd.OutOrStdout(), stats)
		},
	}

	cmd.Flags().StringVar(&flagView, "view", string(view.NameTable), "View: table, cards, html or json")

	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var (
		flagView string
		flagYes  bool
	)

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete one saved event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			records, err := a.store.LoadAll()
			if err != nil {
				return err
			}

			var target *event.Record
			for i := range records {
				if records[i].ID == id {
					target = &records[i]
					break
				}
			}
			if target == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No event with id %s.\n", id)
				return nil
			}

			if !flagYes {
				r, err := a.renderer(cmd, flagView)
				if err != nil {
					return err
				}
				ok, err := r.ConfirmDelete(*target)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := a.store.DeleteByID(id); err != nil {
				return fmt.Errorf("deleting event: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✅ Event deleted successfully!")
			return nil
		},
	}

	cmd.Flags().StringVar(&flagView, "view", string(view.NameTable), "View used for the confirmation")
	cmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Delete without asking")

	return cmd
}

func newClearCmd(a *app) *cobra.Command {
	var flagYes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all saved events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !flagYes {
				ok, err := view.Ask(cmd.InOrStdin(), cmd.ErrOrStderr(), "Are you sure you want to clear all data?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := a.store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "🗑️ All data cleared!")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Clear without asking")

	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		flagFormat string
		flagOutput string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export saved events to CSV or iCalendar",
		Long: `Export saved events. The default file name is hackathon-deadlines-YYYY-MM-DD.csv
(or .ics); use --output - to write to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(flagFormat)
			if format != "csv" && format != "ics" {
				return fmt.Errorf("invalid format: %s (must be 'csv' or 'ics')", flagFormat)
			}

			records, err := a.store.LoadAll()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return export.ErrNoData
			}

			now := a.now()
			output := flagOutput
			if output == "" {
				output = export.FileName(now, format)
			}

			return writeExport(cmd.OutOrStdout(), output, func(w io.Writer) error {
				if format == "ics" {
					skipped, err := calendar.WriteICS(w, records, now)
					if skipped > 0 {
						logger.Info("Skipped events without a parseable deadline", logger.Fields{"count": skipped})
					}
					return err
				}
				return export.WriteCSV(w, records, now)
			})
		},
	}

	cmd.Flags().StringVar(&flagFormat, "format", "csv", "Export format: csv or ics")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file (default hackathon-deadlines-DATE.EXT, - for stdout)")

	return cmd
}

// writeExport runs write against stdout or the named file.
func writeExport(stdout io.Writer, output string, write func(io.Writer) error) error {
	if output == "-" {
		return write(stdout)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	if err := write(f); err != nil {
		f.Close() // nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	fmt.Fprintf(stdout, "📊 Exported to %s\n", output)
	return nil
}

func newThemeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the display theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				theme, err := a.prefs.Theme()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), theme)
				return nil
			}

			if strings.EqualFold(args[0], "toggle") {
				theme, err := a.prefs.ToggleTheme()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", theme)
				return nil
			}

			theme, err := preferences.ParseTheme(args[0])
			if err != nil {
				return err
			}
			if err := a.prefs.SetTheme(theme); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", theme)
			return nil
		},
	}

	return cmd
}

func newParseCmd(a *app) *cobra.Command {
	var (
		flagFragments []string
		flagFormat    string
	)

	cmd := &cobra.Command{
		Use:   "parse TEXT...",
		Short: "Show how a piece of text is interpreted as a deadline",
		Example: `  deadline-tracker parse "Submission deadline: March 5, 2026. Good luck!"
  deadline-tracker parse --fragment "Closes 15/12/2025" "Join us"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(flagFormat)
			if err != nil {
				return err
			}

			deadline := extract.LocateDeadline(strings.Join(args, " "), flagFragments)
			result := &ParseResult{Deadline: deadline}

			now := a.now()
			if date := event.ParseDate(deadline); !date.IsZero() {
				result.Date = date.Format("2006-01-02")
			}
			days, known := event.DaysLeft(deadline, now)
			if known {
				result.DaysLeft = &days
			}
			result.Urgency = a.cfg.Urgency.Bucket(days, known)

			return writeParse(cmd.OutOrStdout(), result, format)
		},
	}

	cmd.Flags().StringSliceVar(&flagFragments, "fragment", nil, "Auxiliary deadline fragment (repeatable)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")

	return cmd
}
