package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/deadline-tracker/internal/config"
	"github.com/pfrederiksen/deadline-tracker/internal/logger"
	"github.com/pfrederiksen/deadline-tracker/internal/preferences"
	"github.com/pfrederiksen/deadline-tracker/internal/scraper"
	"github.com/pfrederiksen/deadline-tracker/internal/storage"
	"github.com/pfrederiksen/deadline-tracker/internal/tracker"
	"github.com/pfrederiksen/deadline-tracker/internal/view"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// app is the process-wide state shared by all commands. It is built once in
// the root command's PersistentPreRunE.
type app struct {
	cfg     *config.Config
	storage *storage.Storage
	store   *tracker.Store
	prefs   *preferences.Preferences
	scraper *scraper.Scraper
	now     func() time.Time

	flagConfig   string
	flagDataDir  string
	flagLogLevel string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(time.Now)
}

func newRootCmd(now func() time.Time) *cobra.Command {
	a := &app{now: now}

	cmd := &cobra.Command{
		Use:   "deadline-tracker",
		Short: "Track hackathon and event deadlines",
		Long: `A CLI tool that captures events from web pages, locates their deadline,
and keeps a deduplicated list with days-left tracking and CSV/iCalendar export.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	cmd.PersistentFlags().StringVar(&a.flagConfig, "config", config.DefaultPath, "Path to the YAML config file")
	cmd.PersistentFlags().StringVar(&a.flagDataDir, "data-dir", "", "Data directory (overrides config)")
	cmd.PersistentFlags().StringVar(&a.flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	cmd.AddCommand(
		newCaptureCmd(a),
		newListCmd(a),
		newStatsCmd(a),
		newDeleteCmd(a),
		newClearCmd(a),
		newExportCmd(a),
		newThemeCmd(a),
		newParseCmd(a),
	)

	return cmd
}

// setup loads configuration and opens storage.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.flagConfig, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if a.flagDataDir != "" {
		cfg.DataDir = a.flagDataDir
	}
	if a.flagLogLevel != "" {
		cfg.LogLevel = a.flagLogLevel
	}
	a.cfg = cfg

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()).With(logger.Fields{"command": cmd.Name()}))

	a.storage, err = storage.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	logger.Debug("Storage ready", logger.Fields{"data_dir": a.storage.Dir()})

	a.store = tracker.New(a.storage, tracker.WithDedupWindow(cfg.DedupWindow), tracker.WithClock(a.now))
	a.prefs = preferences.New(a.storage)
	a.scraper = scraper.New(scraper.Options{
		UserAgent:   cfg.Fetch.UserAgent,
		Timeout:     cfg.Fetch.Timeout,
		MaxBodyText: cfg.Fetch.MaxBodyText,
	})

	return nil
}

// renderer builds the named view with the stored theme.
func (a *app) renderer(cmd *cobra.Command, name string) (view.Renderer, error) {
	theme, err := a.prefs.Theme()
	if err != nil {
		logger.Warn("Falling back to default theme", logger.Fields{"error": err.Error()})
	}

	return view.New(name, view.Options{
		Now:        a.now(),
		Thresholds: a.cfg.Urgency,
		Theme:      theme,
		Input:      cmd.InOrStdin(),
		Prompt:     cmd.ErrOrStderr(),
	})
}

// Execute runs the CLI
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stderr))
}

func run(cmd *cobra.Command, args []string, stderr io.Writer) int {
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}
