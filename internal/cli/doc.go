// Package cli implements the command-line interface for deadline-tracker.
//
// The cli package provides the Cobra-based commands for capturing events from
// web pages, listing and filtering them (table, cards, HTML or JSON), showing statistics,
// deleting and clearing records, exporting CSV/iCalendar files and switching
// the theme. It coordinates the config, scraper, extract, tracker, filter and view
// packages; all process-wide state is built once per invocation and passed
// to the commands explicitly.
package cli
