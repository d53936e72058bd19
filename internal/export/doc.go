// Package export serializes the event collection for spreadsheets.
package export
