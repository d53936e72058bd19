// Package extract turns a captured page (title, body text, URL and auxiliary
// deadline fragments) into an event.Record.
//
// Extraction is a best-effort heuristic cascade: ordered pattern tables are
// evaluated first-match-wins, so earlier patterns are higher confidence.
package extract
