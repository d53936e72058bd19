// Package storage provides JSON-based key/value persistence.
//
// Each key is stored as <key>.json in the data directory, so the event
// collection and the theme preference can be read and written independently.
// The default storage location is ~/.local/share/deadline-tracker/.
package storage
