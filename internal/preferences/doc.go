// Package preferences manages user display preferences for the deadline tracker.
//
// The only preference is the light/dark theme. It is stored under its own
// storage key, separate from the event collection, and is read at startup
// and written whenever it changes.
package preferences
