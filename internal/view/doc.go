// Package view renders the event collection.
//
// Every presentation implements Renderer: it can render a list of records,
// render the aggregate statistics and confirm a deletion. The table, card,
// HTML and JSON views are interchangeable; the CLI picks one with --view.
package view
