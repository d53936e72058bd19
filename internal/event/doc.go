// Package event provides the captured event record and deadline arithmetic.
//
// A Record keeps its deadline as free text. Deadlines are re-parsed on demand
// by ParseDate, which normalizes every supported format to a local calendar
// date, and DaysLeft/Thresholds turn that date into a day count and urgency.
package event
