// Package filter narrows a list of saved event records.
//
// Criteria combine with AND; within one criterion any listed value matches:
//   - Deadline range (from/to dates, inclusive)
//   - Event names (substring matching, case-insensitive)
//   - Sources (exact platform label, case-insensitive)
//   - Urgency buckets (expired, urgent, warning, good, unknown)
//   - Hide expired
//
// Example usage:
//
//	f := filter.NewFilter()
//	f.Sources = []string{"Devpost"}
//	f.HideExpired = true
//
//	upcoming := f.Apply(records, time.Now(), event.DefaultThresholds())
package filter
