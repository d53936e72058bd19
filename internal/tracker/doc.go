// Package tracker holds the persisted collection of captured events.
//
// A Store keeps records most-recent-first and enforces the dedup rule: a link
// captured less than the dedup window ago cannot be captured again. Reads
// repair legacy records that were stored without an ID. Persistence goes
// through any KV, normally a *storage.Storage.
//
// Example usage:
//
//	store := tracker.New(kv, tracker.WithDedupWindow(cfg.DedupWindow))
//	err := store.Insert(rec)
//	var dup *tracker.DuplicateEventError
//	if errors.As(err, &dup) {
//	    // already captured
//	}
package tracker
