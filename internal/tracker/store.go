package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/deadline-tracker/internal/event"
	"github.com/pfrederiksen/deadline-tracker/internal/logger"
	"github.com/pfrederiksen/deadline-tracker/internal/storage"
)

// DefaultDedupWindow is how long a captured link blocks a second capture.
const DefaultDedupWindow = 24 * time.Hour

// ErrPersistence marks failures of the underlying storage. After such a
// failure the caller must reload before writing again.
var ErrPersistence = errors.New("persistence failure")

// DuplicateEventError is returned by Insert when the same link was captured
// within the dedup window.
type DuplicateEventError struct {
	Link       string
	ExistingID string
	CapturedAt time.Time
}

func (e *DuplicateEventError) Error() string {
	return fmt.Sprintf("duplicate event: %s already saved at %s", e.Link, e.CapturedAt.Format(time.RFC3339))
}

// KV is the persistence the store needs. *storage.Storage satisfies it.
type KV interface {
	Get(key string, v any) (bool, error)
	Set(key string, v any) error
	Remove(key string) error
}

// Store is the ordered, most-recent-first collection of event records.
//
// Every operation reads the whole collection, computes the new value and
// writes it back. There is no locking and no version check, so two
// concurrent writers can lose updates.
type Store struct {
	kv     KV
	key    string
	window time.Duration
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithDedupWindow overrides DefaultDedupWindow.
func WithDedupWindow(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.window = d
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a store persisting under storage.KeyEvents.
func New(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		key:    storage.KeyEvents,
		window: DefaultDedupWindow,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Insert prepends rec and persists the collection. It returns a
// *DuplicateEventError if a record with the same link was captured less than
// the dedup window ago.
func (s *Store) Insert(rec *event.Record) error {
	records, _, err := s.read()
	if err != nil {
		return err
	}

	now := s.now()
	for _, existing := range records {
		if existing.Link != rec.Link {
			continue
		}
		if absDuration(now.Sub(existing.CapturedAt())) < s.window {
			logger.Warn("Duplicate event rejected", logger.Fields{
				"link":        rec.Link,
				"existing_id": existing.ID,
			})
			return &DuplicateEventError{
				Link:       rec.Link,
				ExistingID: existing.ID,
				CapturedAt: existing.CapturedAt(),
			}
		}
	}

	saved := *rec
	if saved.ID == "" {
		saved.ID = event.NewID(now)
	}
	for _, existing := range records {
		if existing.ID == saved.ID {
			return fmt.Errorf("event id %s already stored", saved.ID)
		}
	}
	if strings.TrimSpace(saved.Deadline) == "" {
		saved.Deadline = event.NotSpecified
	}
	if saved.EventName == "" {
		saved.EventName = event.UnknownEvent
	}
	rec.ID = saved.ID

	records = append([]event.Record{saved}, records...)
	if err := s.write(records); err != nil {
		return err
	}

	logger.Info("Event saved", logger.Fields{
		"id":       saved.ID,
		"source":   saved.Source,
		"deadline": saved.Deadline,
	})
	return nil
}

// LoadAll returns the stored records in stored order. Records missing an ID
// are assigned one, and the collection is re-persisted only in that case.
func (s *Store) LoadAll() ([]event.Record, error) {
	records, migrated, err := s.read()
	if err != nil {
		return nil, err
	}

	if migrated > 0 {
		if err := s.write(records); err != nil {
			return nil, err
		}
		logger.Info("Backfilled missing event ids", logger.Fields{"count": migrated})
	}

	return records, nil
}

// DeleteByID removes the record with the given id. Unknown ids are a no-op.
func (s *Store) DeleteByID(id string) error {
	records, _, err := s.read()
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ID != id {
			continue
		}
		records = append(records[:i], records[i+1:]...)
		if err := s.write(records); err != nil {
			return err
		}
		logger.Info("Event deleted", logger.Fields{"id": id})
		return nil
	}

	logger.Debug("Delete of unknown event ignored", logger.Fields{"id": id})
	return nil
}

// Clear removes the whole collection.
func (s *Store) Clear() error {
	if err := s.kv.Remove(s.key); err != nil {
		return fmt.Errorf("%w: clearing events: %w", ErrPersistence, err)
	}
	logger.Info("All events cleared", nil)
	return nil
}

// Stats loads the collection and computes its aggregate statistics.
func (s *Store) Stats() (Stats, error) {
	records, err := s.LoadAll()
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(records, s.now()), nil
}

// read loads the collection and backfills missing ids in memory, returning
// how many records were backfilled.
func (s *Store) read() ([]event.Record, int, error) {
	var records []event.Record
	if _, err := s.kv.Get(s.key, &records); err != nil {
		return nil, 0, fmt.Errorf("%w: loading events: %w", ErrPersistence, err)
	}

	now := s.now()
	migrated := 0
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = event.NewLegacyID(now)
			migrated++
		}
	}

	return records, migrated, nil
}

func (s *Store) write(records []event.Record) error {
	if records == nil {
		records = []event.Record{}
	}
	if err := s.kv.Set(s.key, records); err != nil {
		return fmt.Errorf("%w: saving events: %w", ErrPersistence, err)
	}
	return nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
