package tracker

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/deadline-tracker/internal/event"
	"github.com/pfrederiksen/deadline-tracker/internal/storage"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore(t *testing.T) (*Store, *storage.Storage, *clock) {
	t.Helper()

	kv, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	c := &clock{now: time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)}
	return New(kv, WithClock(c.Now)), kv, c
}

func record(link string, at time.Time) *event.Record {
	return &event.Record{
		EventName:      "Global AI Hackathon",
		Deadline:       "March 20, 2026",
		Source:         event.SourceDevpost,
		Action:         event.ActionSubmitProject,
		Link:           link,
		RegisteredDate: event.FormatRegisteredDate(at),
		Timestamp:      at.UnixMilli(),
	}
}

func TestStore_InsertLoadRoundTrip(t *testing.T) {
	store, _, c := newTestStore(t)

	rec := record("https://devpost.com/hackathon/123", c.now)
	rec.ID = "event_fixed_id"
	if err := store.Insert(rec); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("LoadAll() returned %d records, want 1", len(got))
	}
	if got[0] != *rec {
		t.Errorf("LoadAll()[0] = %+v, want %+v", got[0], *rec)
	}
}

func TestStore_InsertAssignsID(t *testing.T) {
	store, _, c := newTestStore(t)

	rec := record("https://devpost.com/hackathon/1", c.now)
	rec.Deadline = ""
	rec.EventName = ""
	if err := store.Insert(rec); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if !strings.HasPrefix(rec.ID, "event_") {
		t.Errorf("Insert() assigned ID %q, want event_ prefix", rec.ID)
	}

	got, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if got[0].ID != rec.ID {
		t.Errorf("stored ID = %q, want %q", got[0].ID, rec.ID)
	}
	if got[0].Deadline != event.NotSpecified {
		t.Errorf("Deadline = %q, want %q", got[0].Deadline, event.NotSpecified)
	}
	if got[0].EventName != event.UnknownEvent {
		t.Errorf("EventName = %q, want %q", got[0].EventName, event.UnknownEvent)
	}
}

func TestStore_InsertRejectsIDCollision(t *testing.T) {
	store, _, c := newTestStore(t)

	first := record("https://devpost.com/a", c.now)
	first.ID = "same"
	second := record("https://devpost.com/b", c.now)
	second.ID = "same"

	if err := store.Insert(first); err != nil {
		t.Fatalf("Insert(first) error = %v", err)
	}
	if err := store.Insert(second); err == nil {
		t.Error("Insert() with colliding id should fail")
	}
}

func TestStore_MostRecentFirst(t *testing.T) {
	store, _, c := newTestStore(t)

	links := []string{"https://a.example", "https://b.example", "https://c.example"}
	for _, link := range links {
		if err := store.Insert(record(link, c.now)); err != nil {
			t.Fatalf("Insert(%s) error = %v", link, err)
		}
		c.Advance(time.Minute)
	}

	got, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	for i, want := range []string{"https://c.example", "https://b.example", "https://a.example"} {
		if got[i].Link != want {
			t.Errorf("record %d link = %q, want %q", i, got[i].Link, want)
		}
	}
}

func TestStore_DuplicateWindow(t *testing.T) {
	tests := []struct {
		name    string
		gap     time.Duration
		wantDup bool
	}{
		{"same instant", 0, true},
		{"one hour apart", time.Hour, true},
		{"just inside window", 24*time.Hour - time.Millisecond, true},
		{"exactly window", 24 * time.Hour, false},
		{"25 hours apart", 25 * time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _, c := newTestStore(t)
			link := "https://devpost.com/hackathon/123"

			if err := store.Insert(record(link, c.now)); err != nil {
				t.Fatalf("first Insert() error = %v", err)
			}

			c.Advance(tt.gap)
			err := store.Insert(record(link, c.now))

			var dup *DuplicateEventError
			if errors.As(err, &dup) != tt.wantDup {
				t.Fatalf("second Insert() error = %v, want duplicate %v", err, tt.wantDup)
			}
			if tt.wantDup {
				if dup.Link != link || dup.ExistingID == "" {
					t.Errorf("DuplicateEventError = %+v", dup)
				}
				return
			}
			if err != nil {
				t.Fatalf("second Insert() error = %v", err)
			}

			got, _ := store.LoadAll()
			if len(got) != 2 {
				t.Errorf("LoadAll() returned %d records, want 2", len(got))
			}
		})
	}
}

func TestStore_DedupWindowOption(t *testing.T) {
	kv, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	c := &clock{now: time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)}
	store := New(kv, WithClock(c.Now), WithDedupWindow(time.Hour))

	link := "https://lu.ma/abc"
	if err := store.Insert(record(link, c.now)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	c.Advance(2 * time.Hour)
	if err := store.Insert(record(link, c.now)); err != nil {
		t.Errorf("Insert() outside a 1h window error = %v", err)
	}
}

func TestStore_LoadAllBackfillsIDs(t *testing.T) {
	store, kv, c := newTestStore(t)

	legacy := []event.Record{
		{EventName: "Old One", Deadline: "Not found", Link: "https://a.example", Timestamp: c.now.UnixMilli()},
		{ID: "event_kept", EventName: "Has ID", Link: "https://b.example", Timestamp: c.now.UnixMilli()},
	}
	if err := kv.Set(storage.KeyEvents, legacy); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	first, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if !strings.HasPrefix(first[0].ID, "event_") {
		t.Errorf("backfilled ID = %q, want event_ prefix", first[0].ID)
	}
	if first[1].ID != "event_kept" {
		t.Errorf("existing ID changed to %q", first[1].ID)
	}

	second, err := store.LoadAll()
	if err != nil {
		t.Fatalf("second LoadAll() error = %v", err)
	}
	if second[0].ID != first[0].ID {
		t.Errorf("backfill not persisted: %q then %q", first[0].ID, second[0].ID)
	}
}

func TestStore_LoadAllDoesNotWriteWhenClean(t *testing.T) {
	kv := &countingKV{}
	store := New(kv)

	kv.records = []event.Record{{ID: "event_1", Link: "https://a.example"}}
	if _, err := store.LoadAll(); err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if kv.sets != 0 {
		t.Errorf("LoadAll() wrote %d times, want 0", kv.sets)
	}

	kv.records = append(kv.records, event.Record{Link: "https://b.example"})
	if _, err := store.LoadAll(); err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if kv.sets != 1 {
		t.Errorf("LoadAll() with legacy record wrote %d times, want 1", kv.sets)
	}
}

func TestStore_DeleteByID(t *testing.T) {
	store, _, c := newTestStore(t)

	for _, id := range []string{"event_a", "event_b"} {
		rec := record("https://example.com/"+id, c.now)
		rec.ID = id
		if err := store.Insert(rec); err != nil {
			t.Fatalf("Insert(%s) error = %v", id, err)
		}
	}

	if err := store.DeleteByID("event_a"); err != nil {
		t.Fatalf("DeleteByID() error = %v", err)
	}
	got, _ := store.LoadAll()
	if len(got) != 1 || got[0].ID != "event_b" {
		t.Errorf("after delete got %+v, want only event_b", got)
	}

	if err := store.DeleteByID("event_missing"); err != nil {
		t.Errorf("DeleteByID() on unknown id error = %v", err)
	}
	got, _ = store.LoadAll()
	if len(got) != 1 {
		t.Errorf("unknown delete changed collection to %d records", len(got))
	}
}

func TestStore_DeleteUnknownDoesNotWrite(t *testing.T) {
	kv := &countingKV{records: []event.Record{{ID: "event_1"}}}
	store := New(kv)

	if err := store.DeleteByID("event_2"); err != nil {
		t.Fatalf("DeleteByID() error = %v", err)
	}
	if kv.sets != 0 {
		t.Errorf("DeleteByID() of unknown id wrote %d times, want 0", kv.sets)
	}
}

func TestStore_Clear(t *testing.T) {
	store, kv, c := newTestStore(t)

	if err := kv.Set(storage.KeyTheme, "dark"); err != nil {
		t.Fatal(err)
	}
	if err := store.Insert(record("https://a.example", c.now)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	got, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("LoadAll() after Clear returned %d records", len(got))
	}

	var theme string
	if found, _ := kv.Get(storage.KeyTheme, &theme); !found || theme != "dark" {
		t.Errorf("Clear() touched the theme key: %q, %v", theme, found)
	}
}

func TestStore_PersistenceFailure(t *testing.T) {
	kv := &countingKV{failSet: true}
	store := New(kv)

	err := store.Insert(record("https://a.example", time.Now()))
	if !errors.Is(err, ErrPersistence) {
		t.Errorf("Insert() error = %v, want ErrPersistence", err)
	}

	kv = &countingKV{failGet: true}
	store = New(kv)
	if _, err := store.LoadAll(); !errors.Is(err, ErrPersistence) {
		t.Errorf("LoadAll() error = %v, want ErrPersistence", err)
	}
}

// countingKV is an in-memory KV holding only the events collection.
type countingKV struct {
	records []event.Record
	sets    int
	failGet bool
	failSet bool
}

func (k *countingKV) Get(_ string, v any) (bool, error) {
	if k.failGet {
		return false, errors.New("read failed")
	}
	if k.records == nil {
		return false, nil
	}
	out := v.(*[]event.Record)
	*out = append([]event.Record(nil), k.records...)
	return true, nil
}

func (k *countingKV) Set(_ string, v any) error {
	if k.failSet {
		return errors.New("write failed")
	}
	k.sets++
	k.records = append([]event.Record(nil), v.([]event.Record)...)
	return nil
}

func (k *countingKV) Remove(string) error {
	k.records = nil
	return nil
}
