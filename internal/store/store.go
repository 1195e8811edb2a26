// Package store owns the in-memory reminder set and its persistence.
// It is the only component that mutates reminders; the firing loop and
// the presentation layer both read point-in-time snapshots, so neither
// ever observes a half-applied mutation.
package store

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/storage"
)

// Store keeps reminders keyed by id, preserving insertion order: the
// persisted array and equal-fire-time query results both follow it.
// Every successful mutation rewrites the whole document; a failing write
// is logged and the session continues in memory.
type Store struct {
	mu        sync.Mutex
	reminders map[string]model.Reminder
	order     []string

	// persistMu serializes document writes so a slow disk never extends
	// the time mu is held.
	persistMu sync.Mutex
	doc       *storage.Document

	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock injects the wall clock used for normalization defaults and
// id generation. Tests pin it.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open builds a Store over doc, loading it once. A nil doc means a
// memory-only store. A corrupt document yields an empty store, logged,
// never an error; individually malformed records are skipped and logged.
func Open(doc *storage.Document, opts ...Option) *Store {
	s := &Store{
		reminders: make(map[string]model.Reminder),
		doc:       doc,
		logger:    slog.New(slog.DiscardHandler),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if doc == nil {
		return s
	}

	items, skipped, err := doc.Load(s.now())
	if err != nil {
		s.logger.Warn("reminder document unreadable, starting empty", "path", doc.Path(), "err", err)
		return s
	}
	for _, rec := range skipped {
		s.logger.Warn("skipping malformed reminder record", "index", rec.Index, "err", rec.Err)
	}
	for _, r := range items {
		if _, exists := s.reminders[r.ID]; exists {
			s.logger.Warn("dropping duplicate reminder id on load", "id", r.ID)
			continue
		}
		s.reminders[r.ID] = r
		s.order = append(s.order, r.ID)
	}
	return s
}

// Add normalizes and inserts a reminder, assigning an id when absent,
// and persists. Returns the id.
func (s *Store) Add(r model.Reminder) string {
	now := s.now()
	r = r.Normalize(now)
	if r.ID == "" {
		r.ID = newID(r, now)
	}

	s.mu.Lock()
	if _, exists := s.reminders[r.ID]; !exists {
		s.order = append(s.order, r.ID)
	}
	s.reminders[r.ID] = r
	s.mu.Unlock()

	s.persist()
	return r.ID
}

// Update replaces the reminder with the same id, keeping its insertion
// position. Unknown ids are a no-op and do not persist.
func (s *Store) Update(r model.Reminder) {
	r = r.Normalize(s.now())

	s.mu.Lock()
	_, exists := s.reminders[r.ID]
	if exists {
		s.reminders[r.ID] = r
	}
	s.mu.Unlock()

	if exists {
		s.persist()
	}
}

// Delete removes a reminder and persists. Unknown ids are a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	_, exists := s.reminders[id]
	if exists {
		delete(s.reminders, id)
		for i, other := range s.order {
			if other == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()

	if exists {
		s.persist()
	}
}

// Get returns one reminder by id.
func (s *Store) Get(id string) (model.Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reminders[id]
	return r, ok
}

// All returns a snapshot of every reminder in insertion order, active or
// not. Callers own the returned slice.
func (s *Store) All() []model.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// DueOn returns the active reminders occurring on date: exact-date
// matches unioned with recurring matches, ordered by fire time then
// insertion order.
func (s *Store) DueOn(date model.Date) []model.Reminder {
	return s.DueForDates([]model.Date{date})[date]
}

// DueForDates is the batched form of DueOn; results are identical to
// calling DueOn once per date.
func (s *Store) DueForDates(dates []model.Date) map[model.Date][]model.Reminder {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	return model.DueByDate(snapshot, dates)
}

func (s *Store) snapshotLocked() []model.Reminder {
	out := make([]model.Reminder, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.reminders[id])
	}
	return out
}

// persist rewrites the document from the latest in-memory state. Writes
// are serialized; the state snapshot is taken after the write slot is
// acquired so the final write always carries the newest set.
func (s *Store) persist() {
	if s.doc == nil {
		return
	}
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.doc.Save(snapshot); err != nil {
		s.logger.Warn("persisting reminders failed, continuing in memory", "path", s.doc.Path(), "err", err)
	}
}

// newID composes a stable unique id the way the legacy documents did:
// date, time and a nanosecond suffix, readable in the raw JSON.
func newID(r model.Reminder, now time.Time) string {
	return fmt.Sprintf("%s_%s_%d", r.Date, r.At, now.UnixNano())
}
