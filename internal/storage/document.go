package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sandeepkv93/remindd/internal/model"
)

var (
	ErrCorrupt = errors.New("storage: corrupt reminder document")
	ErrWrite   = errors.New("storage: write reminder document")
)

// reminderRecord is the wire form of one reminder in the persisted JSON
// array. Field names are part of the on-disk interface and must not
// change.
type reminderRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Color       string `json:"color"`
	Description string `json:"description"`
	RepeatType  string `json:"repeat_type"`
	IsActive    *bool  `json:"is_active"`
}

// RecordError describes one persisted record that could not be decoded
// and was skipped during load.
type RecordError struct {
	Index int
	Err   error
}

func (e RecordError) Error() string {
	return fmt.Sprintf("storage: record %d: %v", e.Index, e.Err)
}

// Document is the single persisted reminder file: a JSON array of
// reminder records, rewritten in full on every save.
type Document struct {
	path string
}

func NewDocument(path string) *Document {
	return &Document{path: path}
}

func (d *Document) Path() string { return d.path }

// Load reads the whole document. A missing file yields an empty set.
// Unparseable top-level JSON yields ErrCorrupt; individual malformed
// records are skipped and reported in the second return value, never as
// a hard failure. Missing is_active defaults to true; other malformed
// fields are normalized to safe defaults.
func (d *Document) Load(now time.Time) ([]model.Reminder, []RecordError, error) {
	raw, err := os.ReadFile(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	out := make([]model.Reminder, 0, len(entries))
	skipped := make([]RecordError, 0)
	for i, entry := range entries {
		var rec reminderRecord
		if err := json.Unmarshal(entry, &rec); err != nil {
			skipped = append(skipped, RecordError{Index: i, Err: err})
			continue
		}
		if rec.ID == "" {
			skipped = append(skipped, RecordError{Index: i, Err: errors.New("missing id")})
			continue
		}
		out = append(out, decodeRecord(rec, now))
	}
	return out, skipped, nil
}

// Save rewrites the document atomically: the new content lands in a temp
// file in the same directory and replaces the document via rename.
func (d *Document) Save(items []model.Reminder) error {
	records := make([]reminderRecord, 0, len(items))
	for _, item := range items {
		records = append(records, encodeRecord(item))
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(d.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Rename(tmp.Name(), d.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

func decodeRecord(rec reminderRecord, now time.Time) model.Reminder {
	active := true
	if rec.IsActive != nil {
		active = *rec.IsActive
	}
	r := model.Reminder{
		ID:          rec.ID,
		Title:       rec.Title,
		At:          model.Clock(rec.Time),
		Color:       rec.Color,
		Description: rec.Description,
		Repeat:      model.RepeatType(rec.RepeatType),
		Active:      active,
	}
	if date, err := model.ParseDate(rec.Date); err == nil {
		r.Date = date
	}
	return r.Normalize(now)
}

func encodeRecord(r model.Reminder) reminderRecord {
	active := r.Active
	return reminderRecord{
		ID:          r.ID,
		Title:       r.Title,
		Date:        r.Date.String(),
		Time:        string(r.At),
		Color:       r.Color,
		Description: r.Description,
		RepeatType:  string(r.Repeat),
		IsActive:    &active,
	}
}
