package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/remindd/internal/model"
)

func testDocument(t *testing.T) *Document {
	t.Helper()
	return NewDocument(filepath.Join(t.TempDir(), "reminders.json"))
}

func sampleReminders() []model.Reminder {
	return []model.Reminder{
		{
			ID:          "r1",
			Title:       "Standup",
			Date:        model.NewDate(2024, time.January, 1),
			At:          "09:00",
			Color:       "#FF6B6B",
			Description: "daily sync",
			Repeat:      model.RepeatDaily,
			Active:      true,
		},
		{
			ID:     "r2",
			Title:  "Dentist",
			Date:   model.NewDate(2024, time.March, 20),
			At:     "14:30",
			Color:  "#4A90E2",
			Repeat: model.RepeatNone,
			Active: false,
		},
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := testDocument(t)
	want := sampleReminders()
	if err := doc.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, skipped, err := doc.Load(time.Now())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("expected no skipped records, got %d", len(skipped))
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d reminders, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("round trip mismatch at %d:\n got %+v\nwant %+v", i, got[i], want[i])
		}
	}
}

func TestDocumentRoundTripEmpty(t *testing.T) {
	doc := testDocument(t)
	if err := doc.Save(nil); err != nil {
		t.Fatalf("save empty: %v", err)
	}
	got, _, err := doc.Load(time.Now())
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty set, got %d", len(got))
	}
}

func TestDocumentMissingFile(t *testing.T) {
	doc := testDocument(t)
	got, skipped, err := doc.Load(time.Now())
	if err != nil {
		t.Fatalf("expected missing file to load empty, got %v", err)
	}
	if len(got) != 0 || len(skipped) != 0 {
		t.Fatalf("expected empty result, got %d items %d skipped", len(got), len(skipped))
	}
}

func TestDocumentCorruptTopLevel(t *testing.T) {
	doc := testDocument(t)
	if err := os.WriteFile(doc.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, _, err := doc.Load(time.Now())
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestDocumentSkipsMalformedRecords(t *testing.T) {
	doc := testDocument(t)
	raw := `[
		{"id":"good","title":"ok","date":"2024-01-01","time":"09:00","color":"#FF6B6B","repeat_type":"none","is_active":true},
		"not an object",
		{"title":"no id","date":"2024-01-01","time":"09:00"}
	]`
	if err := os.WriteFile(doc.Path(), []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, skipped, err := doc.Load(time.Now())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].ID != "good" {
		t.Fatalf("expected only the good record, got %+v", got)
	}
	if len(skipped) != 2 {
		t.Fatalf("expected 2 skipped records, got %d", len(skipped))
	}
	if skipped[0].Index != 1 || skipped[1].Index != 2 {
		t.Fatalf("unexpected skip indices: %+v", skipped)
	}
}

func TestDocumentDefaultsMissingFields(t *testing.T) {
	doc := testDocument(t)
	raw := `[{"id":"r1","title":"legacy","date":"2024-05-01","time":"bad-time","color":"blue"}]`
	if err := os.WriteFile(doc.Path(), []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	got, _, err := doc.Load(now)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(got))
	}
	r := got[0]
	if !r.Active {
		t.Fatal("expected missing is_active to default true")
	}
	if r.At != model.DefaultClock {
		t.Fatalf("expected default clock, got %q", r.At)
	}
	if r.Color != model.DefaultColor {
		t.Fatalf("expected default color, got %q", r.Color)
	}
	if r.Repeat != model.RepeatNone {
		t.Fatalf("expected repeat none, got %q", r.Repeat)
	}
}

func TestDocumentBadDateDefaultsToToday(t *testing.T) {
	doc := testDocument(t)
	raw := `[{"id":"r1","title":"x","date":"2024-02-31","time":"09:00","color":"#FF6B6B","repeat_type":"none"}]`
	if err := os.WriteFile(doc.Path(), []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	got, _, err := doc.Load(now)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got[0].Date != model.NewDate(2024, time.June, 1) {
		t.Fatalf("expected today as date default, got %s", got[0].Date)
	}
}

func TestDocumentSaveLeavesNoTempFiles(t *testing.T) {
	doc := testDocument(t)
	if err := doc.Save(sampleReminders()); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, err := os.ReadDir(filepath.Dir(doc.Path()))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != filepath.Base(doc.Path()) {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected only the document file, got %v", names)
	}
}
