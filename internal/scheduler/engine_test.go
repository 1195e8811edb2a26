package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/sandeepkv93/remindd/internal/model"
)

type staticSource struct {
	mu    sync.Mutex
	items []model.Reminder
}

func (s *staticSource) DueOn(date model.Date) []model.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Reminder
	for _, r := range s.items {
		if r.Active && model.OccursOn(r, date) {
			out = append(out, r)
		}
	}
	return out
}

type panicSource struct{}

func (panicSource) DueOn(model.Date) []model.Reminder {
	panic("boom")
}

type captureSink struct {
	mu    sync.Mutex
	got   []Firing
	full  bool
	calls int
}

func (c *captureSink) Enqueue(f Firing) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.full {
		return false
	}
	c.got = append(c.got, f)
	return true
}

func (c *captureSink) firings() []Firing {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Firing(nil), c.got...)
}

func reminderAt(id, date, clock string, t *testing.T) model.Reminder {
	t.Helper()
	d, err := model.ParseDate(date)
	if err != nil {
		t.Fatalf("parse date %q: %v", date, err)
	}
	c, err := model.ParseClock(clock)
	if err != nil {
		t.Fatalf("parse clock %q: %v", clock, err)
	}
	return model.Reminder{
		ID:     id,
		Title:  id,
		Date:   d,
		At:     c,
		Color:  model.DefaultColor,
		Repeat: model.RepeatNone,
		Active: true,
	}
}

func TestTickFiresOncePerMinute(t *testing.T) {
	src := &staticSource{items: []model.Reminder{reminderAt("r1", "2024-03-15", "09:00", t)}}
	sink := &captureSink{}
	eng := NewEngine(src, sink)

	base := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		eng.tick(base.Add(time.Duration(i) * time.Second))
	}

	got := sink.firings()
	if len(got) != 1 {
		t.Fatalf("expected exactly one firing over the minute, got %d", len(got))
	}
	if got[0].Reminder.ID != "r1" {
		t.Fatalf("fired wrong reminder: %q", got[0].Reminder.ID)
	}
}

func TestTickRefiresAfterMinuteRollover(t *testing.T) {
	src := &staticSource{items: []model.Reminder{reminderAt("r1", "2024-03-15", "09:00", t)}}
	sink := &captureSink{}
	eng := NewEngine(src, sink)

	eng.tick(time.Date(2024, 3, 15, 9, 0, 30, 0, time.UTC))
	// Different minute, clock no longer matches, nothing fires.
	eng.tick(time.Date(2024, 3, 15, 9, 1, 0, 0, time.UTC))
	if n := len(sink.firings()); n != 1 {
		t.Fatalf("expected 1 firing after rollover to a non-matching minute, got %d", n)
	}

	// A daily reminder matching again next day fires again.
	src.mu.Lock()
	src.items[0].Repeat = model.RepeatDaily
	src.mu.Unlock()
	eng.tick(time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC))
	if n := len(sink.firings()); n != 2 {
		t.Fatalf("expected refire on the next matching minute, got %d firings", n)
	}
}

func TestTickIgnoresNonMatchingMinute(t *testing.T) {
	src := &staticSource{items: []model.Reminder{reminderAt("r1", "2024-03-15", "09:00", t)}}
	sink := &captureSink{}
	eng := NewEngine(src, sink)

	eng.tick(time.Date(2024, 3, 15, 8, 59, 59, 0, time.UTC))
	eng.tick(time.Date(2024, 3, 15, 9, 1, 0, 0, time.UTC))
	if n := len(sink.firings()); n != 0 {
		t.Fatalf("expected no firings outside the target minute, got %d", n)
	}
}

func TestTickMarksFiredEvenWhenSinkFull(t *testing.T) {
	src := &staticSource{items: []model.Reminder{reminderAt("r1", "2024-03-15", "09:00", t)}}
	sink := &captureSink{full: true}
	eng := NewEngine(src, sink)

	base := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	eng.tick(base)
	eng.tick(base.Add(time.Second))

	sink.mu.Lock()
	calls := sink.calls
	sink.mu.Unlock()
	if calls != 1 {
		t.Fatalf("expected a single enqueue attempt, got %d", calls)
	}
}

func TestTickRecoversFromSourcePanic(t *testing.T) {
	eng := NewEngine(panicSource{}, &captureSink{})
	// Must not propagate.
	eng.tick(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	eng.tick(time.Date(2024, 3, 15, 9, 0, 1, 0, time.UTC))
}

func TestEngineStartStop(t *testing.T) {
	src := &staticSource{}
	eng := NewEngine(src, &captureSink{}, WithTickInterval(time.Millisecond))

	eng.Start()
	eng.Start()
	time.Sleep(10 * time.Millisecond)
	eng.Stop()
	eng.Stop()
}

func TestEngineStopBeforeStart(t *testing.T) {
	eng := NewEngine(&staticSource{}, &captureSink{})
	eng.Stop()
}
