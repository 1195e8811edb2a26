package scheduler

import (
	"testing"
	"time"

	"github.com/sandeepkv93/remindd/internal/model"
)

// manualDispatcher collects scheduled functions and runs them only when
// the test says so, standing in for the TUI message loop.
type manualDispatcher struct {
	pending []func()
}

func (d *manualDispatcher) After(_ time.Duration, fn func()) {
	d.pending = append(d.pending, fn)
}

func (d *manualDispatcher) runOne(t *testing.T) {
	t.Helper()
	if len(d.pending) == 0 {
		t.Fatalf("no drain step scheduled")
	}
	fn := d.pending[0]
	d.pending = d.pending[1:]
	fn()
}

func firingFor(id string) Firing {
	return Firing{
		Reminder: model.Reminder{ID: id, Title: id, Active: true},
		At:       time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
	}
}

func TestNotifierDeliversInOrder(t *testing.T) {
	n := NewNotifier()
	var got []string
	n.SetCallback(func(r model.Reminder) { got = append(got, r.ID) })

	d := &manualDispatcher{}
	n.Bind(d)

	for _, id := range []string{"a", "b", "c"} {
		if !n.Enqueue(firingFor(id)) {
			t.Fatalf("enqueue %q rejected", id)
		}
	}
	d.runOne(t)

	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("expected FIFO delivery [a b c], got %v", got)
	}
	// Drain rescheduled itself.
	if len(d.pending) != 1 {
		t.Fatalf("expected one rescheduled drain step, got %d", len(d.pending))
	}
}

func TestNotifierEnqueueFullQueue(t *testing.T) {
	n := NewNotifier(WithQueueSize(2))
	if !n.Enqueue(firingFor("a")) || !n.Enqueue(firingFor("b")) {
		t.Fatalf("queue rejected within capacity")
	}
	if n.Enqueue(firingFor("c")) {
		t.Fatalf("expected rejection when queue is full")
	}
	if n.Dropped() != 1 {
		t.Fatalf("expected 1 dropped, got %d", n.Dropped())
	}
}

func TestNotifierDiscardsWithoutCallback(t *testing.T) {
	n := NewNotifier()
	d := &manualDispatcher{}
	n.Bind(d)

	n.Enqueue(firingFor("a"))
	d.runOne(t)

	// Queue drained even with no callback installed.
	var got []string
	n.SetCallback(func(r model.Reminder) { got = append(got, r.ID) })
	d.runOne(t)
	if len(got) != 0 {
		t.Fatalf("expected discarded firing to stay gone, got %v", got)
	}
}

func TestNotifierCallbackPanicIsolated(t *testing.T) {
	n := NewNotifier()
	var got []string
	n.SetCallback(func(r model.Reminder) {
		if r.ID == "bad" {
			panic("handler blew up")
		}
		got = append(got, r.ID)
	})

	d := &manualDispatcher{}
	n.Bind(d)
	n.Enqueue(firingFor("bad"))
	n.Enqueue(firingFor("good"))
	d.runOne(t)

	if len(got) != 1 || got[0] != "good" {
		t.Fatalf("expected delivery to continue past panic, got %v", got)
	}
}

func TestNotifierBindIdempotent(t *testing.T) {
	n := NewNotifier()
	d := &manualDispatcher{}
	n.Bind(d)
	n.Bind(d)
	if len(d.pending) != 1 {
		t.Fatalf("expected a single drain schedule after double bind, got %d", len(d.pending))
	}

	// Rebinding swaps the dispatcher without doubling the cycle.
	d2 := &manualDispatcher{}
	n.Bind(d2)
	d.runOne(t)
	if len(d2.pending) != 1 {
		t.Fatalf("expected drain to reschedule on the new dispatcher, got %d", len(d2.pending))
	}
}

func TestNotifierEngineRoundTrip(t *testing.T) {
	n := NewNotifier()
	var got []string
	n.SetCallback(func(r model.Reminder) { got = append(got, r.ID) })
	d := &manualDispatcher{}
	n.Bind(d)

	src := &staticSource{items: []model.Reminder{reminderAt("r1", "2024-03-15", "09:00", t)}}
	eng := NewEngine(src, n)
	eng.tick(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	d.runOne(t)

	if len(got) != 1 || got[0] != "r1" {
		t.Fatalf("expected engine firing to reach callback, got %v", got)
	}
}
