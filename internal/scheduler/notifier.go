package scheduler

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/remindd/internal/model"
)

const (
	defaultQueueSize   = 64
	defaultDrainPeriod = 250 * time.Millisecond
)

// Dispatcher schedules a function onto the presentation context after a
// delay. The TUI implements it over the program's message loop, so the
// callback always runs on the single rendering goroutine.
type Dispatcher interface {
	After(d time.Duration, fn func())
}

// Callback receives one due reminder inside the presentation context.
type Callback func(r model.Reminder)

// Notifier bridges the engine goroutine and the presentation context.
// Enqueue is safe from any goroutine; the drain cycle runs entirely on
// the dispatcher and hands firings to the callback in FIFO order.
type Notifier struct {
	queue   chan Firing
	dropped atomic.Uint64
	period  time.Duration
	logger  *slog.Logger

	mu         sync.Mutex
	dispatcher Dispatcher
	callback   Callback
	draining   bool
}

type NotifierOption func(*Notifier)

func WithQueueSize(n int) NotifierOption {
	return func(nf *Notifier) {
		if n > 0 {
			nf.queue = make(chan Firing, n)
		}
	}
}

func WithDrainPeriod(d time.Duration) NotifierOption {
	return func(nf *Notifier) {
		if d > 0 {
			nf.period = d
		}
	}
}

func WithNotifierLogger(logger *slog.Logger) NotifierOption {
	return func(nf *Notifier) {
		if logger != nil {
			nf.logger = logger
		}
	}
}

func NewNotifier(opts ...NotifierOption) *Notifier {
	n := &Notifier{
		queue:  make(chan Firing, defaultQueueSize),
		period: defaultDrainPeriod,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Enqueue offers a firing without blocking. It reports false and counts
// the drop when the queue is full.
func (n *Notifier) Enqueue(f Firing) bool {
	select {
	case n.queue <- f:
		return true
	default:
		n.dropped.Add(1)
		return false
	}
}

// Dropped returns how many firings were rejected by a full queue.
func (n *Notifier) Dropped() uint64 {
	return n.dropped.Load()
}

// SetCallback installs or replaces the per-reminder callback. A nil
// callback makes the drain discard what it pops.
func (n *Notifier) SetCallback(cb Callback) {
	n.mu.Lock()
	n.callback = cb
	n.mu.Unlock()
}

// Bind attaches the notifier to a presentation dispatcher and starts
// the periodic drain. Rebinding swaps the dispatcher; the drain cycle is
// started at most once.
func (n *Notifier) Bind(d Dispatcher) {
	if d == nil {
		return
	}
	n.mu.Lock()
	n.dispatcher = d
	already := n.draining
	n.draining = true
	n.mu.Unlock()
	if !already {
		d.After(n.period, n.drainStep)
	}
}

// drainStep runs on the presentation context: pop everything queued,
// invoke the callback per firing, then reschedule itself.
func (n *Notifier) drainStep() {
	n.mu.Lock()
	cb := n.callback
	d := n.dispatcher
	n.mu.Unlock()

	for {
		select {
		case f := <-n.queue:
			if cb == nil {
				continue
			}
			n.deliver(cb, f)
		default:
			if d != nil {
				d.After(n.period, n.drainStep)
			}
			return
		}
	}
}

// deliver isolates one callback invocation so a panicking handler
// cannot take the drain cycle down with it.
func (n *Notifier) deliver(cb Callback, f Firing) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("reminder callback panicked", "id", f.Reminder.ID, "panic", r)
		}
	}()
	cb(f.Reminder)
}
