package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/sandeepkv93/remindd/internal/model"
)

const (
	defaultTick = time.Second
	minuteKey   = "2006-01-02 15:04"
)

// DueSource answers "which active reminders occur on this date". The
// reminder store implements it; its snapshots make each tick's read safe
// against concurrent mutation.
type DueSource interface {
	DueOn(date model.Date) []model.Reminder
}

// Sink receives firings from the engine. Enqueue must not block; it
// reports whether the firing was accepted.
type Sink interface {
	Enqueue(f Firing) bool
}

// Firing is one reminder becoming due at a wall-clock minute.
type Firing struct {
	Reminder model.Reminder
	At       time.Time
}

// Engine is the firing loop. Each instance owns its ticker, its stop
// channel and its minute dedup set, so independent engines can coexist
// in one process.
type Engine struct {
	source   DueSource
	sink     Sink
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	started bool
	stopped bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	// Loop-goroutine state: which minute we are in and which reminder
	// ids already fired within it.
	lastMinute string
	fired      map[string]struct{}
}

type EngineOption func(*Engine)

func WithTickInterval(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithEngineClock pins the engine's wall clock. Tests drive tick()
// directly with it.
func WithEngineClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func NewEngine(source DueSource, sink Sink, opts ...EngineOption) *Engine {
	e := &Engine{
		source:   source,
		sink:     sink,
		interval: defaultTick,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		fired:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start launches the loop goroutine. Calling it twice is a no-op.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	go e.loop()
}

// Stop signals the loop and waits for it to exit. Safe to call more
// than once, and before Start.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) loop() {
	defer close(e.doneCh)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopCh:
			return
		case <-ticker.C:
			e.tick(e.now())
		}
	}
}

// tick evaluates one poll: reset the dedup set on a minute rollover,
// query today's due reminders and emit the ones matching the current
// minute that have not fired within it. A panic anywhere in the
// evaluation is logged and the loop carries on next tick.
func (e *Engine) tick(now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("reminder evaluation panicked, skipping tick", "panic", r)
		}
	}()

	key := now.Format(minuteKey)
	if key != e.lastMinute {
		e.lastMinute = key
		clear(e.fired)
	}

	today := model.DateOf(now)
	current := model.ClockOf(now)
	for _, r := range e.source.DueOn(today) {
		if r.At != current {
			continue
		}
		if _, done := e.fired[r.ID]; done {
			continue
		}
		// Marked fired even when the sink is full: at-most-once wins.
		e.fired[r.ID] = struct{}{}
		if !e.sink.Enqueue(Firing{Reminder: r, At: now}) {
			e.logger.Warn("delivery queue full, dropping firing", "id", r.ID)
		}
	}
}
