package scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sandeepkv93/remindd/internal/model"
)

// Engine ticks race against source mutation and sink consumption. Run
// with -race to catch synchronization regressions.
func TestEngineConcurrentMutation(t *testing.T) {
	src := &staticSource{}
	n := NewNotifier(WithQueueSize(256))
	eng := NewEngine(src, n)

	base := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			r := reminderAt(fmt.Sprintf("r%03d", i), "2024-03-15", "09:00", t)
			src.mu.Lock()
			src.items = append(src.items, r)
			if i%3 == 0 && len(src.items) > 1 {
				src.items = src.items[1:]
			}
			src.mu.Unlock()
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			eng.tick(base.Add(time.Duration(i) * time.Millisecond))
		}
	}()

	wg.Wait()

	// Drain whatever made it through; order and count depend on
	// interleaving, only safety is asserted here.
	d := &manualDispatcher{}
	n.SetCallback(func(model.Reminder) {})
	n.Bind(d)
	d.runOne(t)
}
