package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgramSender is the piece of *tea.Program the dispatcher needs.
type ProgramSender interface {
	Send(msg tea.Msg)
}

// RunOnUIMsg carries a function into the update loop, where it runs on
// the rendering goroutine.
type RunOnUIMsg struct {
	Fn func()
}

// UIDispatcher schedules work onto the program's message loop. It backs
// the notifier drain, so queued reminders surface inside Update rather
// than on the engine goroutine.
type UIDispatcher struct {
	Sender ProgramSender
}

func (d UIDispatcher) After(delay time.Duration, fn func()) {
	go func() {
		time.Sleep(delay)
		d.Sender.Send(RunOnUIMsg{Fn: fn})
	}()
}
