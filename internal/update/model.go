package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/storage"
)

type View string

const (
	ViewCalendar View = "Calendar"
	ViewDay      View = "Day"
	ViewEdit     View = "Edit"
	ViewHistory  View = "History"
)

// ReminderStore is the slice of the reminder store the TUI needs. The
// concrete store satisfies it; tests substitute an in-memory fake.
type ReminderStore interface {
	Add(r model.Reminder) string
	Update(r model.Reminder)
	Delete(id string)
	Get(id string) (model.Reminder, bool)
	All() []model.Reminder
	DueOn(date model.Date) []model.Reminder
	DueForDates(dates []model.Date) map[model.Date][]model.Reminder
}

// HistorySource reads back recorded firings for the history screen. A
// nil source disables the screen gracefully.
type HistorySource interface {
	Recent(ctx context.Context, limit int) ([]storage.Firing, error)
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Calendar string
	Day      string
	History  string
	Help     string
	Quit     string
}

// Popup is one on-screen reminder alert. At most one popup per
// reminder id is open at a time; further firings for the same id are
// swallowed until it closes.
type Popup struct {
	Reminder model.Reminder
	FiredAt  time.Time
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// editField indexes the focusable edit form inputs in tab order.
type editField int

const (
	fieldTitle editField = iota
	fieldDate
	fieldTime
	fieldColor
	fieldDescription
	fieldCount
)

type EditState struct {
	ID     string
	Repeat model.RepeatType
	Active bool
	Focus  editField
	Err    string
}

type Model struct {
	CurrentView View
	Focus       model.Date
	DayCursor   int
	Store       ReminderStore
	History     HistorySource
	Popups      []Popup
	Palette     CommandPaletteState
	Edit        EditState
	Status      StatusBar
	Keys        GlobalKeyMap
	HelpVisible bool
	Quitting    bool
	LastError   error

	DesktopEnabled bool
	notifier       DesktopNotifier
	now            func() time.Time
	cfg            RuntimeConfig

	popupOpen    map[string]bool
	historyRows  []storage.Firing
	// Bubble components used for rich TUI controls
	commandInput textinput.Model
	titleInput   textinput.Model
	dateInput    textinput.Model
	timeInput    textinput.Model
	colorInput   textinput.Model
	descArea     textarea.Model
	historyTable table.Model
	detailView   viewport.Model
	helpModel    help.Model
}

type DesktopNotifier interface {
	Send(title, body string) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(string, string) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(title, body string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", title, body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(body), escapeAppleScript(title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// ReminderDueMsg crosses from the delivery callback into the update
// loop.
type ReminderDueMsg struct {
	Reminder model.Reminder
	At       time.Time
}

type PopupExpiredMsg struct {
	ID string
}

type HistoryLoadedMsg struct {
	Rows []storage.Firing
	Err  error
}

func NewModel(store ReminderStore) Model {
	return NewModelWithConfig(store, nil, NoopDesktopNotifier{}, DefaultRuntimeConfig())
}

func NewModelWithConfig(store ReminderStore, history HistorySource, notifier DesktopNotifier, cfg RuntimeConfig) Model {
	m := Model{
		CurrentView:    ViewCalendar,
		Store:          store,
		History:        history,
		DesktopEnabled: cfg.DesktopNotifications,
		notifier:       notifier,
		now:            time.Now,
		cfg:            cfg,
		popupOpen:      make(map[string]bool),
		Keys: GlobalKeyMap{
			Calendar: "1",
			Day:      "2",
			History:  "3",
			Help:     "?",
			Quit:     "q",
		},
	}
	if m.notifier == nil {
		m.notifier = NoopDesktopNotifier{}
	}
	m.Focus = model.DateOf(m.now())
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Placeholder = "add dentist date:2026-09-01 time:09:00"
	m.commandInput.CharLimit = 160
	m.commandInput.Width = 48

	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "title"
	m.titleInput.CharLimit = 120
	m.titleInput.Width = 40

	m.dateInput = textinput.New()
	m.dateInput.Placeholder = "2026-09-01"
	m.dateInput.CharLimit = 10
	m.dateInput.Width = 12

	m.timeInput = textinput.New()
	m.timeInput.Placeholder = "09:00"
	m.timeInput.CharLimit = 5
	m.timeInput.Width = 7

	m.colorInput = textinput.New()
	m.colorInput.Placeholder = model.DefaultColor
	m.colorInput.CharLimit = 7
	m.colorInput.Width = 9

	m.descArea = textarea.New()
	m.descArea.Placeholder = "notes (markdown)"
	m.descArea.SetWidth(48)
	m.descArea.SetHeight(4)

	m.historyTable = table.New(
		table.WithColumns([]table.Column{
			{Title: "Fired", Width: 20},
			{Title: "Title", Width: 26},
			{Title: "Delivered", Width: 9},
		}),
		table.WithHeight(12),
	)

	m.detailView = viewport.New(48, 8)
	m.helpModel = help.New()
}

// WithClock pins the model's wall clock for tests.
func (m Model) WithClock(now func() time.Time) Model {
	if now != nil {
		m.now = now
		m.Focus = model.DateOf(now())
	}
	return m
}
