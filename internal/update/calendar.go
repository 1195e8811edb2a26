package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/remindd/internal/model"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		m.setFocus(m.Focus.AddDays(-1))
	case "l", "right":
		m.setFocus(m.Focus.AddDays(1))
	case "k", "up":
		m.setFocus(m.Focus.AddDays(-7))
	case "j", "down":
		m.setFocus(m.Focus.AddDays(7))
	case "H", "pgup":
		m.setFocus(model.DateOf(m.Focus.Time().AddDate(0, -1, 0)))
	case "L", "pgdown":
		m.setFocus(model.DateOf(m.Focus.Time().AddDate(0, 1, 0)))
	case "t":
		m.setFocus(model.DateOf(m.now()))
	case "enter":
		m.CurrentView = ViewDay
		m.DayCursor = 0
	case "a":
		return m.openEditForm(model.Reminder{Date: m.Focus}), nil
	}
	return m, nil
}

func (m *Model) setFocus(d model.Date) {
	m.Focus = d
	m.DayCursor = 0
	m.Status = StatusBar{Text: fmt.Sprintf("focus: %s", d), IsError: false}
}

// monthDates returns the grid of the focused month, Monday-first,
// padded to whole weeks with the neighboring months' days.
func (m Model) monthDates() []model.Date {
	first := model.NewDate(m.Focus.Year, m.Focus.Month, 1)
	lead := (int(first.Weekday()) + 6) % 7
	start := first.AddDays(-lead)

	lastDay := model.DateOf(first.Time().AddDate(0, 1, -1))
	span := lead + lastDay.Day
	weeks := (span + 6) / 7

	dates := make([]model.Date, 0, weeks*7)
	for i := 0; i < weeks*7; i++ {
		dates = append(dates, start.AddDays(i))
	}
	return dates
}

func (m Model) monthTitle() string {
	return time.Date(m.Focus.Year, m.Focus.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}
