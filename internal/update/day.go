package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/remindd/internal/model"
)

func (m Model) handleDayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.dayItems()
	switch msg.String() {
	case "esc":
		m.CurrentView = ViewCalendar
	case "k", "up":
		if m.DayCursor > 0 {
			m.DayCursor--
		}
	case "j", "down":
		if m.DayCursor < len(items)-1 {
			m.DayCursor++
		}
	case "h", "left":
		m.setFocus(m.Focus.AddDays(-1))
	case "l", "right":
		m.setFocus(m.Focus.AddDays(1))
	case "a":
		return m.openEditForm(model.Reminder{Date: m.Focus}), nil
	case "e", "enter":
		if r, ok := m.selectedDayItem(items); ok {
			return m.openEditForm(r), nil
		}
	case "d":
		if r, ok := m.selectedDayItem(items); ok {
			m.Store.Delete(r.ID)
			m.clampDayCursor()
			m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", r.Title), IsError: false}
		}
	case " ", "x":
		if r, ok := m.selectedDayItem(items); ok {
			r.Active = !r.Active
			m.Store.Update(r)
			m.Status = StatusBar{Text: fmt.Sprintf("active=%v: %s", r.Active, r.Title), IsError: false}
		}
	}
	return m, nil
}

// dayItems lists everything occurring on the focused date, active or
// not, sorted by fire time. Inactive reminders still show in the
// agenda so they can be toggled back on.
func (m Model) dayItems() []model.Reminder {
	var out []model.Reminder
	for _, r := range m.Store.All() {
		if model.OccursOn(r, m.Focus) {
			out = append(out, r)
		}
	}
	model.SortByFireTime(out)
	return out
}

func (m Model) selectedDayItem(items []model.Reminder) (model.Reminder, bool) {
	if m.DayCursor < 0 || m.DayCursor >= len(items) {
		return model.Reminder{}, false
	}
	return items[m.DayCursor], true
}

func (m *Model) clampDayCursor() {
	n := len(m.dayItems())
	if m.DayCursor >= n {
		m.DayCursor = n - 1
	}
	if m.DayCursor < 0 {
		m.DayCursor = 0
	}
}
