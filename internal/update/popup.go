package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) onReminderDue(msg ReminderDueMsg) (tea.Model, tea.Cmd) {
	id := msg.Reminder.ID
	if m.popupOpen[id] {
		// One popup per reminder at a time.
		return m, nil
	}
	m.popupOpen[id] = true
	m.Popups = append(m.Popups, Popup{Reminder: msg.Reminder, FiredAt: msg.At})
	m.Status = StatusBar{Text: fmt.Sprintf("reminder: %s @ %s", msg.Reminder.Title, msg.Reminder.At), IsError: false}

	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(msg.Reminder.Title, msg.Reminder.Description)
	}

	expiry := tea.Tick(time.Duration(m.cfg.PopupSeconds)*time.Second, func(time.Time) tea.Msg {
		return PopupExpiredMsg{ID: id}
	})
	return m, expiry
}

func (m Model) closePopup(id string) Model {
	kept := m.Popups[:0:0]
	for _, p := range m.Popups {
		if p.Reminder.ID != id {
			kept = append(kept, p)
		}
	}
	m.Popups = kept
	delete(m.popupOpen, id)
	return m
}

func (m Model) dismissFrontPopup() Model {
	if len(m.Popups) == 0 {
		return m
	}
	return m.closePopup(m.Popups[0].Reminder.ID)
}
