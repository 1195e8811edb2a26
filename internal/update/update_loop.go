package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/remindd/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}
		if m.CurrentView == ViewEdit {
			return m.handleEditKey(typed)
		}
		if len(m.Popups) > 0 {
			switch typed.String() {
			case "enter", "esc":
				return m.dismissFrontPopup(), nil
			}
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Calendar:
			m.CurrentView = ViewCalendar
			return m, nil
		case m.Keys.Day:
			m.CurrentView = ViewDay
			m.clampDayCursor()
			return m, nil
		case m.Keys.History:
			m.CurrentView = ViewHistory
			return m, m.loadHistoryCmd()
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewCalendar:
			return m.handleCalendarKey(typed)
		case ViewDay:
			return m.handleDayKey(typed)
		case ViewHistory:
			return m.handleHistoryKey(typed)
		}

	case RunOnUIMsg:
		if typed.Fn != nil {
			typed.Fn()
		}
		return m, nil

	case ReminderDueMsg:
		return m.onReminderDue(typed)

	case PopupExpiredMsg:
		return m.closePopup(typed.ID), nil

	case HistoryLoadedMsg:
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Status = StatusBar{Text: "history unavailable: " + typed.Err.Error(), IsError: true}
			return m, nil
		}
		m.setHistoryRows(typed.Rows)
		return m, nil

	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			if typed.View == ViewHistory {
				return m, m.loadHistoryCmd()
			}
		}
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil

	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewCalendar:
		leftPane = m.renderCalendarView()
		rightPane = m.renderDaySummaryView() + m.renderHelpIfVisible()
	case ViewDay:
		leftPane = m.renderDayView()
		rightPane = m.renderDayDetailView() + m.renderHelpIfVisible()
	case ViewEdit:
		leftPane = m.renderEditView()
		rightPane = m.renderHelpIfVisible()
	case ViewHistory:
		leftPane = m.renderHistoryView()
		rightPane = m.renderHelpIfVisible()
	}

	overlay := strings.TrimSpace(strings.Join([]string{
		m.renderCommandPalette(),
		m.renderPopupsView(),
	}, "\n"))

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("remindd | view: %s | %s", m.CurrentView, m.Focus),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: overlay,
		Footer:       fmt.Sprintf("keys: %s cal | %s day | %s history | / cmd | %s help | %s quit", m.Keys.Calendar, m.Keys.Day, m.Keys.History, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewCalendar, ViewDay, ViewEdit, ViewHistory:
		return true
	default:
		return false
	}
}
