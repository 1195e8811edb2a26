package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/remindd/internal/commands"
	"github.com/sandeepkv93/remindd/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
	return m, nil
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m, nil
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			r := model.Reminder{
				Title:  a.Title,
				At:     model.Clock(a.At),
				Color:  a.Color,
				Repeat: model.RepeatType(a.Repeat),
				Active: true,
			}
			if a.Date != "" {
				d, derr := model.ParseDate(a.Date)
				if derr != nil {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "bad date: " + a.Date}
				}
				r.Date = d
			} else {
				r.Date = m.Focus
			}
			id := m.Store.Add(r)
			m.Focus = r.Date
			m.CurrentView = ViewDay
			m.clampDayCursor()
			return commands.Result{Message: fmt.Sprintf("added reminder %s: %s", id, a.Title)}, nil
		},
		Delete: func(d commands.DeleteArgs) (commands.Result, error) {
			r, ok := m.Store.Get(d.ID)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "unknown reminder: " + d.ID}
			}
			m.Store.Delete(d.ID)
			m.clampDayCursor()
			return commands.Result{Message: fmt.Sprintf("deleted: %s", r.Title)}, nil
		},
		Toggle: func(t commands.ToggleArgs) (commands.Result, error) {
			r, ok := m.Store.Get(t.ID)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "unknown reminder: " + t.ID}
			}
			r.Active = !r.Active
			m.Store.Update(r)
			return commands.Result{Message: fmt.Sprintf("active=%v: %s", r.Active, r.Title)}, nil
		},
		Goto: func(g commands.GotoArgs) (commands.Result, error) {
			if g.Date == "today" {
				m.Focus = model.DateOf(m.now())
			} else {
				d, derr := model.ParseDate(g.Date)
				if derr != nil {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "bad date: " + g.Date}
				}
				m.Focus = d
			}
			m.CurrentView = ViewDay
			m.DayCursor = 0
			return commands.Result{Message: fmt.Sprintf("goto %s", m.Focus)}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			if s.Date != "" {
				d, derr := model.ParseDate(s.Date)
				if derr != nil {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "bad date: " + s.Date}
				}
				m.Focus = d
				m.DayCursor = 0
			}
			switch s.Subject {
			case "day":
				m.CurrentView = ViewDay
			case "history":
				m.CurrentView = ViewHistory
			case "all":
				return commands.Result{Message: fmt.Sprintf("%d reminder(s) stored", len(m.Store.All()))}, nil
			}
			return commands.Result{Message: fmt.Sprintf("show %s", s.Subject)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	if err == nil && m.CurrentView == ViewHistory {
		return m, m.loadHistoryCmd()
	}
	return m, nil
}
