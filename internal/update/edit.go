package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/remindd/internal/model"
)

var repeatCycle = []model.RepeatType{
	model.RepeatNone,
	model.RepeatDaily,
	model.RepeatWeekly,
	model.RepeatMonthly,
	model.RepeatYearly,
}

// openEditForm enters the edit screen. An empty reminder id means a new
// reminder; fields are prefilled from what is passed in.
func (m Model) openEditForm(r model.Reminder) Model {
	m.CurrentView = ViewEdit
	m.Edit = EditState{
		ID:     r.ID,
		Repeat: r.Repeat,
		Active: r.Active || r.ID == "",
		Focus:  fieldTitle,
	}
	if m.Edit.Repeat == "" {
		m.Edit.Repeat = model.RepeatNone
	}

	m.titleInput.SetValue(r.Title)
	if r.Date.IsZero() {
		m.dateInput.SetValue(m.Focus.String())
	} else {
		m.dateInput.SetValue(r.Date.String())
	}
	if r.At == "" {
		m.timeInput.SetValue(string(model.DefaultClock))
	} else {
		m.timeInput.SetValue(string(r.At))
	}
	if r.Color == "" {
		m.colorInput.SetValue(model.DefaultColor)
	} else {
		m.colorInput.SetValue(r.Color)
	}
	m.descArea.SetValue(r.Description)

	m.blurEditInputs()
	m.titleInput.Focus()
	return m
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.CurrentView = ViewDay
		m.Edit = EditState{}
		m.blurEditInputs()
		m.Status = StatusBar{Text: "edit cancelled", IsError: false}
		return m, nil
	case "tab":
		m.cycleEditFocus(1)
		return m, nil
	case "shift+tab":
		m.cycleEditFocus(-1)
		return m, nil
	case "ctrl+r":
		m.Edit.Repeat = nextRepeat(m.Edit.Repeat)
		return m, nil
	case "ctrl+a":
		m.Edit.Active = !m.Edit.Active
		return m, nil
	case "ctrl+s":
		return m.saveEditForm(), nil
	case "enter":
		// Enter inserts a newline only inside the description.
		if m.Edit.Focus != fieldDescription {
			return m.saveEditForm(), nil
		}
	}

	var cmd tea.Cmd
	switch m.Edit.Focus {
	case fieldTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case fieldDate:
		m.dateInput, cmd = m.dateInput.Update(msg)
	case fieldTime:
		m.timeInput, cmd = m.timeInput.Update(msg)
	case fieldColor:
		m.colorInput, cmd = m.colorInput.Update(msg)
	case fieldDescription:
		m.descArea, cmd = m.descArea.Update(msg)
	}
	return m, cmd
}

func (m Model) saveEditForm() Model {
	r, err := m.reminderFromForm()
	if err != nil {
		m.Edit.Err = err.Error()
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	if r.ID == "" {
		id := m.Store.Add(r)
		m.Status = StatusBar{Text: fmt.Sprintf("added: %s (%s)", r.Title, id), IsError: false}
	} else {
		m.Store.Update(r)
		m.Status = StatusBar{Text: fmt.Sprintf("updated: %s", r.Title), IsError: false}
	}

	m.Focus = r.Date
	m.CurrentView = ViewDay
	m.Edit = EditState{}
	m.blurEditInputs()
	m.clampDayCursor()
	return m
}

func (m Model) reminderFromForm() (model.Reminder, error) {
	date, err := model.ParseDate(strings.TrimSpace(m.dateInput.Value()))
	if err != nil {
		return model.Reminder{}, fmt.Errorf("bad date %q: %w", m.dateInput.Value(), err)
	}
	at, err := model.ParseClock(strings.TrimSpace(m.timeInput.Value()))
	if err != nil {
		return model.Reminder{}, fmt.Errorf("bad time %q: %w", m.timeInput.Value(), err)
	}

	r := model.Reminder{
		ID:          m.Edit.ID,
		Title:       strings.TrimSpace(m.titleInput.Value()),
		Date:        date,
		At:          at,
		Color:       strings.TrimSpace(m.colorInput.Value()),
		Description: m.descArea.Value(),
		Repeat:      m.Edit.Repeat,
		Active:      m.Edit.Active,
	}
	if r.Color == "" {
		r.Color = model.DefaultColor
	}
	if err := r.Validate(); err != nil {
		return model.Reminder{}, err
	}
	return r, nil
}

func (m *Model) cycleEditFocus(delta int) {
	m.Edit.Focus = editField((int(m.Edit.Focus) + delta + int(fieldCount)) % int(fieldCount))
	m.blurEditInputs()
	switch m.Edit.Focus {
	case fieldTitle:
		m.titleInput.Focus()
	case fieldDate:
		m.dateInput.Focus()
	case fieldTime:
		m.timeInput.Focus()
	case fieldColor:
		m.colorInput.Focus()
	case fieldDescription:
		m.descArea.Focus()
	}
}

func (m *Model) blurEditInputs() {
	m.titleInput.Blur()
	m.dateInput.Blur()
	m.timeInput.Blur()
	m.colorInput.Blur()
	m.descArea.Blur()
}

func nextRepeat(current model.RepeatType) model.RepeatType {
	for i, rt := range repeatCycle {
		if rt == current {
			return repeatCycle[(i+1)%len(repeatCycle)]
		}
	}
	return model.RepeatNone
}
