package update

import (
	"fmt"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/views"
)

func (m Model) renderCalendarView() string {
	dates := m.monthDates()
	due := m.Store.DueForDates(dates)
	today := model.DateOf(m.now())

	cells := make([][]views.MonthCellData, 0, len(dates)/7)
	for w := 0; w < len(dates); w += 7 {
		week := make([]views.MonthCellData, 0, 7)
		for _, d := range dates[w : w+7] {
			week = append(week, views.MonthCellData{
				Day:      d.Day,
				InMonth:  d.Month == m.Focus.Month,
				Today:    d == today,
				Selected: d == m.Focus,
				Count:    len(due[d]),
			})
		}
		cells = append(cells, week)
	}

	return views.RenderMonthPanel(views.MonthPanelData{
		Title: m.monthTitle(),
		Weeks: cells,
	})
}

func (m Model) renderDayView() string {
	return views.RenderDayPanel(m.dayPanelData(true))
}

func (m Model) renderDaySummaryView() string {
	return views.RenderDayPanel(m.dayPanelData(false))
}

func (m Model) dayPanelData(withCursor bool) views.DayPanelData {
	items := m.dayItems()
	data := views.DayPanelData{
		Date:    m.Focus.String(),
		Weekday: m.Focus.Weekday().String(),
	}
	for i, r := range items {
		data.Items = append(data.Items, views.DayItemData{
			ID:       r.ID,
			Time:     string(r.At),
			Title:    r.Title,
			Repeat:   string(r.Repeat),
			Active:   r.Active,
			Selected: withCursor && i == m.DayCursor,
		})
	}
	return data
}

func (m Model) renderDayDetailView() string {
	r, ok := m.selectedDayItem(m.dayItems())
	if !ok {
		return "detail:\n(no selection)"
	}
	m.detailView.SetContent(views.RenderMarkdown(r.Description))
	return views.RenderDetailPanel(views.DetailData{
		ID:           r.ID,
		Color:        r.Color,
		Repeat:       string(r.Repeat),
		Active:       r.Active,
		MarkdownView: m.detailView.View(),
	})
}

func (m Model) renderEditView() string {
	return views.RenderEditForm(views.EditFormData{
		Editing:   m.Edit.ID != "",
		TitleView: m.titleInput.View(),
		DateView:  m.dateInput.View(),
		TimeView:  m.timeInput.View(),
		ColorView: m.colorInput.View(),
		DescView:  m.descArea.View(),
		Repeat:    string(m.Edit.Repeat),
		Active:    m.Edit.Active,
		Err:       m.Edit.Err,
	})
}

func (m Model) renderHistoryView() string {
	return views.RenderHistoryPanel(views.HistoryPanelData{
		TableView:   m.historyTable.View(),
		Count:       len(m.historyRows),
		Unavailable: m.History == nil,
	})
}

func (m Model) renderPopupsView() string {
	if len(m.Popups) == 0 {
		return ""
	}
	front := m.Popups[0]
	return views.RenderPopup(views.PopupData{
		Title: front.Reminder.Title,
		Time:  fmt.Sprintf("%s %s", front.Reminder.Date, front.Reminder.At),
		Body:  views.RenderMarkdown(front.Reminder.Description),
		Color: front.Reminder.Color,
		More:  len(m.Popups) - 1,
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}
