package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/remindd/internal/storage"
)

const historyLoadTimeout = 2 * time.Second

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.CurrentView = ViewCalendar
		return m, nil
	case "r":
		return m, m.loadHistoryCmd()
	}
	var cmd tea.Cmd
	m.historyTable, cmd = m.historyTable.Update(msg)
	return m, cmd
}

func (m Model) loadHistoryCmd() tea.Cmd {
	src := m.History
	if src == nil {
		return func() tea.Msg { return HistoryLoadedMsg{} }
	}
	limit := m.cfg.HistoryLimit
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), historyLoadTimeout)
		defer cancel()
		rows, err := src.Recent(ctx, limit)
		return HistoryLoadedMsg{Rows: rows, Err: err}
	}
}

func (m *Model) setHistoryRows(rows []storage.Firing) {
	m.historyRows = rows
	tableRows := make([]table.Row, 0, len(rows))
	for _, f := range rows {
		delivered := "no"
		if f.Delivered {
			delivered = "yes"
		}
		tableRows = append(tableRows, table.Row{
			f.FiredAt.Local().Format("2006-01-02 15:04"),
			f.Title,
			delivered,
		})
	}
	m.historyTable.SetRows(tableRows)
}
