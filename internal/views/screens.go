package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type MonthCellData struct {
	Day      int
	InMonth  bool
	Today    bool
	Selected bool
	Count    int
}

type MonthPanelData struct {
	Title string
	Weeks [][]MonthCellData
}

type DayItemData struct {
	ID       string
	Time     string
	Title    string
	Repeat   string
	Active   bool
	Selected bool
}

type DayPanelData struct {
	Date    string
	Weekday string
	Items   []DayItemData
}

type DetailData struct {
	ID           string
	Color        string
	Repeat       string
	Active       bool
	MarkdownView string
}

type EditFormData struct {
	Editing   bool
	TitleView string
	DateView  string
	TimeView  string
	ColorView string
	DescView  string
	Repeat    string
	Active    bool
	Err       string
}

type HistoryPanelData struct {
	TableView   string
	Count       int
	Unavailable bool
}

type PopupData struct {
	Title string
	Time  string
	Body  string
	Color string
	More  int
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderMonthPanel(data MonthPanelData) string {
	var b strings.Builder
	b.WriteString(data.Title + "\n")
	b.WriteString("actions: [h/l]day [j/k]week [H/L]month [t]today [enter]agenda [a]add\n\n")
	b.WriteString(" Mo  Tu  We  Th  Fr  Sa  Su\n")
	for _, week := range data.Weeks {
		cells := make([]string, 0, len(week))
		for _, c := range week {
			cells = append(cells, renderMonthCell(c))
		}
		b.WriteString(strings.Join(cells, " ") + "\n")
	}
	b.WriteString("\n● reminders due")
	return strings.TrimSpace(b.String())
}

func renderMonthCell(c MonthCellData) string {
	marker := " "
	if c.Count > 0 {
		marker = "●"
	}
	cell := fmt.Sprintf("%2d%s", c.Day, marker)
	switch {
	case c.Selected:
		return selectStyle.Render(cell)
	case c.Today:
		return todayStyle.Render(cell)
	case !c.InMonth:
		return dimStyle.Render(cell)
	default:
		return cell
	}
}

func RenderDayPanel(data DayPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s (%s):\n", data.Date, data.Weekday))
	b.WriteString("actions: [j/k]move [a]add [e]edit [d]delete [space]toggle\n")
	if len(data.Items) == 0 {
		b.WriteString("\n(no reminders)")
		return b.String()
	}
	for _, item := range data.Items {
		cursor := " "
		if item.Selected {
			cursor = ">"
		}
		state := " "
		if !item.Active {
			state = "x"
		}
		line := fmt.Sprintf("%s [%s] %s %s", cursor, state, item.Time, item.Title)
		if item.Repeat != "" && item.Repeat != "none" {
			line += fmt.Sprintf(" (%s)", item.Repeat)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderDetailPanel(data DetailData) string {
	var b strings.Builder
	b.WriteString("detail:\n")
	b.WriteString(fmt.Sprintf("id: %s\n", data.ID))
	b.WriteString(fmt.Sprintf("repeat: %s\n", data.Repeat))
	b.WriteString(fmt.Sprintf("active: %v\n", data.Active))
	b.WriteString("color: " + lipgloss.NewStyle().Foreground(lipgloss.Color(data.Color)).Render(data.Color) + "\n")
	if strings.TrimSpace(data.MarkdownView) != "" {
		b.WriteString("\nnotes:\n")
		b.WriteString(data.MarkdownView)
	}
	return strings.TrimSpace(b.String())
}

func RenderEditForm(data EditFormData) string {
	heading := "new reminder"
	if data.Editing {
		heading = "edit reminder"
	}
	var b strings.Builder
	b.WriteString(heading + ":\n")
	b.WriteString("keys: [tab]field [ctrl+r]repeat [ctrl+a]active [enter]save [esc]cancel\n\n")
	b.WriteString("title:  " + data.TitleView + "\n")
	b.WriteString("date:   " + data.DateView + "\n")
	b.WriteString("time:   " + data.TimeView + "\n")
	b.WriteString("color:  " + data.ColorView + "\n")
	b.WriteString("repeat: " + data.Repeat + "\n")
	b.WriteString(fmt.Sprintf("active: %v\n", data.Active))
	b.WriteString("notes:\n" + data.DescView)
	if data.Err != "" {
		b.WriteString("\n" + errorStyle.Render("error: "+data.Err))
	}
	return strings.TrimSpace(b.String())
}

func RenderHistoryPanel(data HistoryPanelData) string {
	if data.Unavailable {
		return "history:\n(firing log unavailable)"
	}
	var b strings.Builder
	b.WriteString("history:\n")
	b.WriteString("actions: [j/k]scroll [r]refresh [esc]back\n")
	b.WriteString(data.TableView)
	if data.Count == 0 {
		b.WriteString("\n(no firings recorded)")
	}
	return strings.TrimSpace(b.String())
}

// RenderPopup draws the front reminder alert, bordered in the
// reminder's own color.
func RenderPopup(data PopupData) string {
	color := data.Color
	if color == "" {
		color = "12"
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color(color)).
		Padding(0, 1).
		Width(46)

	var b strings.Builder
	b.WriteString("REMINDER: " + data.Title + "\n")
	b.WriteString("when: " + data.Time)
	if data.Body != "" {
		b.WriteString("\n\n" + data.Body)
	}
	b.WriteString("\n\n[enter/esc] dismiss")
	if data.More > 0 {
		b.WriteString(fmt.Sprintf(" (%d more queued)", data.More))
	}
	return style.Render(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
