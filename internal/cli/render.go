package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ikeike55momo/schedule/internal/calendar"
)

const cellWidth = 10

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	weekdayStyle = lipgloss.NewStyle().Width(cellWidth).Bold(true).Align(lipgloss.Center)
	cellStyle    = lipgloss.NewStyle().Width(cellWidth).Height(3).Border(lipgloss.NormalBorder(), false, true, true, false).BorderForeground(lipgloss.Color("240"))
	dimStyle     = cellStyle.Foreground(lipgloss.Color("242")).Faint(true)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).PaddingLeft(4)
	navStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).MarginTop(1)
)

// RenderMonth draws the 42-cell grid. Cells outside the month are dimmed and
// show only the day number.
func RenderMonth(m calendar.Month) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.Title))
	b.WriteString("\n")

	heads := make([]string, len(m.Weekdays))
	for i, w := range m.Weekdays {
		heads[i] = weekdayStyle.Render(w)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, heads...))
	b.WriteString("\n")

	for week := 0; week < calendar.Weeks; week++ {
		row := make([]string, 7)
		for i := range row {
			row[i] = renderCell(m.Cells[week*7+i])
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		b.WriteString("\n")
	}

	py, pm := calendar.Prev(m.Year, m.Month)
	ny, nm := calendar.Next(m.Year, m.Month)
	b.WriteString(navStyle.Render(fmt.Sprintf("← --month %04d-%02d    --month %04d-%02d →", py, int(pm), ny, int(nm))))
	b.WriteString("\n")
	return b.String()
}

func renderCell(c calendar.Cell) string {
	if !c.Interactive() {
		return dimStyle.Render(fmt.Sprintf("%d", c.Day))
	}
	lines := []string{fmt.Sprintf("%d", c.Day)}
	if n := len(c.Schedules); n > 0 {
		lines = append(lines, truncate(c.Schedules[0].Text, cellWidth-1))
		if n > 1 {
			lines = append(lines, fmt.Sprintf("他%d件", n-1))
		}
	}
	var marks []string
	if c.TaskLabel != "" {
		marks = append(marks, c.TaskLabel)
	}
	if c.TimeRecordLabel != "" {
		marks = append(marks, c.TimeRecordLabel)
	}
	if len(marks) > 0 {
		lines = append(lines, truncate(strings.Join(marks, " "), cellWidth-1))
	}
	return cellStyle.Render(strings.Join(lines, "\n"))
}

// RenderPanel prints a preview panel as an indented list.
func RenderPanel(p calendar.Panel) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Title))
	b.WriteString("\n")
	for _, s := range p.Sections {
		b.WriteString(headingStyle.Render(s.Heading))
		b.WriteString("\n")
		if len(s.Items) == 0 {
			b.WriteString("  " + s.Empty + "\n")
			continue
		}
		for _, it := range s.Items {
			b.WriteString("  " + it.Text + "\n")
			if it.Detail != "" {
				b.WriteString(detailStyle.Render(it.Detail) + "\n")
			}
		}
	}
	return b.String()
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
