package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/ikeike55momo/schedule/internal/domain"
)

const (
	Weeks     = 6
	CellCount = Weeks * 7
)

// Weekdays are the column headings, Sunday first.
var Weekdays = []string{"日", "月", "火", "水", "木", "金", "土"}

type ScheduleSnippet struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Start   string `json:"start"`
	Text    string `json:"text"`
	Tooltip string `json:"tooltip"`
}

// Cell is one day slot. Cells outside the displayed month are dimmed and
// carry no records.
type Cell struct {
	Date              string            `json:"date"`
	Day               int               `json:"day"`
	InMonth           bool              `json:"inMonth"`
	Schedules         []ScheduleSnippet `json:"schedules,omitempty"`
	TaskCount         int               `json:"taskCount"`
	TaskLabel         string            `json:"taskLabel,omitempty"`
	TaskTooltip       string            `json:"taskTooltip,omitempty"`
	TimeRecordCount   int               `json:"timeRecordCount"`
	TimeRecordLabel   string            `json:"timeRecordLabel,omitempty"`
	TimeRecordTooltip string            `json:"timeRecordTooltip,omitempty"`
}

func (c Cell) Interactive() bool { return c.InMonth }

type Month struct {
	Year     int        `json:"year"`
	Month    time.Month `json:"month"`
	Title    string     `json:"title"`
	Weekdays []string   `json:"weekdays"`
	Cells    []Cell     `json:"cells"`
}

// DaysIn returns the number of days in month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Build lays out the 42-cell grid for year/month and buckets the three
// collections by date. Records whose date cannot be derived are left out.
func Build(year int, month time.Month, loc *time.Location, schedules []domain.Schedule, tasks []domain.Task, records []domain.TimeRecord) Month {
	if loc == nil {
		loc = time.UTC
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	year, month = first.Year(), first.Month()
	days := DaysIn(year, month)
	lead := int(first.Weekday())

	bySchedule := make(map[string][]domain.Schedule)
	for _, s := range schedules {
		if k, ok := ScheduleKey(s, loc); ok {
			bySchedule[k] = append(bySchedule[k], s)
		}
	}
	byTask := make(map[string][]domain.Task)
	for _, t := range tasks {
		if k, ok := TaskKey(t); ok {
			byTask[k] = append(byTask[k], t)
		}
	}
	byRecord := make(map[string][]domain.TimeRecord)
	for _, r := range records {
		if k, ok := TimeRecordKey(r); ok {
			byRecord[k] = append(byRecord[k], r)
		}
	}

	m := Month{
		Year:     year,
		Month:    month,
		Title:    fmt.Sprintf("%d年 %d月", year, int(month)),
		Weekdays: Weekdays,
		Cells:    make([]Cell, CellCount),
	}
	for i := range m.Cells {
		dayNumber := i - lead + 1
		d := first.AddDate(0, 0, dayNumber-1)
		c := Cell{
			Date:    d.Format(DateLayout),
			Day:     d.Day(),
			InMonth: dayNumber >= 1 && dayNumber <= days,
		}
		if c.InMonth {
			fillCell(&c, loc, bySchedule[c.Date], byTask[c.Date], byRecord[c.Date])
		}
		m.Cells[i] = c
	}
	return m
}

func fillCell(c *Cell, loc *time.Location, schedules []domain.Schedule, tasks []domain.Task, records []domain.TimeRecord) {
	for _, s := range schedules {
		start := s.Start.In(loc).Format(ClockLayout)
		end := s.End.In(loc).Format(ClockLayout)
		tip := fmt.Sprintf("%s (%s-%s)", s.Title, start, end)
		if s.Memo != "" {
			tip += "\n\nメモ: " + s.Memo
		}
		c.Schedules = append(c.Schedules, ScheduleSnippet{
			ID:      s.ID,
			Title:   s.Title,
			Start:   start,
			Text:    s.Title + " " + start,
			Tooltip: tip,
		})
	}

	c.TaskCount = len(tasks)
	if c.TaskCount > 0 {
		c.TaskLabel = fmt.Sprintf("タスク: %d件", c.TaskCount)
		lines := make([]string, 0, len(tasks))
		for _, t := range tasks {
			line := t.Title
			if t.Description != "" {
				line += ": " + t.Description
			}
			lines = append(lines, fmt.Sprintf("%s (進捗: %d%%)", line, t.Progress))
		}
		c.TaskTooltip = strings.Join(lines, "\n")
	}

	c.TimeRecordCount = len(records)
	if c.TimeRecordCount > 0 {
		c.TimeRecordLabel = fmt.Sprintf("勤怠: %d件", c.TimeRecordCount)
		lines := make([]string, 0, len(records))
		for _, r := range records {
			line := r.Kind.Label() + ": " + r.Time
			if r.NightShift {
				line += " (" + domain.NightShiftLabel + ")"
			}
			lines = append(lines, line)
		}
		c.TimeRecordTooltip = strings.Join(lines, "\n")
	}
}

// Cell returns the cell for date, if the grid shows it.
func (m Month) Cell(date string) (Cell, bool) {
	for _, c := range m.Cells {
		if c.Date == date {
			return c, true
		}
	}
	return Cell{}, false
}

// Prev and Next step the displayed month.
func Prev(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month-1, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

func Next(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}
