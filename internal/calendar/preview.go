package calendar

import (
	"fmt"
	"time"

	"github.com/ikeike55momo/schedule/internal/domain"
)

// PointerOffset keeps the preview panel clear of the pointer.
const PointerOffset = 20

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type PanelItem struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Detail string `json:"detail,omitempty"`
}

type PanelSection struct {
	Heading string      `json:"heading"`
	Items   []PanelItem `json:"items"`
	Empty   string      `json:"empty,omitempty"`
}

// Panel is the read-only hover preview for one date.
type Panel struct {
	Date     string         `json:"date"`
	Title    string         `json:"title"`
	Sections []PanelSection `json:"sections"`
}

// PreviewFor lists every schedule, task and time record on date.
func PreviewFor(date string, loc *time.Location, schedules []domain.Schedule, tasks []domain.Task, records []domain.TimeRecord) Panel {
	if loc == nil {
		loc = time.UTC
	}
	d := DayDetail(date, loc, schedules, tasks, records)

	sched := PanelSection{Heading: "スケジュール", Items: []PanelItem{}}
	for _, s := range d.Schedules {
		sched.Items = append(sched.Items, PanelItem{
			ID:     s.ID,
			Text:   fmt.Sprintf("%s — %s - %s", s.Title, s.Start.In(loc).Format(ClockLayout), s.End.In(loc).Format(ClockLayout)),
			Detail: s.Memo,
		})
	}
	if len(sched.Items) == 0 {
		sched.Empty = "予定はありません"
	}

	task := PanelSection{Heading: "タスク", Items: []PanelItem{}}
	for _, t := range d.Tasks {
		task.Items = append(task.Items, PanelItem{
			ID:     t.ID,
			Text:   fmt.Sprintf("%s — 進捗: %d%%", t.Title, t.Progress),
			Detail: t.Description,
		})
	}
	if len(task.Items) == 0 {
		task.Empty = "タスクはありません"
	}

	stamp := PanelSection{Heading: "タイムスタンプ", Items: []PanelItem{}}
	for _, r := range d.TimeRecords {
		item := PanelItem{ID: r.ID, Text: r.Time + " " + r.Kind.Label()}
		if r.NightShift {
			item.Detail = domain.NightShiftLabel
		}
		stamp.Items = append(stamp.Items, item)
	}
	if len(stamp.Items) == 0 {
		stamp.Empty = "記録はありません"
	}

	title := date
	if t, ok := ParseDay(date); ok {
		title = fmt.Sprintf("%d/%d/%d", t.Year(), int(t.Month()), t.Day())
	}
	return Panel{Date: date, Title: title, Sections: []PanelSection{sched, task, stamp}}
}

// Hover tracks the hovered date and the last pointer position. It holds no
// other state; the panel is derived from it on demand.
type Hover struct {
	date    string
	pointer Point
	active  bool
}

func (h *Hover) Enter(date string, p Point) {
	h.date = date
	h.pointer = p
	h.active = true
}

// Move records the pointer position. It reports false when nothing is hovered.
func (h *Hover) Move(p Point) bool {
	if !h.active {
		return false
	}
	h.pointer = p
	return true
}

// Leave dismisses the preview when the pointer leaves the cell.
func (h *Hover) Leave() {
	h.date = ""
	h.active = false
}

// LeavePanel dismisses the preview when the pointer leaves the panel itself.
func (h *Hover) LeavePanel() { h.Leave() }

func (h *Hover) Date() (string, bool) { return h.date, h.active }

func (h *Hover) Active() bool { return h.active }

// Position is where the panel's top-left corner goes.
func (h *Hover) Position() Point {
	return Point{X: h.pointer.X + PointerOffset, Y: h.pointer.Y + PointerOffset}
}
