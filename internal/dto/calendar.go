package dto

import "github.com/ikeike55momo/schedule/internal/calendar"

type DayResponse struct {
	Date        string               `json:"date"`
	Schedules   []ScheduleResponse   `json:"schedules"`
	Tasks       []TaskResponse       `json:"tasks"`
	TimeRecords []TimeRecordResponse `json:"timeRecords"`
}

type PreviewResponse struct {
	Panel    calendar.Panel  `json:"panel"`
	Position *calendar.Point `json:"position,omitempty"`
}

// Hover frame types.
const (
	HoverEnter      = "enter"
	HoverMove       = "move"
	HoverLeave      = "leave"
	HoverPanelLeave = "panel_leave"
	HoverShow       = "show"
	HoverHide       = "hide"
	HoverError      = "error"
)

// HoverFrame is sent by the client on the live preview socket.
type HoverFrame struct {
	Type string `json:"type"`
	Date string `json:"date,omitempty"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// HoverReply is sent by the server after every state change.
type HoverReply struct {
	Type     string          `json:"type"`
	Panel    *calendar.Panel `json:"panel,omitempty"`
	Position *calendar.Point `json:"position,omitempty"`
	Error    string          `json:"error,omitempty"`
}
