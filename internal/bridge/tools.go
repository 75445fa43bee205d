package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ikeike55momo/schedule/internal/domain"
)

const (
	ServerGoogle        = "google"
	ToolSyncCalendar    = "sync_calendar"
	ToolSyncSpreadsheet = "sync_spreadsheet"

	DefaultSheetRange = "シート1!A:E"
)

// Tool is a typed argument set for one bridge tool.
type Tool interface {
	Server() string
	Name() string
}

// ScheduleItem is the schedule shape both Google tools expect.
type ScheduleItem struct {
	ID        string `json:"id"`
	Title     string `json:"title" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime   string `json:"endTime" validate:"required,datetime=15:04"`
	Memo      string `json:"memo,omitempty"`
	UserID    string `json:"user_id" validate:"required"`
}

// CalendarSync pushes schedules to Google Calendar. UserID is required in
// personal mode.
type CalendarSync struct {
	Schedules []ScheduleItem  `json:"schedules" validate:"dive"`
	SyncMode  domain.ViewMode `json:"syncMode" validate:"oneof=personal team"`
	UserID    string          `json:"userId,omitempty" validate:"required_if=SyncMode personal"`
}

func (CalendarSync) Server() string { return ServerGoogle }
func (CalendarSync) Name() string   { return ToolSyncCalendar }

// SheetsSync writes schedules into a spreadsheet range.
type SheetsSync struct {
	Schedules     []ScheduleItem `json:"schedules" validate:"dive"`
	SpreadsheetID string         `json:"spreadsheetId" validate:"required"`
	Range         string         `json:"range" validate:"required"`
}

func (SheetsSync) Server() string { return ServerGoogle }
func (SheetsSync) Name() string   { return ToolSyncSpreadsheet }

var validate = validator.New()

// NewCall validates t and encodes it as a Call.
func NewCall(t Tool) (Call, error) {
	if err := validate.Struct(t); err != nil {
		return Call{}, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	args, err := json.Marshal(t)
	if err != nil {
		return Call{}, fmt.Errorf("encode %s arguments: %w", t.Name(), err)
	}
	return Call{ServerName: t.Server(), ToolName: t.Name(), Arguments: args}, nil
}
