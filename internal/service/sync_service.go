package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ikeike55momo/schedule/internal/bridge"
	"github.com/ikeike55momo/schedule/internal/calendar"
	dom "github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/repo"
)

const (
	MsgCalendarSyncFailed  = "Google Calendarとの同期に失敗しました"
	MsgSheetsSynced        = "スプレッドシートに同期しました"
	MsgSheetsSyncFailed    = "スプレッドシートとの同期に失敗しました"
	MsgSpreadsheetRequired = "スプレッドシートIDを入力してください"
	msgToolFailed          = "同期に失敗しました"
)

var ErrSpreadsheetRequired = errors.New(MsgSpreadsheetRequired)

// Invoker sends one tool call over the bridge; *bridge.Manager implements it.
type Invoker interface {
	Invoke(ctx context.Context, call bridge.Call) (bridge.Response, error)
}

// ToolError is a response the bridge delivered with isError set.
type ToolError struct {
	Text string
}

func (e *ToolError) Error() string { return e.Text }

// SyncService pushes schedules to the Google tools. It never changes local
// schedules.
type SyncService struct {
	schedules repo.ScheduleRepo
	bridge    Invoker
	loc       *time.Location
}

func NewSyncService(r repo.ScheduleRepo, b Invoker, loc *time.Location) *SyncService {
	if loc == nil {
		loc = time.Local
	}
	return &SyncService{schedules: r, bridge: b, loc: loc}
}

// CalendarSynced is the success message for mode.
func CalendarSynced(mode dom.ViewMode) string {
	if mode == dom.ViewTeam {
		return "チーム全体の予定をGoogle Calendarに同期しました"
	}
	return "個人の予定をGoogle Calendarに同期しました"
}

// SyncCalendar sends the caller's schedules (personal) or everyone's (team)
// to Google Calendar.
func (s *SyncService) SyncCalendar(ctx context.Context, userID string, mode dom.ViewMode) (Notification, error) {
	var list []dom.Schedule
	var err error
	switch mode {
	case dom.ViewPersonal:
		list, err = s.schedules.ListByOwner(ctx, userID)
	case dom.ViewTeam:
		list, err = s.schedules.ListAll(ctx)
	default:
		err = ErrInvalidViewMode
	}
	if err != nil {
		return Failure(MsgCalendarSyncFailed, err), err
	}
	args := bridge.CalendarSync{Schedules: s.items(list), SyncMode: mode}
	if mode == dom.ViewPersonal {
		args.UserID = userID
	}
	if err := s.invoke(ctx, args); err != nil {
		return Failure(MsgCalendarSyncFailed, err), err
	}
	return Success(CalendarSynced(mode)), nil
}

// SyncSheets writes every schedule into spreadsheetID. An empty range uses
// the default sheet.
func (s *SyncService) SyncSheets(ctx context.Context, spreadsheetID, sheetRange string) (Notification, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return Notification{Level: LevelError, Message: MsgSpreadsheetRequired}, ErrSpreadsheetRequired
	}
	if strings.TrimSpace(sheetRange) == "" {
		sheetRange = bridge.DefaultSheetRange
	}
	list, err := s.schedules.ListAll(ctx)
	if err != nil {
		return Failure(MsgSheetsSyncFailed, err), err
	}
	args := bridge.SheetsSync{Schedules: s.items(list), SpreadsheetID: spreadsheetID, Range: sheetRange}
	if err := s.invoke(ctx, args); err != nil {
		return Failure(MsgSheetsSyncFailed, err), err
	}
	return Success(MsgSheetsSynced), nil
}

func (s *SyncService) invoke(ctx context.Context, t bridge.Tool) error {
	call, err := bridge.NewCall(t)
	if err != nil {
		return err
	}
	resp, err := s.bridge.Invoke(ctx, call)
	if err != nil {
		return err
	}
	if resp.IsError {
		text := resp.Text()
		if text == "" {
			text = msgToolFailed
		}
		return &ToolError{Text: text}
	}
	return nil
}

func (s *SyncService) items(list []dom.Schedule) []bridge.ScheduleItem {
	items := make([]bridge.ScheduleItem, 0, len(list))
	for _, sc := range list {
		start := sc.Start.In(s.loc)
		items = append(items, bridge.ScheduleItem{
			ID:        sc.ID,
			Title:     sc.Title,
			Date:      start.Format(calendar.DateLayout),
			StartTime: start.Format(calendar.ClockLayout),
			EndTime:   sc.End.In(s.loc).Format(calendar.ClockLayout),
			Memo:      sc.Memo,
			UserID:    sc.UserID,
		})
	}
	return items
}
