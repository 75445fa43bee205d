package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikeike55momo/schedule/internal/bridge"
	dom "github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/dto"
	"github.com/ikeike55momo/schedule/internal/service"
)

func TestSyncCalendar(t *testing.T) {
	f := newFixture(t)
	f.seedSchedule("u1", "Standup", time.Date(2024, 6, 3, 9, 0, 0, 0, jst), time.Date(2024, 6, 3, 9, 15, 0, 0, jst))
	f.seedSchedule("u2", "Review", time.Date(2024, 6, 3, 14, 0, 0, 0, jst), time.Date(2024, 6, 3, 15, 0, 0, 0, jst))

	w := f.do(t, "u1", http.MethodPost, "/api/v1/sync/calendar", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[dto.SyncResponse](t, w)
	assert.True(t, res.OK)
	assert.Equal(t, "個人の予定をGoogle Calendarに同期しました", res.Notification.Message)

	w = f.do(t, "u1", http.MethodPost, "/api/v1/sync/calendar", dto.SyncCalendarRequest{Mode: "team"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "チーム全体の予定をGoogle Calendarに同期しました", decode[dto.SyncResponse](t, w).Notification.Message)

	require.Len(t, f.invoker.calls, 2)
	var args bridge.CalendarSync
	require.NoError(t, json.Unmarshal(f.invoker.calls[1].Arguments, &args))
	assert.Equal(t, dom.ViewTeam, args.SyncMode)
	assert.Len(t, args.Schedules, 2)

	w = f.do(t, "u1", http.MethodPost, "/api/v1/sync/calendar", dto.SyncCalendarRequest{Mode: "all"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, f.invoker.calls, 2)
}

func TestSyncCalendarFailures(t *testing.T) {
	tests := []struct {
		name     string
		resp     bridge.Response
		err      error
		wantDesc string
	}{
		{"timeout", bridge.Response{}, bridge.ErrTimeout, bridge.ErrTimeout.Error()},
		{"connect", bridge.Response{}, fmt.Errorf("%w: refused", bridge.ErrConnect), "bridge: connection failed: refused"},
		{"tool error", bridge.Response{IsError: true, Content: []bridge.Content{{Type: "text", Text: "quota exceeded"}}}, nil, "quota exceeded"},
		{"tool error without text", bridge.Response{IsError: true}, nil, "同期に失敗しました"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.invoker.resp, f.invoker.err = tt.resp, tt.err

			w := f.do(t, "u1", http.MethodPost, "/api/v1/sync/calendar", nil)
			require.Equal(t, http.StatusBadGateway, w.Code)
			res := decode[dto.ErrorResponse](t, w)
			require.NotNil(t, res.Notification)
			assert.Equal(t, service.MsgCalendarSyncFailed, res.Notification.Message)
			assert.Equal(t, tt.wantDesc, res.Notification.Description)
		})
	}
}

func TestSyncSheets(t *testing.T) {
	f := newFixture(t)
	f.seedSchedule("u1", "Standup", time.Date(2024, 6, 3, 9, 0, 0, 0, jst), time.Date(2024, 6, 3, 9, 15, 0, 0, jst))

	w := f.do(t, "u1", http.MethodPost, "/api/v1/sync/sheets", dto.SyncSheetsRequest{SpreadsheetID: "sheet-1"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(t, "root", http.MethodPost, "/api/v1/sync/sheets", dto.SyncSheetsRequest{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.MsgSpreadsheetRequired, decode[dto.ErrorResponse](t, w).Notification.Message)
	assert.Empty(t, f.invoker.calls)

	w = f.do(t, "root", http.MethodPost, "/api/v1/sync/sheets", dto.SyncSheetsRequest{SpreadsheetID: "sheet-1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, service.MsgSheetsSynced, decode[dto.SyncResponse](t, w).Notification.Message)

	require.Len(t, f.invoker.calls, 1)
	var args bridge.SheetsSync
	require.NoError(t, json.Unmarshal(f.invoker.calls[0].Arguments, &args))
	assert.Equal(t, "sheet-1", args.SpreadsheetID)
	assert.Equal(t, bridge.DefaultSheetRange, args.Range)
}
