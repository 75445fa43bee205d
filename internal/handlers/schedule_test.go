package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ikeike55momo/schedule/internal/dto"
	"github.com/ikeike55momo/schedule/internal/service"
)

func TestScheduleCreateAndList(t *testing.T) {
	f := newFixture(t)
	f.seedSchedule("u2", "Other", time.Date(2024, 6, 4, 10, 0, 0, 0, jst), time.Date(2024, 6, 4, 11, 0, 0, 0, jst))

	w := f.do(t, "u1", http.MethodPost, "/api/v1/schedules", dto.CreateScheduleRequest{
		Title: "Standup", Date: "2024-06-03", StartTime: "09:00", EndTime: "09:15", Memo: "daily",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	res := decode[dto.ScheduleResult](t, w)
	assert.Equal(t, "スケジュールを追加しました", res.Notification.Message)
	assert.Equal(t, service.LevelSuccess, res.Notification.Level)
	assert.Equal(t, "2024-06-03", res.Item.Date)
	assert.Equal(t, "09:00", res.Item.StartTime)
	assert.Equal(t, "09:15", res.Item.EndTime)
	assert.Equal(t, "u1", res.Item.UserID)

	personal := decode[dto.ListSchedulesResponse](t, f.do(t, "u1", http.MethodGet, "/api/v1/schedules", nil))
	require.Len(t, personal.Items, 1)
	assert.Equal(t, "Standup", personal.Items[0].Title)

	team := decode[dto.ListSchedulesResponse](t, f.do(t, "u1", http.MethodGet, "/api/v1/schedules?mode=team", nil))
	assert.Len(t, team.Items, 2)

	w = f.do(t, "u1", http.MethodGet, "/api/v1/schedules?mode=everyone", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleCreateRejects(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name string
		body dto.CreateScheduleRequest
	}{
		{"end before start", dto.CreateScheduleRequest{Title: "x", Date: "2024-06-03", StartTime: "10:00", EndTime: "09:00"}},
		{"equal times", dto.CreateScheduleRequest{Title: "x", Date: "2024-06-03", StartTime: "10:00", EndTime: "10:00"}},
		{"bad date", dto.CreateScheduleRequest{Title: "x", Date: "06/03/2024", StartTime: "09:00", EndTime: "10:00"}},
		{"missing title", dto.CreateScheduleRequest{Date: "2024-06-03", StartTime: "09:00", EndTime: "10:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, "u1", http.MethodPost, "/api/v1/schedules", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			res := decode[dto.ErrorResponse](t, w)
			require.NotNil(t, res.Notification)
			assert.Equal(t, "スケジュールの追加に失敗しました", res.Notification.Message)
			assert.Equal(t, service.LevelError, res.Notification.Level)
			assert.NotEmpty(t, res.Error)
		})
	}
	assert.Empty(t, f.schedules.Items)
}

func TestScheduleUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	s := f.seedSchedule("u1", "Standup", time.Date(2024, 6, 3, 9, 0, 0, 0, jst), time.Date(2024, 6, 3, 9, 15, 0, 0, jst))

	end := "09:30"
	w := f.do(t, "u1", http.MethodPatch, "/api/v1/schedules/"+s.ID, dto.UpdateScheduleRequest{EndTime: &end})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "09:30", decode[dto.ScheduleResult](t, w).Item.EndTime)

	w = f.do(t, "u2", http.MethodDelete, "/api/v1/schedules/"+s.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "other users cannot delete it")

	w = f.do(t, "u1", http.MethodDelete, "/api/v1/schedules/"+s.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "スケジュールを削除しました", decode[dto.MessageResponse](t, w).Notification.Message)
	assert.Empty(t, f.schedules.Items)
}

func TestScheduleExport(t *testing.T) {
	f := newFixture(t)
	f.seedSchedule("u1", "Standup", time.Date(2024, 6, 3, 9, 0, 0, 0, jst), time.Date(2024, 6, 3, 9, 15, 0, 0, jst))
	f.seedSchedule("u1", "July", time.Date(2024, 7, 1, 9, 0, 0, 0, jst), time.Date(2024, 7, 1, 10, 0, 0, 0, jst))

	w := f.do(t, "u1", http.MethodGet, "/api/v1/schedules/export?month=2024-06", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "schedules-2024-06.xlsx")

	book, err := excelize.OpenReader(w.Body)
	require.NoError(t, err)
	defer book.Close()
	rows, err := book.GetRows("2024-06")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Standup", rows[1][3])

	w = f.do(t, "u1", http.MethodGet, "/api/v1/schedules/export?month=June", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
