package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikeike55momo/schedule/internal/calendar"
	dom "github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/dto"
)

func TestCalendarMonth(t *testing.T) {
	f := newFixture(t)
	f.seedSchedule("u1", "Standup", time.Date(2024, 6, 3, 9, 0, 0, 0, jst), time.Date(2024, 6, 3, 9, 15, 0, 0, jst))
	f.seedSchedule("u2", "Review", time.Date(2024, 6, 3, 14, 0, 0, 0, jst), time.Date(2024, 6, 3, 15, 0, 0, 0, jst))

	w := f.do(t, "u1", http.MethodGet, "/api/v1/calendar?year=2024&month=6", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	m := decode[calendar.Month](t, w)
	require.Len(t, m.Cells, calendar.CellCount)
	assert.Equal(t, "2024-05-26", m.Cells[0].Date)
	cell, ok := m.Cell("2024-06-03")
	require.True(t, ok)
	assert.Len(t, cell.Schedules, 1)

	m = decode[calendar.Month](t, f.do(t, "u1", http.MethodGet, "/api/v1/calendar?year=2024&month=6&mode=team", nil))
	cell, _ = m.Cell("2024-06-03")
	assert.Len(t, cell.Schedules, 2)

	for _, q := range []string{"year=2024&month=13", "year=x&month=6", "mode=boss"} {
		w := f.do(t, "u1", http.MethodGet, "/api/v1/calendar?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestCalendarDayAndPreview(t *testing.T) {
	f := newFixture(t)
	f.seedSchedule("u1", "Standup", time.Date(2024, 6, 3, 9, 0, 0, 0, jst), time.Date(2024, 6, 3, 9, 15, 0, 0, jst))
	due := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	_, err := f.tasks.Create(context.Background(), dom.Task{UserID: "u1", Title: "Docs", Progress: 60, DueDate: &due})
	require.NoError(t, err)

	day := decode[dto.DayResponse](t, f.do(t, "u1", http.MethodGet, "/api/v1/calendar/days/2024-06-03", nil))
	assert.Equal(t, "2024-06-03", day.Date)
	assert.Len(t, day.Schedules, 1)
	assert.Len(t, day.Tasks, 1)
	assert.Empty(t, day.TimeRecords)

	w := f.do(t, "u1", http.MethodGet, "/api/v1/calendar/preview?date=2024-06-03&x=100&y=50", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	p := decode[dto.PreviewResponse](t, w)
	assert.Equal(t, "2024/6/3", p.Panel.Title)
	require.NotNil(t, p.Position)
	assert.Equal(t, calendar.Point{X: 120, Y: 70}, *p.Position)

	p = decode[dto.PreviewResponse](t, f.do(t, "u1", http.MethodGet, "/api/v1/calendar/preview?date=2024-06-03", nil))
	assert.Nil(t, p.Position)

	w = f.do(t, "u1", http.MethodGet, "/api/v1/calendar/days/yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func dialHover(t *testing.T, f *fixture, query string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(f.router)
	t.Cleanup(srv.Close)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/calendar/hover?access_token=" + f.token(t, "u1") + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func exchange(t *testing.T, conn *websocket.Conn, f dto.HoverFrame) dto.HoverReply {
	t.Helper()
	require.NoError(t, conn.WriteJSON(f))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var r dto.HoverReply
	require.NoError(t, conn.ReadJSON(&r))
	return r
}

func TestHoverSocket(t *testing.T) {
	f := newFixture(t)
	f.seedSchedule("u1", "Standup", time.Date(2024, 6, 3, 9, 0, 0, 0, jst), time.Date(2024, 6, 3, 9, 15, 0, 0, jst))
	conn := dialHover(t, f, "&year=2024&month=6")

	r := exchange(t, conn, dto.HoverFrame{Type: dto.HoverEnter, Date: "2024-06-03", X: 100, Y: 50})
	require.Equal(t, dto.HoverShow, r.Type)
	require.NotNil(t, r.Panel)
	assert.Equal(t, "2024/6/3", r.Panel.Title)
	require.Len(t, r.Panel.Sections[0].Items, 1)
	assert.Equal(t, calendar.Point{X: 120, Y: 70}, *r.Position)

	r = exchange(t, conn, dto.HoverFrame{Type: dto.HoverMove, X: 130, Y: 60})
	require.Equal(t, dto.HoverShow, r.Type)
	assert.Equal(t, calendar.Point{X: 150, Y: 80}, *r.Position)
	assert.Equal(t, "2024/6/3", r.Panel.Title)

	r = exchange(t, conn, dto.HoverFrame{Type: dto.HoverLeave})
	assert.Equal(t, dto.HoverHide, r.Type)

	// moves with nothing hovered get no reply; the next reply is for the leave
	require.NoError(t, conn.WriteJSON(dto.HoverFrame{Type: dto.HoverMove, X: 1, Y: 1}))
	r = exchange(t, conn, dto.HoverFrame{Type: dto.HoverPanelLeave})
	assert.Equal(t, dto.HoverHide, r.Type)

	r = exchange(t, conn, dto.HoverFrame{Type: dto.HoverEnter, Date: "2024-07-01", X: 5, Y: 5})
	assert.Equal(t, dto.HoverHide, r.Type, "dates outside the displayed month are not previewed")

	r = exchange(t, conn, dto.HoverFrame{Type: dto.HoverEnter, Date: "soon"})
	assert.Equal(t, dto.HoverError, r.Type)

	r = exchange(t, conn, dto.HoverFrame{Type: "click"})
	assert.Equal(t, dto.HoverError, r.Type)
}

func TestHoverSocketWithoutMonth(t *testing.T) {
	f := newFixture(t)
	conn := dialHover(t, f, "")

	r := exchange(t, conn, dto.HoverFrame{Type: dto.HoverEnter, Date: "2024-07-01"})
	require.Equal(t, dto.HoverShow, r.Type)
	for i, s := range r.Panel.Sections {
		assert.Empty(t, s.Items, "section %d", i)
	}
}

func TestHoverRequiresSession(t *testing.T) {
	f := newFixture(t)
	srv := httptest.NewServer(f.router)
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/v1/calendar/hover", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTimeRecordDeleteClearsGridAndPreview(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, "u1", http.MethodPost, "/api/v1/time-records", dto.CreateTimeRecordRequest{Date: "2024-06-03", Time: "08:55", Type: "clockIn"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode[dto.TimeRecordResult](t, w).Item.ID

	month := func() calendar.Cell {
		t.Helper()
		m := decode[calendar.Month](t, f.do(t, "u1", http.MethodGet, "/api/v1/calendar?year=2024&month=6", nil))
		c, ok := m.Cell("2024-06-03")
		require.True(t, ok)
		return c
	}
	cell := month()
	assert.Equal(t, 1, cell.TimeRecordCount)
	assert.Equal(t, "勤怠: 1件", cell.TimeRecordLabel)

	conn := dialHover(t, f, "&year=2024&month=6")
	r := exchange(t, conn, dto.HoverFrame{Type: dto.HoverEnter, Date: "2024-06-03", X: 10, Y: 10})
	require.Equal(t, dto.HoverShow, r.Type)
	require.Len(t, r.Panel.Sections[2].Items, 1)
	assert.Equal(t, "08:55 出勤", r.Panel.Sections[2].Items[0].Text)
	r = exchange(t, conn, dto.HoverFrame{Type: dto.HoverLeave})
	require.Equal(t, dto.HoverHide, r.Type)

	w = f.do(t, "u1", http.MethodDelete, "/api/v1/time-records/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "記録を削除しました", decode[dto.MessageResponse](t, w).Notification.Message)

	cell = month()
	assert.Zero(t, cell.TimeRecordCount)
	assert.Empty(t, cell.TimeRecordLabel)

	p := decode[dto.PreviewResponse](t, f.do(t, "u1", http.MethodGet, "/api/v1/calendar/preview?date=2024-06-03", nil))
	assert.Empty(t, p.Panel.Sections[2].Items)

	// same socket, same date: the panel reflects the delete
	r = exchange(t, conn, dto.HoverFrame{Type: dto.HoverEnter, Date: "2024-06-03", X: 10, Y: 10})
	require.Equal(t, dto.HoverShow, r.Type)
	assert.Empty(t, r.Panel.Sections[2].Items)
	assert.Equal(t, "記録はありません", r.Panel.Sections[2].Empty)

	r = exchange(t, conn, dto.HoverFrame{Type: dto.HoverMove, X: 12, Y: 12})
	require.Equal(t, dto.HoverShow, r.Type)
	assert.Empty(t, r.Panel.Sections[2].Items)

	w = f.do(t, "u1", http.MethodDelete, "/api/v1/time-records/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
