package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ikeike55momo/schedule/internal/calendar"
	"github.com/ikeike55momo/schedule/internal/dto"
	"github.com/ikeike55momo/schedule/internal/service"
)

type CalendarHandler struct {
	svc *service.CalendarService
}

func NewCalendarHandler(svc *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{svc: svc}
}

// Month godoc
// @Summary      Month grid
// @Description  42 cells starting on the Sunday on or before the 1st.
// @Tags         calendar
// @Produce      json
// @Security     BearerAuth
// @Param        year   query     int     false  "Year, defaults to the current year"
// @Param        month  query     int     false  "Month 1-12, defaults to the current month"
// @Param        mode   query     string  false  "personal or team"  Enums(personal, team)
// @Success      200    {object}  calendar.Month
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      500    {object}  dto.ErrorResponse
// @Router       /calendar [get]
func (h *CalendarHandler) Month(c *gin.Context) {
	mode, ok := viewMode(c)
	if !ok {
		return
	}
	year, month, ok := h.monthQuery(c)
	if !ok {
		return
	}
	m, err := h.svc.Month(c.Request.Context(), userID(c), mode, year, month)
	if err != nil {
		fail(c, "カレンダーの読み込みに失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// Day godoc
// @Summary      Everything recorded on one date
// @Tags         calendar
// @Produce      json
// @Security     BearerAuth
// @Param        date  path      string  true   "YYYY-MM-DD"
// @Param        mode  query     string  false  "personal or team"  Enums(personal, team)
// @Success      200   {object}  dto.DayResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /calendar/days/{date} [get]
func (h *CalendarHandler) Day(c *gin.Context) {
	mode, ok := viewMode(c)
	if !ok {
		return
	}
	d, err := h.svc.Day(c.Request.Context(), userID(c), mode, c.Param("date"))
	if err != nil {
		fail(c, "予定の読み込みに失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, dto.DayResponse{
		Date:        d.Date,
		Schedules:   schedulesToResponses(d.Schedules, h.svc.Location()),
		Tasks:       tasksToResponses(d.Tasks),
		TimeRecords: timeRecordsToResponses(d.TimeRecords),
	})
}

// Preview godoc
// @Summary      Hover preview panel for one date
// @Tags         calendar
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  true   "YYYY-MM-DD"
// @Param        x     query     int     false  "Pointer x"
// @Param        y     query     int     false  "Pointer y"
// @Param        mode  query     string  false  "personal or team"  Enums(personal, team)
// @Success      200   {object}  dto.PreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /calendar/preview [get]
func (h *CalendarHandler) Preview(c *gin.Context) {
	mode, ok := viewMode(c)
	if !ok {
		return
	}
	p, err := h.svc.Preview(c.Request.Context(), userID(c), mode, c.Query("date"))
	if err != nil {
		fail(c, "予定の読み込みに失敗しました", err)
		return
	}
	resp := dto.PreviewResponse{Panel: p}
	x, errX := strconv.Atoi(c.Query("x"))
	y, errY := strconv.Atoi(c.Query("y"))
	if errX == nil && errY == nil {
		var hv calendar.Hover
		hv.Enter(p.Date, calendar.Point{X: x, Y: y})
		pos := hv.Position()
		resp.Position = &pos
	}
	c.JSON(http.StatusOK, resp)
}

// monthQuery reads year and month, defaulting to today in the calendar location.
func (h *CalendarHandler) monthQuery(c *gin.Context) (int, time.Month, bool) {
	now := time.Now().In(h.svc.Location())
	year, month := now.Year(), now.Month()
	if s := c.Query("year"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			badRequest(c, "カレンダーの読み込みに失敗しました", service.ErrInvalidMonth)
			return 0, 0, false
		}
		year = n
	}
	if s := c.Query("month"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			badRequest(c, "カレンダーの読み込みに失敗しました", service.ErrInvalidMonth)
			return 0, 0, false
		}
		month = time.Month(n)
	}
	return year, month, true
}
