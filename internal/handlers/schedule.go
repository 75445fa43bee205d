package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ikeike55momo/schedule/internal/calendar"
	"github.com/ikeike55momo/schedule/internal/dto"
	"github.com/ikeike55momo/schedule/internal/export"
	"github.com/ikeike55momo/schedule/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ScheduleHandler struct {
	svc *service.ScheduleService
}

func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

// Create godoc
// @Summary      Create a schedule
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateScheduleRequest  true  "Schedule body"
// @Success      201   {object}  dto.ScheduleResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /schedules [post]
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "スケジュールの追加に失敗しました", err)
		return
	}
	s, err := h.svc.Create(c.Request.Context(), userID(c), service.ScheduleInput{
		Title:     req.Title,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Memo:      req.Memo,
	})
	if err != nil {
		fail(c, "スケジュールの追加に失敗しました", err)
		return
	}
	c.JSON(http.StatusCreated, dto.ScheduleResult{
		Item:         scheduleToResponse(s, h.svc.Location()),
		Notification: service.Success("スケジュールを追加しました"),
	})
}

// List godoc
// @Summary      List schedules
// @Description  Personal mode lists the caller's schedules, team mode everyone's.
// @Tags         schedules
// @Produce      json
// @Security     BearerAuth
// @Param        mode  query     string  false  "personal or team"  Enums(personal, team)
// @Success      200   {object}  dto.ListSchedulesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	mode, ok := viewMode(c)
	if !ok {
		return
	}
	list, err := h.svc.List(c.Request.Context(), userID(c), mode)
	if err != nil {
		fail(c, "スケジュールの読み込みに失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, dto.ListSchedulesResponse{Items: schedulesToResponses(list, h.svc.Location())})
}

// Update godoc
// @Summary      Update a schedule
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Schedule ID"
// @Param        body  body      dto.UpdateScheduleRequest  true  "Partial update"
// @Success      200   {object}  dto.ScheduleResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /schedules/{id} [patch]
func (h *ScheduleHandler) Update(c *gin.Context) {
	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "スケジュールの更新に失敗しました", err)
		return
	}
	s, err := h.svc.Update(c.Request.Context(), userID(c), c.Param("id"), service.SchedulePatch{
		Title:     req.Title,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Memo:      req.Memo,
	})
	if err != nil {
		fail(c, "スケジュールの更新に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, dto.ScheduleResult{
		Item:         scheduleToResponse(s, h.svc.Location()),
		Notification: service.Success("スケジュールを更新しました"),
	})
}

// Delete godoc
// @Summary      Delete a schedule
// @Tags         schedules
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Schedule ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		fail(c, "スケジュールの削除に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Notification: service.Success("スケジュールを削除しました")})
}

// Export godoc
// @Summary      Export one month of schedules as xlsx
// @Tags         schedules
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        month  query  string  false  "YYYY-MM, defaults to the current month"
// @Param        mode   query  string  false  "personal or team"  Enums(personal, team)
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /schedules/export [get]
func (h *ScheduleHandler) Export(c *gin.Context) {
	mode, ok := viewMode(c)
	if !ok {
		return
	}
	loc := h.svc.Location()
	now := time.Now().In(loc)
	year, month := now.Year(), now.Month()
	if q := c.Query("month"); q != "" {
		if year, month, ok = calendar.ParseMonth(q); !ok {
			badRequest(c, "エクスポートに失敗しました", service.ErrInvalidMonth)
			return
		}
	}
	list, err := h.svc.Month(c.Request.Context(), userID(c), mode, year, month)
	if err != nil {
		fail(c, "エクスポートに失敗しました", err)
		return
	}
	buf, err := export.Schedules(year, month, loc, list)
	if err != nil {
		fail(c, "エクスポートに失敗しました", err)
		return
	}
	name := fmt.Sprintf("schedules-%s.xlsx", export.SheetName(year, month))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
