package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ikeike55momo/schedule/internal/calendar"
	dom "github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/dto"
	"github.com/ikeike55momo/schedule/internal/service"
)

type TimeRecordHandler struct {
	svc *service.TimeRecordService
}

func NewTimeRecordHandler(svc *service.TimeRecordService) *TimeRecordHandler {
	return &TimeRecordHandler{svc: svc}
}

// recordedDescription renders e.g. "出勤 - 2024-06-03 22:10 (夜勤)".
func recordedDescription(r dom.TimeRecord) string {
	s := r.Kind.Label() + " - " + r.Date.Format(calendar.DateLayout) + " " + r.Time
	if r.NightShift {
		s += " (" + dom.NightShiftLabel + ")"
	}
	return s
}

// Create godoc
// @Summary      Record an attendance stamp
// @Tags         time-records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateTimeRecordRequest  true  "Stamp"
// @Success      201   {object}  dto.TimeRecordResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /time-records [post]
func (h *TimeRecordHandler) Create(c *gin.Context) {
	var req dto.CreateTimeRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "勤怠の記録に失敗しました", err)
		return
	}
	r, err := h.svc.Create(c.Request.Context(), userID(c), service.TimeRecordInput{
		Date:       req.Date,
		Time:       req.Time,
		Kind:       dom.RecordKind(req.Type),
		NightShift: req.NightShift,
	})
	if err != nil {
		fail(c, "勤怠の記録に失敗しました", err)
		return
	}
	n := service.Success("勤怠を記録しました")
	n.Description = recordedDescription(r)
	c.JSON(http.StatusCreated, dto.TimeRecordResult{Item: timeRecordToResponse(r), Notification: n})
}

// List godoc
// @Summary      List attendance stamps
// @Tags         time-records
// @Produce      json
// @Security     BearerAuth
// @Param        mode  query     string  false  "personal or team"  Enums(personal, team)
// @Success      200   {object}  dto.ListTimeRecordsResponse
// @Router       /time-records [get]
func (h *TimeRecordHandler) List(c *gin.Context) {
	mode, ok := viewMode(c)
	if !ok {
		return
	}
	list, err := h.svc.List(c.Request.Context(), userID(c), mode)
	if err != nil {
		fail(c, "記録の取得に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, dto.ListTimeRecordsResponse{Items: timeRecordsToResponses(list)})
}

// Delete godoc
// @Summary      Delete an attendance stamp
// @Tags         time-records
// @Security     BearerAuth
// @Param        id   path      string  true  "Record ID"
// @Success      200  {object}  dto.MessageResponse
// @Router       /time-records/{id} [delete]
func (h *TimeRecordHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		fail(c, "記録の削除に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Notification: service.Success("記録を削除しました")})
}
