package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/dto"
	"github.com/ikeike55momo/schedule/internal/service"
)

// SyncHandler pushes schedules through the bridge. Sheets requests without a
// spreadsheet id fall back to the configured one.
type SyncHandler struct {
	svc           *service.SyncService
	spreadsheetID string
	sheetRange    string
}

func NewSyncHandler(svc *service.SyncService, spreadsheetID, sheetRange string) *SyncHandler {
	return &SyncHandler{svc: svc, spreadsheetID: spreadsheetID, sheetRange: sheetRange}
}

// Calendar godoc
// @Summary      Sync schedules to Google Calendar
// @Tags         sync
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.SyncCalendarRequest  false  "Sync mode, personal by default"
// @Success      200   {object}  dto.SyncResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /sync/calendar [post]
func (h *SyncHandler) Calendar(c *gin.Context) {
	var req dto.SyncCalendarRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, service.MsgCalendarSyncFailed, err)
			return
		}
	}
	mode, _ := domain.ParseViewMode(req.Mode)
	n, err := h.svc.SyncCalendar(c.Request.Context(), userID(c), mode)
	if err != nil {
		failWith(c, statusOf(err), err, n)
		return
	}
	c.JSON(http.StatusOK, dto.SyncResponse{OK: true, Notification: n})
}

// Sheets godoc
// @Summary      Sync every schedule to a spreadsheet
// @Tags         sync
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.SyncSheetsRequest  true  "Target spreadsheet"
// @Success      200   {object}  dto.SyncResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /sync/sheets [post]
func (h *SyncHandler) Sheets(c *gin.Context) {
	var req dto.SyncSheetsRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, service.MsgSheetsSyncFailed, err)
			return
		}
	}
	if req.SpreadsheetID == "" {
		req.SpreadsheetID = h.spreadsheetID
	}
	if req.Range == "" {
		req.Range = h.sheetRange
	}
	n, err := h.svc.SyncSheets(c.Request.Context(), req.SpreadsheetID, req.Range)
	if err != nil {
		failWith(c, statusOf(err), err, n)
		return
	}
	c.JSON(http.StatusOK, dto.SyncResponse{OK: true, Notification: n})
}
