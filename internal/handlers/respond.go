package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ikeike55momo/schedule/internal/auth"
	"github.com/ikeike55momo/schedule/internal/bridge"
	"github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/dto"
	"github.com/ikeike55momo/schedule/internal/service"
)

var invalidInput = []error{
	service.ErrEmptyTitle,
	service.ErrEmptyContent,
	service.ErrEmptyName,
	service.ErrInvalidDate,
	service.ErrInvalidMonth,
	service.ErrInvalidTime,
	service.ErrInvalidTimeRange,
	service.ErrInvalidProgress,
	service.ErrInvalidKind,
	service.ErrInvalidEmail,
	service.ErrInvalidViewMode,
	service.ErrSpreadsheetRequired,
	bridge.ErrInvalidArguments,
}

// statusOf maps service and bridge errors to an HTTP status.
func statusOf(err error) int {
	var toolErr *service.ToolError
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.As(err, &toolErr),
		errors.Is(err, bridge.ErrConnect),
		errors.Is(err, bridge.ErrTimeout),
		errors.Is(err, bridge.ErrConnectionClosed):
		return http.StatusBadGateway
	}
	for _, e := range invalidInput {
		if errors.Is(err, e) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// fail responds with the mapped status and a notification titled msg.
func fail(c *gin.Context, msg string, err error) {
	n := service.Failure(msg, err)
	failWith(c, statusOf(err), err, n)
}

func failWith(c *gin.Context, status int, err error, n service.Notification) {
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, dto.ErrorResponse{Error: err.Error(), Notification: &n})
}

// badRequest reports a body or query that could not be bound.
func badRequest(c *gin.Context, msg string, err error) {
	failWith(c, http.StatusBadRequest, err, service.Failure(msg, err))
}

// viewMode reads the mode query parameter; it writes a 400 and reports
// false when the value is unknown.
func viewMode(c *gin.Context) (domain.ViewMode, bool) {
	m, ok := domain.ParseViewMode(c.Query("mode"))
	if !ok {
		badRequest(c, "表示モードが不正です", service.ErrInvalidViewMode)
		return "", false
	}
	return m, true
}

func userID(c *gin.Context) string { return auth.UserIDFromContext(c) }
