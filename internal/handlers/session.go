package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ikeike55momo/schedule/internal/auth"
	"github.com/ikeike55momo/schedule/internal/dto"
	"github.com/ikeike55momo/schedule/internal/service"
)

type SessionHandler struct {
	store  *auth.Store
	admins auth.AdminChecker
}

func NewSessionHandler(store *auth.Store, admins auth.AdminChecker) *SessionHandler {
	return &SessionHandler{store: store, admins: admins}
}

// Me godoc
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SessionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /session [get]
func (h *SessionHandler) Me(c *gin.Context) {
	s, _ := auth.SessionFromContext(c)
	isAdmin, err := h.admins.IsAdmin(c.Request.Context(), s.UserID)
	if err != nil {
		fail(c, "セッションの取得に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, dto.SessionResponse{UserID: s.UserID, Email: s.Email, IsAdmin: isAdmin})
}

// Logout godoc
// @Summary      Revoke the current token
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MessageResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /session/logout [post]
func (h *SessionHandler) Logout(c *gin.Context) {
	s, _ := auth.SessionFromContext(c)
	if err := h.store.Revoke(c.Request.Context(), s.TokenID, s.ExpiresAt); err != nil {
		fail(c, "ログアウトに失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Notification: service.Success("ログアウトしました")})
}
