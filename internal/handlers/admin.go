package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	dom "github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/dto"
	"github.com/ikeike55momo/schedule/internal/service"
)

// AdminHandler maintains the allow-list. Routes are mounted behind
// auth.RequireAdmin.
type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func allowedToResponse(u dom.AllowedUser) dto.AllowedUserResponse {
	return dto.AllowedUserResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

// ListAllowed godoc
// @Summary      List allowed users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ListAllowedUsersResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /admin/allowed-users [get]
func (h *AdminHandler) ListAllowed(c *gin.Context) {
	list, err := h.svc.ListAllowed(c.Request.Context())
	if err != nil {
		fail(c, "許可ユーザーの読み込みに失敗しました", err)
		return
	}
	items := make([]dto.AllowedUserResponse, len(list))
	for i := range list {
		items[i] = allowedToResponse(list[i])
	}
	c.JSON(http.StatusOK, dto.ListAllowedUsersResponse{Items: items})
}

// AddAllowed godoc
// @Summary      Allow an e-mail address
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.AddAllowedUserRequest  true  "E-mail"
// @Success      201   {object}  dto.AllowedUserResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /admin/allowed-users [post]
func (h *AdminHandler) AddAllowed(c *gin.Context) {
	var req dto.AddAllowedUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "メールアドレスを入力してください", err)
		return
	}
	u, err := h.svc.AddAllowed(c.Request.Context(), req.Email)
	if err != nil {
		fail(c, "ユーザーの追加に失敗しました", err)
		return
	}
	c.JSON(http.StatusCreated, dto.AllowedUserResult{Item: allowedToResponse(u), Notification: service.Success("ユーザーを追加しました")})
}

// RemoveAllowed godoc
// @Summary      Remove an allowed user
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path      string  true  "Allowed user ID"
// @Success      200  {object}  dto.MessageResponse
// @Router       /admin/allowed-users/{id} [delete]
func (h *AdminHandler) RemoveAllowed(c *gin.Context) {
	if err := h.svc.RemoveAllowed(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, "ユーザーの削除に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Notification: service.Success("ユーザーを削除しました")})
}
