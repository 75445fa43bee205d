package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ikeike55momo/schedule/internal/dto"
	"github.com/ikeike55momo/schedule/internal/service"
)

type ProfileHandler struct {
	svc *service.ProfileService
}

func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// Get godoc
// @Summary      Caller's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ProfileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, "プロフィールの取得に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, profileToResponse(p))
}

// Update godoc
// @Summary      Update name and settings
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.UpdateProfileRequest  true  "Partial update"
// @Success      200   {object}  dto.ProfileResult
// @Router       /profile [patch]
func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "設定の更新に失敗しました", err)
		return
	}
	p, err := h.svc.Update(c.Request.Context(), userID(c), service.ProfilePatch{
		FullName:             req.FullName,
		NotificationSettings: req.NotificationSettings,
		SecuritySettings:     req.SecuritySettings,
	})
	if err != nil {
		fail(c, "設定の更新に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, dto.ProfileResult{Item: profileToResponse(p), Notification: service.Success("設定を更新しました")})
}
