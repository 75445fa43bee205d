package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ikeike55momo/schedule/internal/dto"
	"github.com/ikeike55momo/schedule/internal/service"
)

type ArticleHandler struct {
	svc *service.ArticleService
}

func NewArticleHandler(svc *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

// List godoc
// @Summary      List knowledge base articles
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ListArticlesResponse
// @Router       /articles [get]
func (h *ArticleHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, "記事の取得に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, dto.ListArticlesResponse{Items: articlesToResponses(list)})
}

// Search godoc
// @Summary      Search articles by title, content or tag
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  false  "Search text"
// @Success      200  {object}  dto.ListArticlesResponse
// @Router       /articles/search [get]
func (h *ArticleHandler) Search(c *gin.Context) {
	list, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, "記事の取得に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, dto.ListArticlesResponse{Items: articlesToResponses(list)})
}

// Create godoc
// @Summary      Create an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateArticleRequest  true  "Article"
// @Success      201   {object}  dto.ArticleResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /articles [post]
func (h *ArticleHandler) Create(c *gin.Context) {
	var req dto.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "タイトルと内容を入力してください", err)
		return
	}
	a, err := h.svc.Create(c.Request.Context(), userID(c), req.Title, req.Content, req.Tags)
	if err != nil {
		msg := "記事の作成に失敗しました"
		if errors.Is(err, service.ErrEmptyTitle) || errors.Is(err, service.ErrEmptyContent) {
			msg = "タイトルと内容を入力してください"
		}
		fail(c, msg, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ArticleResult{Item: articleToResponse(a), Notification: service.Success("記事を作成しました")})
}
