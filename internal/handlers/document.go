package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	dom "github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/dto"
	"github.com/ikeike55momo/schedule/internal/service"
)

type DocumentHandler struct {
	svc *service.DocumentService
}

func NewDocumentHandler(svc *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// List godoc
// @Summary      List a folder
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        path  query     string  false  "Folder path, / by default"
// @Success      200   {object}  dto.ListDocumentsResponse
// @Router       /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	path := service.NormalizePath(c.Query("path"))
	list, err := h.svc.List(c.Request.Context(), userID(c), path)
	if err != nil {
		fail(c, "ドキュメントの取得に失敗しました", err)
		return
	}
	items := make([]dto.DocumentResponse, len(list))
	for i := range list {
		items[i] = documentToResponse(list[i])
	}
	c.JSON(http.StatusOK, dto.ListDocumentsResponse{Path: path, Items: items})
}

// Create godoc
// @Summary      Create a folder or register an uploaded file
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateDocumentRequest  true  "Document"
// @Success      201   {object}  dto.DocumentResult
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /documents [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "作成に失敗しました", err)
		return
	}
	var (
		d   dom.Document
		err error
		msg string
	)
	if req.Type == dom.DocumentFolder {
		d, err = h.svc.CreateFolder(c.Request.Context(), userID(c), req.Path, req.Name)
		msg = "フォルダを作成しました"
	} else {
		d, err = h.svc.RegisterFile(c.Request.Context(), userID(c), req.Path, req.Name, req.Size)
		msg = "ファイルをアップロードしました"
	}
	if err != nil {
		fail(c, "作成に失敗しました", err)
		return
	}
	c.JSON(http.StatusCreated, dto.DocumentResult{Item: documentToResponse(d), Notification: service.Success(msg)})
}

// Delete godoc
// @Summary      Delete a document
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  dto.MessageResponse
// @Router       /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	d, err := h.svc.Delete(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		fail(c, "削除に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Notification: service.Success(d.Name + "を削除しました")})
}
