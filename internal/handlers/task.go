package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ikeike55momo/schedule/internal/dto"
	"github.com/ikeike55momo/schedule/internal/service"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateTaskRequest  true  "Task body"
// @Success      201   {object}  dto.TaskResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "タスクの追加に失敗しました", err)
		return
	}
	t, err := h.svc.Create(c.Request.Context(), userID(c), service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Progress:    req.Progress,
		DueDate:     req.DueDate,
	})
	if err != nil {
		fail(c, "タスクの追加に失敗しました", err)
		return
	}
	n := service.Success("タスクを追加しました")
	n.Description = t.Title
	c.JSON(http.StatusCreated, dto.TaskResult{Item: taskToResponse(t), Notification: n})
}

// List godoc
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        mode  query     string  false  "personal or team"  Enums(personal, team)
// @Success      200   {object}  dto.ListTasksResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	mode, ok := viewMode(c)
	if !ok {
		return
	}
	list, err := h.svc.List(c.Request.Context(), userID(c), mode)
	if err != nil {
		fail(c, "タスクの読み込みに失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, dto.ListTasksResponse{Items: tasksToResponses(list)})
}

// Update godoc
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Task ID"
// @Param        body  body      dto.UpdateTaskRequest  true  "Partial update"
// @Success      200   {object}  dto.TaskResult
// @Router       /tasks/{id} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "タスクの更新に失敗しました", err)
		return
	}
	t, err := h.svc.Update(c.Request.Context(), userID(c), c.Param("id"), service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		fail(c, "タスクの更新に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskResult{Item: taskToResponse(t), Notification: service.Success("タスクを更新しました")})
}

// Progress godoc
// @Summary      Set task progress
// @Description  Reaching 100% does not complete the task.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Task ID"
// @Param        body  body      dto.ProgressRequest  true  "Progress 0-100"
// @Success      200   {object}  dto.TaskResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /tasks/{id}/progress [post]
func (h *TaskHandler) Progress(c *gin.Context) {
	var req dto.ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "タスクの更新に失敗しました", err)
		return
	}
	t, err := h.svc.SetProgress(c.Request.Context(), userID(c), c.Param("id"), *req.Progress)
	if err != nil {
		fail(c, "タスクの更新に失敗しました", err)
		return
	}
	msg := "タスクの進捗を更新しました"
	if t.Progress == 100 {
		msg = "タスクの進捗が100%になりました"
	}
	c.JSON(http.StatusOK, dto.TaskResult{Item: taskToResponse(t), Notification: service.Success(msg)})
}

// Toggle godoc
// @Summary      Flip task completion
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  dto.TaskResult
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /tasks/{id}/toggle [post]
func (h *TaskHandler) Toggle(c *gin.Context) {
	t, err := h.svc.ToggleCompleted(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		fail(c, "タスクの更新に失敗しました", err)
		return
	}
	msg := "タスクを未完了に戻しました"
	if t.Completed {
		msg = "タスクを完了しました"
	}
	c.JSON(http.StatusOK, dto.TaskResult{Item: taskToResponse(t), Notification: service.Success(msg)})
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  dto.MessageResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		fail(c, "タスクの削除に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Notification: service.Success("タスクを削除しました")})
}
