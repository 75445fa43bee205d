package dto

import (
	"time"

	"github.com/ikeike55momo/schedule/internal/service"
)

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Progress    int    `json:"progress"`
	DueDate     string `json:"dueDate"` // optional "2024-06-10"
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	DueDate     *string `json:"dueDate"` // "" clears the due date
}

type ProgressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

type TaskResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Progress    int       `json:"progress"`
	DueDate     *string   `json:"dueDate"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ListTasksResponse struct {
	Items []TaskResponse `json:"items"`
}

type TaskResult struct {
	Item         TaskResponse         `json:"item"`
	Notification service.Notification `json:"notification"`
}
