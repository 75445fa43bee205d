package dto

import (
	"time"

	"github.com/ikeike55momo/schedule/internal/service"
)

type CreateScheduleRequest struct {
	Title     string `json:"title" binding:"required,max=200"`
	Date      string `json:"date" binding:"required"`      // "2024-06-03"
	StartTime string `json:"startTime" binding:"required"` // "09:00"
	EndTime   string `json:"endTime" binding:"required"`
	Memo      string `json:"memo" binding:"max=2000"`
}

type UpdateScheduleRequest struct {
	Title     *string `json:"title" binding:"omitempty,max=200"`
	Date      *string `json:"date"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Memo      *string `json:"memo" binding:"omitempty,max=2000"`
}

type ScheduleResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Memo      string    `json:"memo"`
	CreatedAt time.Time `json:"createdAt"`
}

type ListSchedulesResponse struct {
	Items []ScheduleResponse `json:"items"`
}

type ScheduleResult struct {
	Item         ScheduleResponse     `json:"item"`
	Notification service.Notification `json:"notification"`
}
