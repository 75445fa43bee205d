package dto

import (
	"time"

	"github.com/ikeike55momo/schedule/internal/service"
)

type CreateTimeRecordRequest struct {
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
	Type       string `json:"type" binding:"required"`
	NightShift bool   `json:"isNightShift"`
}

type TimeRecordResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Type       string    `json:"type"`
	Label      string    `json:"label"`
	NightShift bool      `json:"isNightShift"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ListTimeRecordsResponse struct {
	Items []TimeRecordResponse `json:"items"`
}

type TimeRecordResult struct {
	Item         TimeRecordResponse   `json:"item"`
	Notification service.Notification `json:"notification"`
}
