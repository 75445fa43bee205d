package dto

import "github.com/ikeike55momo/schedule/internal/service"

type SyncCalendarRequest struct {
	Mode string `json:"syncMode" binding:"omitempty,oneof=personal team"`
}

type SyncSheetsRequest struct {
	SpreadsheetID string `json:"spreadsheetId"`
	Range         string `json:"range"`
}

type SyncResponse struct {
	OK           bool                 `json:"ok"`
	Notification service.Notification `json:"notification"`
}
