package dto

import "github.com/ikeike55momo/schedule/internal/service"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error        string                `json:"error"`
	Notification *service.Notification `json:"notification,omitempty"`
}

// MessageResponse acknowledges a write with a notification.
type MessageResponse struct {
	Notification service.Notification `json:"notification"`
}

type SessionResponse struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}
