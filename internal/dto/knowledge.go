package dto

import (
	"time"

	"github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/service"
)

type CreateDocumentRequest struct {
	Path string `json:"path"`
	Name string `json:"name" binding:"required,max=255"`
	Type string `json:"type" binding:"required,oneof=file folder"`
	Size int64  `json:"size" binding:"min=0"`
}

type DocumentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

type DocumentResult struct {
	Item         DocumentResponse     `json:"item"`
	Notification service.Notification `json:"notification"`
}

type ListDocumentsResponse struct {
	Path  string             `json:"path"`
	Items []DocumentResponse `json:"items"`
}

type CreateArticleRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
	Tags    string `json:"tags"` // comma separated
}

type ArticleResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
}

type ArticleResult struct {
	Item         ArticleResponse      `json:"item"`
	Notification service.Notification `json:"notification"`
}

type ListArticlesResponse struct {
	Items []ArticleResponse `json:"items"`
}

type UpdateProfileRequest struct {
	FullName             *string                      `json:"fullName" binding:"omitempty,max=200"`
	NotificationSettings *domain.NotificationSettings `json:"notificationSettings"`
	SecuritySettings     *domain.SecuritySettings     `json:"securitySettings"`
}

type ProfileResponse struct {
	ID                   string                      `json:"id"`
	FullName             string                      `json:"fullName"`
	Email                string                      `json:"email"`
	AvatarURL            *string                     `json:"avatarUrl"`
	NotificationSettings domain.NotificationSettings `json:"notificationSettings"`
	SecuritySettings     domain.SecuritySettings     `json:"securitySettings"`
	UpdatedAt            time.Time                   `json:"updatedAt"`
}

type AddAllowedUserRequest struct {
	Email string `json:"email" binding:"required"`
}

type AllowedUserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type AllowedUserResult struct {
	Item         AllowedUserResponse  `json:"item"`
	Notification service.Notification `json:"notification"`
}

type ListAllowedUsersResponse struct {
	Items []AllowedUserResponse `json:"items"`
}

type ProfileResult struct {
	Item         ProfileResponse      `json:"item"`
	Notification service.Notification `json:"notification"`
}
