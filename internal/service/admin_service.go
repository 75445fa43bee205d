package service

import (
	"context"
	"strings"

	dom "github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/repo"
)

// AdminService maintains the allow-list. Whether the list gates sign-in is
// up to the auth service.
type AdminService struct {
	admins  repo.AdminRepo
	allowed repo.AllowedUserRepo
}

func NewAdminService(admins repo.AdminRepo, allowed repo.AllowedUserRepo) *AdminService {
	return &AdminService{admins: admins, allowed: allowed}
}

func (s *AdminService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return s.admins.IsAdmin(ctx, userID)
}

func (s *AdminService) ListAllowed(ctx context.Context) ([]dom.AllowedUser, error) {
	return s.allowed.List(ctx)
}

// AddAllowed admits email. Adding an address twice returns ErrConflict.
func (s *AdminService) AddAllowed(ctx context.Context, email string) (dom.AllowedUser, error) {
	email = strings.TrimSpace(email)
	if at := strings.Index(email, "@"); at <= 0 || at == len(email)-1 {
		return dom.AllowedUser{}, ErrInvalidEmail
	}
	u, err := s.allowed.Add(ctx, email)
	if err != nil {
		return dom.AllowedUser{}, storeErr(err)
	}
	return u, nil
}

func (s *AdminService) RemoveAllowed(ctx context.Context, id string) error {
	return storeErr(s.allowed.Remove(ctx, id))
}
