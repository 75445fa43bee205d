package service

import (
	"context"
	"strings"

	dom "github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/repo"
)

type ProfilePatch struct {
	FullName             *string
	NotificationSettings *dom.NotificationSettings
	SecuritySettings     *dom.SecuritySettings
}

type ProfileService struct {
	repo repo.ProfileRepo
}

func NewProfileService(r repo.ProfileRepo) *ProfileService {
	return &ProfileService{repo: r}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (dom.Profile, error) {
	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		return dom.Profile{}, storeErr(err)
	}
	return p, nil
}

func (s *ProfileService) Update(ctx context.Context, userID string, p ProfilePatch) (dom.Profile, error) {
	existing, err := s.repo.Get(ctx, userID)
	if err != nil {
		return dom.Profile{}, storeErr(err)
	}
	patch := existing
	if p.FullName != nil {
		patch.FullName = strings.TrimSpace(*p.FullName)
	}
	if p.NotificationSettings != nil {
		patch.NotificationSettings = *p.NotificationSettings
	}
	if p.SecuritySettings != nil {
		patch.SecuritySettings = *p.SecuritySettings
	}
	out, err := s.repo.Update(ctx, userID, patch)
	if err != nil {
		return dom.Profile{}, storeErr(err)
	}
	return out, nil
}
