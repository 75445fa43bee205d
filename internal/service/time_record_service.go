package service

import (
	"context"

	"github.com/ikeike55momo/schedule/internal/calendar"
	dom "github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/repo"
)

type TimeRecordInput struct {
	Date       string
	Time       string
	Kind       dom.RecordKind
	NightShift bool
}

// TimeRecordService checks each stamp on its own. Sequences such as two
// clock-ins in a row are accepted.
type TimeRecordService struct {
	repo  repo.TimeRecordRepo
	cache MonthCache
}

func NewTimeRecordService(r repo.TimeRecordRepo, c MonthCache) *TimeRecordService {
	return &TimeRecordService{repo: r, cache: c}
}

func (s *TimeRecordService) Create(ctx context.Context, userID string, in TimeRecordInput) (dom.TimeRecord, error) {
	if !in.Kind.Valid() {
		return dom.TimeRecord{}, ErrInvalidKind
	}
	day, ok := calendar.ParseDay(in.Date)
	if !ok {
		return dom.TimeRecord{}, ErrInvalidDate
	}
	clock, ok := calendar.NormalizeClock(in.Time)
	if !ok {
		return dom.TimeRecord{}, ErrInvalidTime
	}
	r, err := s.repo.Create(ctx, dom.TimeRecord{
		UserID:     userID,
		Date:       day,
		Time:       clock,
		Kind:       in.Kind,
		NightShift: in.NightShift,
	})
	if err != nil {
		return dom.TimeRecord{}, storeErr(err)
	}
	invalidate(ctx, s.cache, userID)
	return r, nil
}

func (s *TimeRecordService) List(ctx context.Context, userID string, mode dom.ViewMode) ([]dom.TimeRecord, error) {
	switch mode {
	case dom.ViewPersonal:
		return s.repo.ListByOwner(ctx, userID)
	case dom.ViewTeam:
		return s.repo.ListAll(ctx)
	}
	return nil, ErrInvalidViewMode
}

func (s *TimeRecordService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return storeErr(err)
	}
	invalidate(ctx, s.cache, userID)
	return nil
}
