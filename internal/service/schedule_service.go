package service

import (
	"context"
	"strings"
	"time"

	"github.com/ikeike55momo/schedule/internal/calendar"
	dom "github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/repo"
)

// ScheduleInput is a schedule as the user enters it: a date plus two clock
// times in the calendar location.
type ScheduleInput struct {
	Title     string
	Date      string
	StartTime string
	EndTime   string
	Memo      string
}

// SchedulePatch changes only the non-nil fields.
type SchedulePatch struct {
	Title     *string
	Date      *string
	StartTime *string
	EndTime   *string
	Memo      *string
}

type ScheduleService struct {
	repo  repo.ScheduleRepo
	cache MonthCache
	loc   *time.Location
}

// NewScheduleService creates a ScheduleService. If c is nil, no cache is invalidated.
func NewScheduleService(r repo.ScheduleRepo, c MonthCache, loc *time.Location) *ScheduleService {
	if loc == nil {
		loc = time.Local
	}
	return &ScheduleService{repo: r, cache: c, loc: loc}
}

func (s *ScheduleService) Location() *time.Location { return s.loc }

func (s *ScheduleService) Create(ctx context.Context, userID string, in ScheduleInput) (dom.Schedule, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return dom.Schedule{}, ErrEmptyTitle
	}
	start, end, err := s.span(in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return dom.Schedule{}, err
	}
	out, err := s.repo.Create(ctx, dom.Schedule{
		UserID: userID,
		Title:  title,
		Start:  start,
		End:    end,
		Memo:   strings.TrimSpace(in.Memo),
	})
	if err != nil {
		return dom.Schedule{}, storeErr(err)
	}
	invalidate(ctx, s.cache, userID)
	return out, nil
}

// List returns the caller's schedules, or everyone's in team mode.
func (s *ScheduleService) List(ctx context.Context, userID string, mode dom.ViewMode) ([]dom.Schedule, error) {
	switch mode {
	case dom.ViewPersonal:
		return s.repo.ListByOwner(ctx, userID)
	case dom.ViewTeam:
		return s.repo.ListAll(ctx)
	}
	return nil, ErrInvalidViewMode
}

// Month lists the schedules that start within year/month in the calendar location.
func (s *ScheduleService) Month(ctx context.Context, userID string, mode dom.ViewMode, year int, month time.Month) ([]dom.Schedule, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	to := from.AddDate(0, 1, 0)
	switch mode {
	case dom.ViewPersonal:
		return s.repo.ListRange(ctx, userID, from, to)
	case dom.ViewTeam:
		return s.repo.ListRange(ctx, "", from, to)
	}
	return nil, ErrInvalidViewMode
}

func (s *ScheduleService) Update(ctx context.Context, userID, id string, p SchedulePatch) (dom.Schedule, error) {
	existing, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return dom.Schedule{}, storeErr(err)
	}
	patch := existing
	if p.Title != nil {
		patch.Title = strings.TrimSpace(*p.Title)
		if patch.Title == "" {
			return dom.Schedule{}, ErrEmptyTitle
		}
	}
	if p.Memo != nil {
		patch.Memo = strings.TrimSpace(*p.Memo)
	}
	if p.Date != nil || p.StartTime != nil || p.EndTime != nil {
		date := existing.Start.In(s.loc).Format(calendar.DateLayout)
		startClock := existing.Start.In(s.loc).Format(calendar.ClockLayout)
		endClock := existing.End.In(s.loc).Format(calendar.ClockLayout)
		if p.Date != nil {
			date = *p.Date
		}
		if p.StartTime != nil {
			startClock = *p.StartTime
		}
		if p.EndTime != nil {
			endClock = *p.EndTime
		}
		patch.Start, patch.End, err = s.span(date, startClock, endClock)
		if err != nil {
			return dom.Schedule{}, err
		}
	}
	out, err := s.repo.Update(ctx, userID, id, patch)
	if err != nil {
		return dom.Schedule{}, storeErr(err)
	}
	invalidate(ctx, s.cache, userID)
	return out, nil
}

func (s *ScheduleService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return storeErr(err)
	}
	invalidate(ctx, s.cache, userID)
	return nil
}

func (s *ScheduleService) span(date, startClock, endClock string) (time.Time, time.Time, error) {
	day, ok := calendar.ParseDay(date)
	if !ok {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	start, err := calendar.Combine(day, startClock, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidTime
	}
	end, err := calendar.Combine(day, endClock, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidTime
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, ErrInvalidTimeRange
	}
	return start, end, nil
}
