package service

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/ikeike55momo/schedule/internal/calendar"
	dom "github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/repo"
)

const sharedBuildTimeout = 30 * time.Second

// CalendarService loads the three collections and runs the aggregator over
// them. Month grids are cached; day details and previews are always fresh.
type CalendarService struct {
	schedules repo.ScheduleRepo
	tasks     repo.TaskRepo
	records   repo.TimeRecordRepo
	cache     MonthCache
	loc       *time.Location
	sf        singleflight.Group
}

// NewCalendarService creates a CalendarService. If c is nil, caching is disabled.
func NewCalendarService(s repo.ScheduleRepo, t repo.TaskRepo, r repo.TimeRecordRepo, c MonthCache, loc *time.Location) *CalendarService {
	if loc == nil {
		loc = time.Local
	}
	return &CalendarService{schedules: s, tasks: t, records: r, cache: c, loc: loc}
}

func (s *CalendarService) Location() *time.Location { return s.loc }

func (s *CalendarService) Month(ctx context.Context, userID string, mode dom.ViewMode, year int, month time.Month) (calendar.Month, error) {
	if month < time.January || month > time.December || year < 1 || year > 9999 {
		return calendar.Month{}, ErrInvalidMonth
	}
	owner, err := scope(userID, mode)
	if err != nil {
		return calendar.Month{}, err
	}
	build := func(ctx context.Context) (calendar.Month, error) {
		from := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
		sch, tasks, recs, err := s.load(ctx, owner, from, from.AddDate(0, 1, 0))
		if err != nil {
			return calendar.Month{}, err
		}
		return calendar.Build(year, month, s.loc, sch, tasks, recs), nil
	}
	if s.cache == nil {
		return build(ctx)
	}
	key := "month:" + owner + ":" + time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
	ch := s.sf.DoChan(key, func() (interface{}, error) {
		// outlives any single waiter
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedBuildTimeout)
		defer cancel()
		if m, ok, err := s.cache.GetMonth(ctx, owner, year, month); err == nil && ok {
			return m, nil
		} else if err != nil {
			log.Printf("calendar cache get %s: %v", key, err)
		}
		m, err := build(ctx)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetMonth(ctx, owner, m)
		return m, nil
	})
	select {
	case <-ctx.Done():
		return calendar.Month{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return calendar.Month{}, res.Err
		}
		return res.Val.(calendar.Month), nil
	}
}

// Day returns everything recorded on date; it backs the click detail panel.
func (s *CalendarService) Day(ctx context.Context, userID string, mode dom.ViewMode, date string) (calendar.Detail, error) {
	key, from, err := s.day(date)
	if err != nil {
		return calendar.Detail{}, err
	}
	owner, err := scope(userID, mode)
	if err != nil {
		return calendar.Detail{}, err
	}
	sch, tasks, recs, err := s.load(ctx, owner, from, from.AddDate(0, 0, 1))
	if err != nil {
		return calendar.Detail{}, err
	}
	return calendar.DayDetail(key, s.loc, sch, tasks, recs), nil
}

// Preview returns the hover panel for date.
func (s *CalendarService) Preview(ctx context.Context, userID string, mode dom.ViewMode, date string) (calendar.Panel, error) {
	d, err := s.Day(ctx, userID, mode, date)
	if err != nil {
		return calendar.Panel{}, err
	}
	return calendar.PreviewFor(d.Date, s.loc, d.Schedules, d.Tasks, d.TimeRecords), nil
}

func (s *CalendarService) day(date string) (string, time.Time, error) {
	key, ok := calendar.DateKey(date)
	if !ok {
		return "", time.Time{}, ErrInvalidDate
	}
	d, _ := time.Parse(calendar.DateLayout, key)
	return key, time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, s.loc), nil
}

// load fetches schedules starting in [from, to) plus every task and time
// record of owner; the aggregator picks the matching dates. An empty owner
// loads the team.
func (s *CalendarService) load(ctx context.Context, owner string, from, to time.Time) ([]dom.Schedule, []dom.Task, []dom.TimeRecord, error) {
	var (
		sch   []dom.Schedule
		tasks []dom.Task
		recs  []dom.TimeRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		sch, err = s.schedules.ListRange(gctx, owner, from, to)
		return err
	})
	g.Go(func() (err error) {
		if owner == "" {
			tasks, err = s.tasks.ListAll(gctx)
		} else {
			tasks, err = s.tasks.ListByOwner(gctx, owner)
		}
		return err
	})
	g.Go(func() (err error) {
		if owner == "" {
			recs, err = s.records.ListAll(gctx)
		} else {
			recs, err = s.records.ListByOwner(gctx, owner)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return sch, tasks, recs, nil
}

// scope maps a view mode to a cache and query owner; "" is the team.
func scope(userID string, mode dom.ViewMode) (string, error) {
	switch mode {
	case dom.ViewPersonal:
		return userID, nil
	case dom.ViewTeam:
		return "", nil
	}
	return "", ErrInvalidViewMode
}
