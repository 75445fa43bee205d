package cli

import (
	"context"
	"time"

	"github.com/ikeike55momo/schedule/internal/app"
	"github.com/ikeike55momo/schedule/internal/bridge"
	"github.com/ikeike55momo/schedule/internal/calendar"
	"github.com/ikeike55momo/schedule/internal/config"
	dom "github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/service"
)

// Backend is what the commands need from the service layer.
type Backend interface {
	Location() *time.Location
	Month(ctx context.Context, userID string, mode dom.ViewMode, year int, month time.Month) (calendar.Month, error)
	Preview(ctx context.Context, userID string, mode dom.ViewMode, date string) (calendar.Panel, error)
	MonthSchedules(ctx context.Context, userID string, mode dom.ViewMode, year int, month time.Month) ([]dom.Schedule, error)
	SyncCalendar(ctx context.Context, userID string, mode dom.ViewMode) (service.Notification, error)
	SyncSheets(ctx context.Context, spreadsheetID, sheetRange string) (service.Notification, error)
	Close() error
}

type serviceBackend struct {
	svc    app.Services
	loc    *time.Location
	closer func()
	bridge *bridge.Manager
}

// OpenBackend connects to Postgres and the bridge. Month grids are built
// fresh; the CLI does not use the Redis cache.
func OpenBackend(cfg config.Config) (Backend, error) {
	loc, err := cfg.Calendar.Location()
	if err != nil {
		return nil, err
	}
	db, err := app.OpenPostgres(cfg.PG.DSN)
	if err != nil {
		return nil, err
	}
	b := bridge.New(bridge.Options{URL: cfg.Bridge.URL, Timeout: cfg.Bridge.Timeout.Duration()})
	return &serviceBackend{
		svc:    app.NewServices(db, nil, b, 0, loc),
		loc:    loc,
		closer: db.Close,
		bridge: b,
	}, nil
}

func (b *serviceBackend) Location() *time.Location { return b.loc }

func (b *serviceBackend) Month(ctx context.Context, userID string, mode dom.ViewMode, year int, month time.Month) (calendar.Month, error) {
	return b.svc.Calendar.Month(ctx, userID, mode, year, month)
}

func (b *serviceBackend) Preview(ctx context.Context, userID string, mode dom.ViewMode, date string) (calendar.Panel, error) {
	return b.svc.Calendar.Preview(ctx, userID, mode, date)
}

func (b *serviceBackend) MonthSchedules(ctx context.Context, userID string, mode dom.ViewMode, year int, month time.Month) ([]dom.Schedule, error) {
	return b.svc.Schedules.Month(ctx, userID, mode, year, month)
}

func (b *serviceBackend) SyncCalendar(ctx context.Context, userID string, mode dom.ViewMode) (service.Notification, error) {
	return b.svc.Sync.SyncCalendar(ctx, userID, mode)
}

func (b *serviceBackend) SyncSheets(ctx context.Context, spreadsheetID, sheetRange string) (service.Notification, error) {
	return b.svc.Sync.SyncSheets(ctx, spreadsheetID, sheetRange)
}

func (b *serviceBackend) Close() error {
	err := b.bridge.Close()
	b.closer()
	return err
}
