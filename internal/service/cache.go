package service

import (
	"context"
	"log"
	"time"

	"github.com/ikeike55momo/schedule/internal/calendar"
)

// MonthCache stores built month grids; *cache.CalendarCache implements it.
type MonthCache interface {
	GetMonth(ctx context.Context, owner string, year int, month time.Month) (calendar.Month, bool, error)
	SetMonth(ctx context.Context, owner string, m calendar.Month) error
	Invalidate(ctx context.Context, owner string) error
}

func invalidate(ctx context.Context, c MonthCache, owner string) {
	if c == nil {
		return
	}
	if err := c.Invalidate(ctx, owner); err != nil {
		log.Printf("calendar cache invalidate %s: %v", owner, err)
	}
}
