package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ikeike55momo/schedule/internal/calendar"

	"github.com/redis/go-redis/v9"
)

const (
	keyMonth = "calendar:month:"
	// scopeTeam is the owner segment of team-wide grids.
	scopeTeam = "team"
)

// CalendarCache caches built month grids in Redis, per owner and for the team.
type CalendarCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCalendarCache returns a new CalendarCache.
func NewCalendarCache(rdb *redis.Client, ttl time.Duration) *CalendarCache {
	return &CalendarCache{rdb: rdb, ttl: ttl}
}

// MonthKey names the cached grid. An empty owner means the team grid.
func MonthKey(owner string, year int, month time.Month) string {
	if owner == "" {
		owner = scopeTeam
	}
	return fmt.Sprintf("%s%s:%04d-%02d", keyMonth, owner, year, int(month))
}

// GetMonth returns the cached grid; ok is false on a miss.
func (c *CalendarCache) GetMonth(ctx context.Context, owner string, year int, month time.Month) (calendar.Month, bool, error) {
	b, err := c.rdb.Get(ctx, MonthKey(owner, year, month)).Bytes()
	if err == redis.Nil {
		return calendar.Month{}, false, nil
	}
	if err != nil {
		return calendar.Month{}, false, err
	}
	var m calendar.Month
	if err := json.Unmarshal(b, &m); err != nil {
		return calendar.Month{}, false, err
	}
	return m, true, nil
}

// SetMonth stores the grid.
func (c *CalendarCache) SetMonth(ctx context.Context, owner string, m calendar.Month) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, MonthKey(owner, m.Year, m.Month), b, c.ttl).Err()
}

// Invalidate removes every cached grid of owner and every team grid, since
// a write by one member changes the team view too.
func (c *CalendarCache) Invalidate(ctx context.Context, owner string) error {
	for _, scope := range []string{owner, scopeTeam} {
		if scope == "" {
			continue
		}
		iter := c.rdb.Scan(ctx, 0, keyMonth+scope+":*", 100).Iterator()
		for iter.Next(ctx) {
			if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
				return err
			}
		}
		if err := iter.Err(); err != nil {
			return err
		}
	}
	return nil
}
