package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ikeike55momo/schedule/internal/bridge"
	"github.com/ikeike55momo/schedule/internal/calendar"
)

var jst = time.FixedZone("JST", 9*60*60)

// memMonthCache records invalidations and serves stored grids.
type memMonthCache struct {
	mu          sync.Mutex
	months      map[string]calendar.Month
	invalidated []string
}

func newMemMonthCache() *memMonthCache {
	return &memMonthCache{months: map[string]calendar.Month{}}
}

func monthKey(owner string, year int, month time.Month) string {
	return owner + "/" + time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

func (c *memMonthCache) GetMonth(_ context.Context, owner string, year int, month time.Month) (calendar.Month, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.months[monthKey(owner, year, month)]
	return m, ok, nil
}

func (c *memMonthCache) SetMonth(_ context.Context, owner string, m calendar.Month) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.months[monthKey(owner, m.Year, m.Month)] = m
	return nil
}

func (c *memMonthCache) Invalidate(_ context.Context, owner string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, owner)
	for k := range c.months {
		if strings.HasPrefix(k, owner+"/") || strings.HasPrefix(k, "/") {
			delete(c.months, k)
		}
	}
	return nil
}

// fakeInvoker records calls and replies with resp/err.
type fakeInvoker struct {
	calls []bridge.Call
	resp  bridge.Response
	err   error
}

func (f *fakeInvoker) Invoke(_ context.Context, call bridge.Call) (bridge.Response, error) {
	f.calls = append(f.calls, call)
	return f.resp, f.err
}
