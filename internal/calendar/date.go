package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// stampRe matches a date with an optional wall-clock part and an optional
// trailing offset. The offset is discarded: the wall clock is what the user typed.
var stampRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})(?:[T ](\d{2}:\d{2}(?::\d{2}(?:\.\d+)?)?)(?:Z|[+-]\d{2}(?::?\d{2})?)?)?$`)

// ParseWallClock parses backend date and timestamp strings such as
// "2024-06-03", "2024-06-03 09:00:00+09:00" or "2024-06-03T09:00:00Z".
// The result carries the wall-clock fields in UTC.
func ParseWallClock(s string) (time.Time, bool) {
	m := stampRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, false
	}
	if m[2] == "" {
		t, err := time.Parse(DateLayout, m[1])
		return t, err == nil
	}
	clock := m[2]
	if len(clock) == len("15:04") {
		clock += ":00"
	}
	t, err := time.Parse("2006-01-02 15:04:05", m[1]+" "+clock)
	return t, err == nil
}

// DateKey returns the YYYY-MM-DD component of s, or false when s is not a
// recognisable date.
func DateKey(s string) (string, bool) {
	t, ok := ParseWallClock(s)
	if !ok {
		return "", false
	}
	return t.Format(DateLayout), true
}

// ParseDay parses s and truncates it to its civil date.
func ParseDay(s string) (time.Time, bool) {
	t, ok := ParseWallClock(s)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

// ParseClock parses "HH:MM" or "HH:MM:SS" into an offset from midnight.
func ParseClock(s string) (time.Duration, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	limits := []int{23, 59, 59}
	var d time.Duration
	units := []time.Duration{time.Hour, time.Minute, time.Second}
	for i, p := range parts {
		if len(p) != 2 {
			return 0, false
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > limits[i] {
			return 0, false
		}
		d += time.Duration(n) * units[i]
	}
	return d, true
}

// Combine places the clock time on day in loc.
func Combine(day time.Time, clock string, loc *time.Location) (time.Time, error) {
	off, ok := ParseClock(clock)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid time %q: use HH:MM", clock)
	}
	base := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	return base.Add(off), nil
}

// NormalizeClock returns s as HH:MM.
func NormalizeClock(s string) (string, bool) {
	off, ok := ParseClock(s)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", int(off.Hours()), int(off.Minutes())%60), true
}

// civilKey formats day-precision values without converting zones; pgx hands
// DATE columns back as UTC midnight.
func civilKey(t time.Time) (string, bool) {
	if t.IsZero() {
		return "", false
	}
	return t.Format(DateLayout), true
}

func instantKey(t time.Time, loc *time.Location) (string, bool) {
	if t.IsZero() {
		return "", false
	}
	return t.In(loc).Format(DateLayout), true
}

// ParseMonth parses "2024-06".
func ParseMonth(s string) (int, time.Month, bool) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, false
	}
	return t.Year(), t.Month(), true
}
