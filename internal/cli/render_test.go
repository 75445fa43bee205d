package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikeike55momo/schedule/internal/calendar"
	dom "github.com/ikeike55momo/schedule/internal/domain"
)

func TestRenderMonth(t *testing.T) {
	schedules := append(sampleSchedules(), dom.Schedule{
		ID:    "s2",
		Title: "Review",
		Start: time.Date(2024, 6, 3, 15, 0, 0, 0, jst),
		End:   time.Date(2024, 6, 3, 16, 0, 0, 0, jst),
	})
	out := RenderMonth(calendar.Build(2024, time.June, jst, schedules, nil, nil))

	assert.Contains(t, out, "2024年 6月")
	for _, w := range calendar.Weekdays {
		assert.Contains(t, out, w)
	}
	assert.Contains(t, out, "他1件")
	assert.NotContains(t, out, "Review", "only the first schedule is drawn")
	assert.Contains(t, out, "--month 2024-05")
	assert.Contains(t, out, "--month 2024-07")
}

func TestRenderMonthNavigationWrapsYear(t *testing.T) {
	out := RenderMonth(calendar.Build(2024, time.December, jst, nil, nil, nil))
	assert.Contains(t, out, "--month 2024-11")
	assert.Contains(t, out, "--month 2025-01")
}

func TestRenderCellOutsideMonth(t *testing.T) {
	c := calendar.Cell{Date: "2024-05-26", Day: 26, InMonth: false, Schedules: []calendar.ScheduleSnippet{{Text: "Hidden"}}}
	out := renderCell(c)
	assert.Contains(t, out, "26")
	assert.NotContains(t, out, "Hidden")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 9))
	got := truncate("Standup 09:00", 9)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, len([]rune(got)), 9)
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		d, err := LoadDefaults(filepath.Join(dir, "none.toml"))
		require.NoError(t, err)
		assert.Equal(t, Defaults{}, d)
	})

	t.Run("values", func(t *testing.T) {
		path := filepath.Join(dir, "ok.toml")
		require.NoError(t, os.WriteFile(path, []byte(`user_id = "u1"
mode = "team"
spreadsheet_id = "sheet-1"
sheet_range = "シート1!A:E"
`), 0o600))
		d, err := LoadDefaults(path)
		require.NoError(t, err)
		assert.Equal(t, Defaults{UserID: "u1", Mode: "team", SpreadsheetID: "sheet-1", SheetRange: "シート1!A:E"}, d)
	})

	t.Run("bad mode", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte(`mode = "all"`), 0o600))
		_, err := LoadDefaults(path)
		assert.ErrorContains(t, err, "mode must be personal or team")
	})

	t.Run("broken toml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.toml")
		require.NoError(t, os.WriteFile(path, []byte(`user_id = `), 0o600))
		_, err := LoadDefaults(path)
		assert.Error(t, err)
	})
}
