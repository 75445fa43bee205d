// Package export renders schedules as spreadsheets.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ikeike55momo/schedule/internal/calendar"
	"github.com/ikeike55momo/schedule/internal/domain"
)

// Headers match the column order of the Google Sheets sync (A:E).
var Headers = []string{"日付", "開始", "終了", "タイトル", "メモ"}

// SheetName is the month's sheet, e.g. "2024-06".
func SheetName(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// Schedules writes one row per schedule, in the given order, to a new
// workbook with a single sheet for year/month.
func Schedules(year int, month time.Month, loc *time.Location, list []domain.Schedule) (*bytes.Buffer, error) {
	if loc == nil {
		loc = time.UTC
	}
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(year, month)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6FA"}, Pattern: 1},
	})
	if err == nil {
		_ = f.SetRowStyle(sheet, 1, 1, headerStyle)
	}

	for i, s := range list {
		start := s.Start.In(loc)
		values := []interface{}{
			start.Format(calendar.DateLayout),
			start.Format(calendar.ClockLayout),
			s.End.In(loc).Format(calendar.ClockLayout),
			s.Title,
			s.Memo,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	_ = f.SetColWidth(sheet, "A", "C", 12)
	_ = f.SetColWidth(sheet, "D", "E", 40)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return &buf, nil
}
