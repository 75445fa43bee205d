package calendar

import (
	"time"

	"github.com/ikeike55momo/schedule/internal/domain"
)

// ScheduleKey is the date bucket of a schedule: the wall-clock date of its
// start in loc.
func ScheduleKey(s domain.Schedule, loc *time.Location) (string, bool) {
	return instantKey(s.Start, loc)
}

func TaskKey(t domain.Task) (string, bool) {
	if t.DueDate == nil {
		return "", false
	}
	return civilKey(*t.DueDate)
}

func TimeRecordKey(r domain.TimeRecord) (string, bool) {
	return civilKey(r.Date)
}

// MatchSchedules keeps the schedules starting on day, in input order.
func MatchSchedules(day string, loc *time.Location, list []domain.Schedule) []domain.Schedule {
	var out []domain.Schedule
	for _, s := range list {
		if k, ok := ScheduleKey(s, loc); ok && k == day {
			out = append(out, s)
		}
	}
	return out
}

func MatchTasks(day string, list []domain.Task) []domain.Task {
	var out []domain.Task
	for _, t := range list {
		if k, ok := TaskKey(t); ok && k == day {
			out = append(out, t)
		}
	}
	return out
}

func MatchTimeRecords(day string, list []domain.TimeRecord) []domain.TimeRecord {
	var out []domain.TimeRecord
	for _, r := range list {
		if k, ok := TimeRecordKey(r); ok && k == day {
			out = append(out, r)
		}
	}
	return out
}

// Detail is everything recorded on one date; it backs the click panel.
type Detail struct {
	Date        string
	Schedules   []domain.Schedule
	Tasks       []domain.Task
	TimeRecords []domain.TimeRecord
}

func DayDetail(day string, loc *time.Location, schedules []domain.Schedule, tasks []domain.Task, records []domain.TimeRecord) Detail {
	return Detail{
		Date:        day,
		Schedules:   MatchSchedules(day, loc, schedules),
		Tasks:       MatchTasks(day, tasks),
		TimeRecords: MatchTimeRecords(day, records),
	}
}
