package handlers

import (
	"time"

	"github.com/ikeike55momo/schedule/internal/calendar"
	dom "github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/dto"
)

func scheduleToResponse(s dom.Schedule, loc *time.Location) dto.ScheduleResponse {
	start := s.Start.In(loc)
	return dto.ScheduleResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		Title:     s.Title,
		Date:      start.Format(calendar.DateLayout),
		StartTime: start.Format(calendar.ClockLayout),
		EndTime:   s.End.In(loc).Format(calendar.ClockLayout),
		Start:     s.Start,
		End:       s.End,
		Memo:      s.Memo,
		CreatedAt: s.CreatedAt,
	}
}

func schedulesToResponses(list []dom.Schedule, loc *time.Location) []dto.ScheduleResponse {
	out := make([]dto.ScheduleResponse, len(list))
	for i := range list {
		out[i] = scheduleToResponse(list[i], loc)
	}
	return out
}

func taskToResponse(t dom.Task) dto.TaskResponse {
	r := dto.TaskResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Progress:    t.Progress,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
	}
	if t.DueDate != nil {
		d := t.DueDate.Format(calendar.DateLayout)
		r.DueDate = &d
	}
	return r
}

func tasksToResponses(list []dom.Task) []dto.TaskResponse {
	out := make([]dto.TaskResponse, len(list))
	for i := range list {
		out[i] = taskToResponse(list[i])
	}
	return out
}

func timeRecordToResponse(r dom.TimeRecord) dto.TimeRecordResponse {
	return dto.TimeRecordResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		Date:       r.Date.Format(calendar.DateLayout),
		Time:       r.Time,
		Type:       string(r.Kind),
		Label:      r.Kind.Label(),
		NightShift: r.NightShift,
		CreatedAt:  r.CreatedAt,
	}
}

func timeRecordsToResponses(list []dom.TimeRecord) []dto.TimeRecordResponse {
	out := make([]dto.TimeRecordResponse, len(list))
	for i := range list {
		out[i] = timeRecordToResponse(list[i])
	}
	return out
}

func documentToResponse(d dom.Document) dto.DocumentResponse {
	return dto.DocumentResponse{ID: d.ID, Name: d.Name, Path: d.Path, Size: d.Size, Type: d.Type, CreatedAt: d.CreatedAt}
}

func articleToResponse(a dom.Article) dto.ArticleResponse {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.ArticleResponse{ID: a.ID, UserID: a.UserID, Title: a.Title, Content: a.Content, Tags: tags, CreatedAt: a.CreatedAt}
}

func articlesToResponses(list []dom.Article) []dto.ArticleResponse {
	out := make([]dto.ArticleResponse, len(list))
	for i := range list {
		out[i] = articleToResponse(list[i])
	}
	return out
}

func profileToResponse(p dom.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:                   p.ID,
		FullName:             p.FullName,
		Email:                p.Email,
		AvatarURL:            p.AvatarURL,
		NotificationSettings: p.NotificationSettings,
		SecuritySettings:     p.SecuritySettings,
		UpdatedAt:            p.UpdatedAt,
	}
}
