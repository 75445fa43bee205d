package service

import (
	"context"
	"strings"
	"time"

	"github.com/ikeike55momo/schedule/internal/calendar"
	dom "github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/repo"
)

type TaskInput struct {
	Title       string
	Description string
	Progress    int
	DueDate     string // optional YYYY-MM-DD
}

// TaskPatch changes only the non-nil fields. An empty DueDate clears it.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *string
}

// TaskService keeps progress and completion independent: reaching 100%
// never completes a task, and toggling completion never touches progress.
type TaskService struct {
	repo  repo.TaskRepo
	cache MonthCache
}

func NewTaskService(r repo.TaskRepo, c MonthCache) *TaskService {
	return &TaskService{repo: r, cache: c}
}

func (s *TaskService) Create(ctx context.Context, userID string, in TaskInput) (dom.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return dom.Task{}, ErrEmptyTitle
	}
	if !validProgress(in.Progress) {
		return dom.Task{}, ErrInvalidProgress
	}
	due, err := parseDueDate(in.DueDate)
	if err != nil {
		return dom.Task{}, err
	}
	t, err := s.repo.Create(ctx, dom.Task{
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Progress:    in.Progress,
		DueDate:     due,
	})
	if err != nil {
		return dom.Task{}, storeErr(err)
	}
	invalidate(ctx, s.cache, userID)
	return t, nil
}

func (s *TaskService) List(ctx context.Context, userID string, mode dom.ViewMode) ([]dom.Task, error) {
	switch mode {
	case dom.ViewPersonal:
		return s.repo.ListByOwner(ctx, userID)
	case dom.ViewTeam:
		return s.repo.ListAll(ctx)
	}
	return nil, ErrInvalidViewMode
}

func (s *TaskService) Update(ctx context.Context, userID, id string, p TaskPatch) (dom.Task, error) {
	existing, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return dom.Task{}, storeErr(err)
	}
	patch := existing
	if p.Title != nil {
		patch.Title = strings.TrimSpace(*p.Title)
		if patch.Title == "" {
			return dom.Task{}, ErrEmptyTitle
		}
	}
	if p.Description != nil {
		patch.Description = strings.TrimSpace(*p.Description)
	}
	if p.DueDate != nil {
		patch.DueDate, err = parseDueDate(*p.DueDate)
		if err != nil {
			return dom.Task{}, err
		}
	}
	t, err := s.repo.Update(ctx, userID, id, patch)
	if err != nil {
		return dom.Task{}, storeErr(err)
	}
	invalidate(ctx, s.cache, userID)
	return t, nil
}

func (s *TaskService) SetProgress(ctx context.Context, userID, id string, progress int) (dom.Task, error) {
	if !validProgress(progress) {
		return dom.Task{}, ErrInvalidProgress
	}
	t, err := s.repo.SetProgress(ctx, userID, id, progress)
	if err != nil {
		return dom.Task{}, storeErr(err)
	}
	invalidate(ctx, s.cache, userID)
	return t, nil
}

// ToggleCompleted flips the completed flag.
func (s *TaskService) ToggleCompleted(ctx context.Context, userID, id string) (dom.Task, error) {
	existing, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return dom.Task{}, storeErr(err)
	}
	t, err := s.repo.SetCompleted(ctx, userID, id, !existing.Completed)
	if err != nil {
		return dom.Task{}, storeErr(err)
	}
	invalidate(ctx, s.cache, userID)
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return storeErr(err)
	}
	invalidate(ctx, s.cache, userID)
	return nil
}

func validProgress(p int) bool { return p >= 0 && p <= 100 }

func parseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, ok := calendar.ParseDay(s)
	if !ok {
		return nil, ErrInvalidDate
	}
	return &d, nil
}
