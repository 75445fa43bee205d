// Package repotest provides in-memory repositories for tests. Missing rows
// are reported as pgx.ErrNoRows and duplicates as unique violations, the way
// the Postgres repositories report them.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	dom "github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/repo"
)

var (
	_ repo.ScheduleRepo    = (*Schedules)(nil)
	_ repo.TaskRepo        = (*Tasks)(nil)
	_ repo.TimeRecordRepo  = (*TimeRecords)(nil)
	_ repo.AllowedUserRepo = (*AllowedUsers)(nil)
	_ repo.AdminRepo       = Admins(nil)
	_ repo.ArticleRepo     = (*Articles)(nil)
	_ repo.DocumentRepo    = (*Documents)(nil)
	_ repo.ProfileRepo     = Profiles(nil)
)

// Schedules counts list queries in Calls so tests can observe caching.
type Schedules struct {
	mu    sync.Mutex
	Items []dom.Schedule
	Calls int
}

func (m *Schedules) Create(_ context.Context, s dom.Schedule) (dom.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now()
	m.Items = append(m.Items, s)
	return s, nil
}

func (m *Schedules) GetByID(_ context.Context, userID, id string) (dom.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.Items {
		if s.ID == id && s.UserID == userID {
			return s, nil
		}
	}
	return dom.Schedule{}, pgx.ErrNoRows
}

func (m *Schedules) ListByOwner(_ context.Context, userID string) ([]dom.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	var out []dom.Schedule
	for _, s := range m.Items {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *Schedules) ListAll(_ context.Context) ([]dom.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	return append([]dom.Schedule(nil), m.Items...), nil
}

func (m *Schedules) ListRange(_ context.Context, userID string, from, to time.Time) ([]dom.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	var out []dom.Schedule
	for _, s := range m.Items {
		if userID != "" && s.UserID != userID {
			continue
		}
		if !s.Start.Before(from) && s.Start.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *Schedules) Update(_ context.Context, userID, id string, patch dom.Schedule) (dom.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.Items {
		if s.ID == id && s.UserID == userID {
			m.Items[i] = patch
			return patch, nil
		}
	}
	return dom.Schedule{}, pgx.ErrNoRows
}

func (m *Schedules) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.Items {
		if s.ID == id && s.UserID == userID {
			m.Items = append(m.Items[:i], m.Items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type Tasks struct {
	mu    sync.Mutex
	Items []dom.Task
}

func (m *Tasks) Create(_ context.Context, t dom.Task) (dom.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = uuid.NewString()
	m.Items = append(m.Items, t)
	return t, nil
}

func (m *Tasks) find(userID, id string) int {
	for i, t := range m.Items {
		if t.ID == id && t.UserID == userID {
			return i
		}
	}
	return -1
}

func (m *Tasks) GetByID(_ context.Context, userID, id string) (dom.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.find(userID, id); i >= 0 {
		return m.Items[i], nil
	}
	return dom.Task{}, pgx.ErrNoRows
}

func (m *Tasks) ListByOwner(_ context.Context, userID string) ([]dom.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []dom.Task
	for _, t := range m.Items {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *Tasks) ListAll(_ context.Context) ([]dom.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]dom.Task(nil), m.Items...), nil
}

func (m *Tasks) Update(_ context.Context, userID, id string, patch dom.Task) (dom.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(userID, id)
	if i < 0 {
		return dom.Task{}, pgx.ErrNoRows
	}
	m.Items[i].Title = patch.Title
	m.Items[i].Description = patch.Description
	m.Items[i].DueDate = patch.DueDate
	return m.Items[i], nil
}

func (m *Tasks) SetProgress(_ context.Context, userID, id string, progress int) (dom.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(userID, id)
	if i < 0 {
		return dom.Task{}, pgx.ErrNoRows
	}
	m.Items[i].Progress = progress
	return m.Items[i], nil
}

func (m *Tasks) SetCompleted(_ context.Context, userID, id string, completed bool) (dom.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(userID, id)
	if i < 0 {
		return dom.Task{}, pgx.ErrNoRows
	}
	m.Items[i].Completed = completed
	return m.Items[i], nil
}

func (m *Tasks) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(userID, id)
	if i < 0 {
		return pgx.ErrNoRows
	}
	m.Items = append(m.Items[:i], m.Items[i+1:]...)
	return nil
}

type TimeRecords struct {
	mu    sync.Mutex
	Items []dom.TimeRecord
}

func (m *TimeRecords) Create(_ context.Context, r dom.TimeRecord) (dom.TimeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = uuid.NewString()
	m.Items = append(m.Items, r)
	return r, nil
}

func (m *TimeRecords) ListByOwner(_ context.Context, userID string) ([]dom.TimeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []dom.TimeRecord
	for _, r := range m.Items {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *TimeRecords) ListAll(_ context.Context) ([]dom.TimeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]dom.TimeRecord(nil), m.Items...), nil
}

func (m *TimeRecords) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.Items {
		if r.ID == id && r.UserID == userID {
			m.Items = append(m.Items[:i], m.Items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type AllowedUsers struct {
	Items []dom.AllowedUser
}

func (m *AllowedUsers) List(context.Context) ([]dom.AllowedUser, error) { return m.Items, nil }

func (m *AllowedUsers) Add(_ context.Context, email string) (dom.AllowedUser, error) {
	for _, u := range m.Items {
		if strings.EqualFold(u.Email, email) {
			return dom.AllowedUser{}, &pgconn.PgError{Code: "23505"}
		}
	}
	u := dom.AllowedUser{ID: uuid.NewString(), Email: email}
	m.Items = append(m.Items, u)
	return u, nil
}

func (m *AllowedUsers) Remove(_ context.Context, id string) error {
	for i, u := range m.Items {
		if u.ID == id {
			m.Items = append(m.Items[:i], m.Items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *AllowedUsers) IsAllowed(_ context.Context, email string) (bool, error) {
	for _, u := range m.Items {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

type Admins map[string]bool

func (m Admins) IsAdmin(_ context.Context, userID string) (bool, error) { return m[userID], nil }

type Articles struct {
	Items []dom.Article
}

func (m *Articles) Create(_ context.Context, a dom.Article) (dom.Article, error) {
	a.ID = uuid.NewString()
	m.Items = append(m.Items, a)
	return a, nil
}

func (m *Articles) List(context.Context) ([]dom.Article, error) { return m.Items, nil }

func (m *Articles) Search(_ context.Context, q string) ([]dom.Article, error) {
	q = strings.ToLower(q)
	var out []dom.Article
	for _, a := range m.Items {
		hay := strings.ToLower(a.Title + " " + a.Content + " " + strings.Join(a.Tags, " "))
		if strings.Contains(hay, q) {
			out = append(out, a)
		}
	}
	return out, nil
}

type Documents struct {
	Items []dom.Document
}

func (m *Documents) ListByPath(_ context.Context, userID, path string) ([]dom.Document, error) {
	var out []dom.Document
	for _, d := range m.Items {
		if d.UserID == userID && d.Path == path {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type == dom.DocumentFolder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *Documents) GetByID(_ context.Context, userID, id string) (dom.Document, error) {
	for _, d := range m.Items {
		if d.ID == id && d.UserID == userID {
			return d, nil
		}
	}
	return dom.Document{}, pgx.ErrNoRows
}

func (m *Documents) Create(_ context.Context, d dom.Document) (dom.Document, error) {
	for _, x := range m.Items {
		if x.UserID == d.UserID && x.Path == d.Path && x.Name == d.Name {
			return dom.Document{}, &pgconn.PgError{Code: "23505"}
		}
	}
	d.ID = uuid.NewString()
	m.Items = append(m.Items, d)
	return d, nil
}

func (m *Documents) Delete(_ context.Context, userID, id string) error {
	for i, d := range m.Items {
		if d.ID == id && d.UserID == userID {
			m.Items = append(m.Items[:i], m.Items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type Profiles map[string]dom.Profile

func (m Profiles) Get(_ context.Context, id string) (dom.Profile, error) {
	p, ok := m[id]
	if !ok {
		return dom.Profile{}, pgx.ErrNoRows
	}
	return p, nil
}

func (m Profiles) Update(_ context.Context, id string, patch dom.Profile) (dom.Profile, error) {
	if _, ok := m[id]; !ok {
		return dom.Profile{}, pgx.ErrNoRows
	}
	m[id] = patch
	return patch, nil
}

