package repo

import (
	"context"
	"time"

	dom "github.com/ikeike55momo/schedule/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ScheduleRepo interface {
	Create(ctx context.Context, s dom.Schedule) (dom.Schedule, error)
	GetByID(ctx context.Context, userID, id string) (dom.Schedule, error)
	ListByOwner(ctx context.Context, userID string) ([]dom.Schedule, error)
	ListAll(ctx context.Context) ([]dom.Schedule, error)
	// ListRange returns schedules starting in [from, to). An empty userID
	// lists the whole team.
	ListRange(ctx context.Context, userID string, from, to time.Time) ([]dom.Schedule, error)
	Update(ctx context.Context, userID, id string, patch dom.Schedule) (dom.Schedule, error)
	Delete(ctx context.Context, userID, id string) error
}

type PGScheduleRepo struct {
	db *pgxpool.Pool
}

func NewPGScheduleRepo(db *pgxpool.Pool) *PGScheduleRepo {
	return &PGScheduleRepo{db: db}
}

const scheduleColumns = `id, user_id, title, start_time, end_time, memo, created_at`

func scanSchedule(row rowScanner) (dom.Schedule, error) {
	var s dom.Schedule
	err := row.Scan(&s.ID, &s.UserID, &s.Title, &s.Start, &s.End, &s.Memo, &s.CreatedAt)
	return s, err
}

func (r *PGScheduleRepo) Create(ctx context.Context, s dom.Schedule) (dom.Schedule, error) {
	query := `
		INSERT INTO schedules (user_id, title, start_time, end_time, memo)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + scheduleColumns
	return scanSchedule(r.db.QueryRow(ctx, query, s.UserID, s.Title, s.Start, s.End, s.Memo))
}

func (r *PGScheduleRepo) GetByID(ctx context.Context, userID, id string) (dom.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE user_id = $1 AND id = $2`
	return scanSchedule(r.db.QueryRow(ctx, query, userID, id))
}

func (r *PGScheduleRepo) ListByOwner(ctx context.Context, userID string) ([]dom.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE user_id = $1 ORDER BY start_time ASC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSchedule)
}

func (r *PGScheduleRepo) ListAll(ctx context.Context) ([]dom.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules ORDER BY start_time ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSchedule)
}

func (r *PGScheduleRepo) ListRange(ctx context.Context, userID string, from, to time.Time) ([]dom.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE start_time >= $1 AND start_time < $2`
	args := []any{from, to}
	if userID != "" {
		query += ` AND user_id = $3`
		args = append(args, userID)
	}
	query += ` ORDER BY start_time ASC`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSchedule)
}

func (r *PGScheduleRepo) Update(ctx context.Context, userID, id string, patch dom.Schedule) (dom.Schedule, error) {
	query := `
		UPDATE schedules SET title = $3, start_time = $4, end_time = $5, memo = $6
		WHERE user_id = $1 AND id = $2
		RETURNING ` + scheduleColumns
	return scanSchedule(r.db.QueryRow(ctx, query, userID, id, patch.Title, patch.Start, patch.End, patch.Memo))
}

func (r *PGScheduleRepo) Delete(ctx context.Context, userID, id string) error {
	return execOne(ctx, r.db, `DELETE FROM schedules WHERE user_id = $1 AND id = $2`, userID, id)
}
