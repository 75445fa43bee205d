package repo

import (
	"context"

	dom "github.com/ikeike55momo/schedule/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TimeRecordRepo interface {
	Create(ctx context.Context, r dom.TimeRecord) (dom.TimeRecord, error)
	ListByOwner(ctx context.Context, userID string) ([]dom.TimeRecord, error)
	ListAll(ctx context.Context) ([]dom.TimeRecord, error)
	Delete(ctx context.Context, userID, id string) error
}

type PGTimeRecordRepo struct {
	db *pgxpool.Pool
}

func NewPGTimeRecordRepo(db *pgxpool.Pool) *PGTimeRecordRepo {
	return &PGTimeRecordRepo{db: db}
}

const timeRecordColumns = `id, user_id, date, time, type, is_night_shift, created_at`

func scanTimeRecord(row rowScanner) (dom.TimeRecord, error) {
	var r dom.TimeRecord
	var kind string
	err := row.Scan(&r.ID, &r.UserID, &r.Date, &r.Time, &kind, &r.NightShift, &r.CreatedAt)
	r.Kind = dom.RecordKind(kind)
	return r, err
}

func (r *PGTimeRecordRepo) Create(ctx context.Context, rec dom.TimeRecord) (dom.TimeRecord, error) {
	query := `
		INSERT INTO time_records (user_id, date, time, type, is_night_shift)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + timeRecordColumns
	return scanTimeRecord(r.db.QueryRow(ctx, query, rec.UserID, rec.Date, rec.Time, string(rec.Kind), rec.NightShift))
}

func (r *PGTimeRecordRepo) ListByOwner(ctx context.Context, userID string) ([]dom.TimeRecord, error) {
	query := `SELECT ` + timeRecordColumns + ` FROM time_records WHERE user_id = $1 ORDER BY date DESC, time DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTimeRecord)
}

func (r *PGTimeRecordRepo) ListAll(ctx context.Context) ([]dom.TimeRecord, error) {
	query := `SELECT ` + timeRecordColumns + ` FROM time_records ORDER BY date DESC, time DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTimeRecord)
}

func (r *PGTimeRecordRepo) Delete(ctx context.Context, userID, id string) error {
	return execOne(ctx, r.db, `DELETE FROM time_records WHERE user_id = $1 AND id = $2`, userID, id)
}
