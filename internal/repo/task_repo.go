package repo

import (
	"context"

	dom "github.com/ikeike55momo/schedule/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	GetByID(ctx context.Context, userID, id string) (dom.Task, error)
	ListByOwner(ctx context.Context, userID string) ([]dom.Task, error)
	ListAll(ctx context.Context) ([]dom.Task, error)
	Update(ctx context.Context, userID, id string, patch dom.Task) (dom.Task, error)
	SetProgress(ctx context.Context, userID, id string, progress int) (dom.Task, error)
	SetCompleted(ctx context.Context, userID, id string, completed bool) (dom.Task, error)
	Delete(ctx context.Context, userID, id string) error
}

type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

const taskColumns = `id, user_id, title, description, progress, due_date, completed, created_at`

func scanTask(row rowScanner) (dom.Task, error) {
	var t dom.Task
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Progress, &t.DueDate, &t.Completed, &t.CreatedAt)
	return t, err
}

func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		INSERT INTO tasks (user_id, title, description, progress, due_date, completed)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + taskColumns
	return scanTask(r.db.QueryRow(ctx, query, t.UserID, t.Title, t.Description, t.Progress, t.DueDate, t.Completed))
}

func (r *PGTaskRepo) GetByID(ctx context.Context, userID, id string) (dom.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 AND id = $2`
	return scanTask(r.db.QueryRow(ctx, query, userID, id))
}

func (r *PGTaskRepo) ListByOwner(ctx context.Context, userID string) ([]dom.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTask)
}

func (r *PGTaskRepo) ListAll(ctx context.Context) ([]dom.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTask)
}

func (r *PGTaskRepo) Update(ctx context.Context, userID, id string, patch dom.Task) (dom.Task, error) {
	query := `
		UPDATE tasks SET title = $3, description = $4, due_date = $5
		WHERE user_id = $1 AND id = $2
		RETURNING ` + taskColumns
	return scanTask(r.db.QueryRow(ctx, query, userID, id, patch.Title, patch.Description, patch.DueDate))
}

func (r *PGTaskRepo) SetProgress(ctx context.Context, userID, id string, progress int) (dom.Task, error) {
	query := `
		UPDATE tasks SET progress = $3
		WHERE user_id = $1 AND id = $2
		RETURNING ` + taskColumns
	return scanTask(r.db.QueryRow(ctx, query, userID, id, progress))
}

func (r *PGTaskRepo) SetCompleted(ctx context.Context, userID, id string, completed bool) (dom.Task, error) {
	query := `
		UPDATE tasks SET completed = $3
		WHERE user_id = $1 AND id = $2
		RETURNING ` + taskColumns
	return scanTask(r.db.QueryRow(ctx, query, userID, id, completed))
}

func (r *PGTaskRepo) Delete(ctx context.Context, userID, id string) error {
	return execOne(ctx, r.db, `DELETE FROM tasks WHERE user_id = $1 AND id = $2`, userID, id)
}
