package repo

import (
	"context"

	dom "github.com/ikeike55momo/schedule/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminRepo answers whether a user administers the team.
type AdminRepo interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// AllowedUserRepo provides allow-list persistence.
type AllowedUserRepo interface {
	List(ctx context.Context) ([]dom.AllowedUser, error)
	Add(ctx context.Context, email string) (dom.AllowedUser, error)
	Remove(ctx context.Context, id string) error
	IsAllowed(ctx context.Context, email string) (bool, error)
}

// PGUserRepo implements AdminRepo and AllowedUserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

func (r *PGUserRepo) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM admins WHERE user_id = $1)`,
		userID,
	).Scan(&ok)
	return ok, err
}

func (r *PGUserRepo) List(ctx context.Context) ([]dom.AllowedUser, error) {
	rows, err := r.db.Query(ctx, `SELECT id, email, created_at FROM allowed_users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanAllowedUser)
}

// Add inserts an e-mail; a duplicate surfaces as a unique violation.
func (r *PGUserRepo) Add(ctx context.Context, email string) (dom.AllowedUser, error) {
	query := `
		INSERT INTO allowed_users (email)
		VALUES ($1)
		RETURNING id, email, created_at`
	return scanAllowedUser(r.db.QueryRow(ctx, query, email))
}

func (r *PGUserRepo) Remove(ctx context.Context, id string) error {
	return execOne(ctx, r.db, `DELETE FROM allowed_users WHERE id = $1`, id)
}

func (r *PGUserRepo) IsAllowed(ctx context.Context, email string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM allowed_users WHERE lower(email) = lower($1))`,
		email,
	).Scan(&ok)
	return ok, err
}

func scanAllowedUser(row rowScanner) (dom.AllowedUser, error) {
	var u dom.AllowedUser
	err := row.Scan(&u.ID, &u.Email, &u.CreatedAt)
	return u, err
}
