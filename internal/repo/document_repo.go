package repo

import (
	"context"

	dom "github.com/ikeike55momo/schedule/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DocumentRepo interface {
	ListByPath(ctx context.Context, userID, path string) ([]dom.Document, error)
	GetByID(ctx context.Context, userID, id string) (dom.Document, error)
	Create(ctx context.Context, d dom.Document) (dom.Document, error)
	Delete(ctx context.Context, userID, id string) error
}

type PGDocumentRepo struct {
	db *pgxpool.Pool
}

func NewPGDocumentRepo(db *pgxpool.Pool) *PGDocumentRepo {
	return &PGDocumentRepo{db: db}
}

const documentColumns = `id, user_id, name, path, size, type, created_at`

func scanDocument(row rowScanner) (dom.Document, error) {
	var d dom.Document
	err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.Path, &d.Size, &d.Type, &d.CreatedAt)
	return d, err
}

// ListByPath lists folders before files, each by name.
func (r *PGDocumentRepo) ListByPath(ctx context.Context, userID, path string) ([]dom.Document, error) {
	query := `
		SELECT ` + documentColumns + ` FROM documents
		WHERE user_id = $1 AND path = $2
		ORDER BY type DESC, name ASC`
	rows, err := r.db.Query(ctx, query, userID, path)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanDocument)
}

func (r *PGDocumentRepo) GetByID(ctx context.Context, userID, id string) (dom.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE user_id = $1 AND id = $2`
	return scanDocument(r.db.QueryRow(ctx, query, userID, id))
}

func (r *PGDocumentRepo) Create(ctx context.Context, d dom.Document) (dom.Document, error) {
	query := `
		INSERT INTO documents (user_id, name, path, size, type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + documentColumns
	return scanDocument(r.db.QueryRow(ctx, query, d.UserID, d.Name, d.Path, d.Size, d.Type))
}

func (r *PGDocumentRepo) Delete(ctx context.Context, userID, id string) error {
	return execOne(ctx, r.db, `DELETE FROM documents WHERE user_id = $1 AND id = $2`, userID, id)
}
