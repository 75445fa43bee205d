package repo

import (
	"context"

	dom "github.com/ikeike55momo/schedule/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ArticleRepo stores the shared knowledge base; articles are visible to
// every member.
type ArticleRepo interface {
	Create(ctx context.Context, a dom.Article) (dom.Article, error)
	List(ctx context.Context) ([]dom.Article, error)
	Search(ctx context.Context, q string) ([]dom.Article, error)
}

type PGArticleRepo struct {
	db *pgxpool.Pool
}

func NewPGArticleRepo(db *pgxpool.Pool) *PGArticleRepo {
	return &PGArticleRepo{db: db}
}

const articleColumns = `id, user_id, title, content, tags, created_at`

func scanArticle(row rowScanner) (dom.Article, error) {
	var a dom.Article
	err := row.Scan(&a.ID, &a.UserID, &a.Title, &a.Content, &a.Tags, &a.CreatedAt)
	return a, err
}

func (r *PGArticleRepo) Create(ctx context.Context, a dom.Article) (dom.Article, error) {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	query := `
		INSERT INTO articles (user_id, title, content, tags)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + articleColumns
	return scanArticle(r.db.QueryRow(ctx, query, a.UserID, a.Title, a.Content, tags))
}

func (r *PGArticleRepo) List(ctx context.Context) ([]dom.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanArticle)
}

func (r *PGArticleRepo) Search(ctx context.Context, q string) ([]dom.Article, error) {
	pattern := "%" + q + "%"
	query := `
		SELECT ` + articleColumns + ` FROM articles
		WHERE title ILIKE $1 OR content ILIKE $1
		   OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $1)
		ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, pattern)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanArticle)
}
