package repo

import (
	"context"

	dom "github.com/ikeike55momo/schedule/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfileRepo interface {
	Get(ctx context.Context, id string) (dom.Profile, error)
	Update(ctx context.Context, id string, patch dom.Profile) (dom.Profile, error)
}

type PGProfileRepo struct {
	db *pgxpool.Pool
}

func NewPGProfileRepo(db *pgxpool.Pool) *PGProfileRepo {
	return &PGProfileRepo{db: db}
}

const profileColumns = `id, full_name, email, avatar_url, notification_settings, security_settings, updated_at`

func scanProfile(row rowScanner) (dom.Profile, error) {
	var p dom.Profile
	err := row.Scan(&p.ID, &p.FullName, &p.Email, &p.AvatarURL,
		&p.NotificationSettings, &p.SecuritySettings, &p.UpdatedAt)
	return p, err
}

func (r *PGProfileRepo) Get(ctx context.Context, id string) (dom.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return scanProfile(r.db.QueryRow(ctx, query, id))
}

func (r *PGProfileRepo) Update(ctx context.Context, id string, patch dom.Profile) (dom.Profile, error) {
	query := `
		UPDATE profiles SET full_name = $2, notification_settings = $3, security_settings = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + profileColumns
	return scanProfile(r.db.QueryRow(ctx, query, id, patch.FullName, patch.NotificationSettings, patch.SecuritySettings))
}
