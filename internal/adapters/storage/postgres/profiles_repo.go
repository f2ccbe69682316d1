package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-care-tracker/internal/domain/profiles"
)

type ProfilesRepo struct {
	db *sql.DB
}

func NewProfilesRepo(db *sql.DB) *ProfilesRepo {
	return &ProfilesRepo{db: db}
}

func (r *ProfilesRepo) GetByID(ctx context.Context, id string) (profiles.Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return profiles.Profile{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, avatar_url, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`, id)

	var p profiles.Profile
	if err := row.Scan(&p.ID, &p.Name, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return profiles.Profile{}, ErrNotFound
		}
		return profiles.Profile{}, err
	}
	return p, nil
}

func (r *ProfilesRepo) Upsert(ctx context.Context, p profiles.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (id, name, avatar_url, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    avatar_url = EXCLUDED.avatar_url,
		    updated_at = EXCLUDED.updated_at
	`,
		p.ID,
		p.Name,
		p.AvatarURL,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}
