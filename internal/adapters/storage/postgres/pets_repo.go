package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pet-care-tracker/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, name, species_id, breed,
			birth_date, gender, image_url, notes,
			owner_id, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		p.ID,
		p.Name,
		p.SpeciesID,
		p.Breed,
		toNullDate(p.BirthDate),
		string(p.Gender),
		p.ImageURL,
		p.Notes,
		p.OwnerID,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, species_id, breed,
			birth_date, gender, image_url, notes,
			owner_id, created_at, updated_at
		FROM pets
		WHERE id = $1
	`, id)

	return scanPet(row)
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, name, species_id, breed,
			birth_date, gender, image_url, notes,
			owner_id, created_at, updated_at
		FROM pets
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			species_id = $3,
			breed = $4,
			birth_date = $5,
			gender = $6,
			image_url = $7,
			notes = $8,
			updated_at = $9
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.SpeciesID,
		p.Breed,
		toNullDate(p.BirthDate),
		string(p.Gender),
		p.ImageURL,
		p.Notes,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var bd sql.NullTime
	var gender string
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.SpeciesID,
		&p.Breed,
		&bd,
		&gender,
		&p.ImageURL,
		&p.Notes,
		&p.OwnerID,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}

	p.Gender = pets.Gender(gender)
	if bd.Valid {
		t := bd.Time
		// birth_date es DATE: pgx lo mapea a time.Time midnight UTC
		p.BirthDate = &t
	}

	return p, nil
}

// birth_date es DATE, lo pasamos como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
