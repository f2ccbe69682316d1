package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-care-tracker/internal/domain/vaccines"
)

type VaccinesRepo struct {
	db *sql.DB
}

func NewVaccinesRepo(db *sql.DB) *VaccinesRepo {
	return &VaccinesRepo{db: db}
}

const vaccineColumns = `
	id, pet_id, vaccine_type_id, scheduled_date, administered_date,
	administered, notes, task_id, created_at, updated_at`

func (r *VaccinesRepo) Create(ctx context.Context, v vaccines.PetVaccine) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_vaccines (`+vaccineColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		v.ID,
		v.PetID,
		v.VaccineTypeID,
		v.ScheduledDate,
		toNullDate(v.AdministeredDate),
		v.Administered,
		v.Notes,
		v.TaskID,
		v.CreatedAt,
		v.UpdatedAt,
	)
	return err
}

func (r *VaccinesRepo) GetByID(ctx context.Context, id string) (vaccines.PetVaccine, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return vaccines.PetVaccine{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+vaccineColumns+`
		FROM pet_vaccines
		WHERE id = $1
	`, id)

	return scanVaccine(row)
}

func (r *VaccinesRepo) ListByPet(ctx context.Context, petID string) ([]vaccines.PetVaccine, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+vaccineColumns+`
		FROM pet_vaccines
		WHERE pet_id = $1
		ORDER BY scheduled_date ASC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vaccines.PetVaccine, 0)
	for rows.Next() {
		v, err := scanVaccine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, rows.Err()
}

func (r *VaccinesRepo) Update(ctx context.Context, v vaccines.PetVaccine) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pet_vaccines
		SET
			scheduled_date = $2,
			administered_date = $3,
			administered = $4,
			notes = $5,
			task_id = $6,
			updated_at = $7
		WHERE id = $1
	`,
		v.ID,
		v.ScheduledDate,
		toNullDate(v.AdministeredDate),
		v.Administered,
		v.Notes,
		v.TaskID,
		v.UpdatedAt,
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

func (r *VaccinesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pet_vaccines WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanVaccine(row rowScanner) (vaccines.PetVaccine, error) {
	var v vaccines.PetVaccine
	var administered sql.NullTime
	if err := row.Scan(
		&v.ID,
		&v.PetID,
		&v.VaccineTypeID,
		&v.ScheduledDate,
		&administered,
		&v.Administered,
		&v.Notes,
		&v.TaskID,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return vaccines.PetVaccine{}, ErrNotFound
		}
		return vaccines.PetVaccine{}, err
	}

	if administered.Valid {
		t := administered.Time
		v.AdministeredDate = &t
	}

	return v, nil
}
