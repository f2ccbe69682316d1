package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-care-tracker/internal/domain/catalog"

	"github.com/jackc/pgx/v5/pgtype"
)

type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (r *CatalogRepo) ListSpecies(ctx context.Context) ([]catalog.Species, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, created_at
		FROM species
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Species, 0)
	for rows.Next() {
		var s catalog.Species
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) GetSpecies(ctx context.Context, id int64) (catalog.Species, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, created_at
		FROM species
		WHERE id = $1
	`, id)

	var s catalog.Species
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return catalog.Species{}, ErrNotFound
		}
		return catalog.Species{}, err
	}
	return s, nil
}

func (r *CatalogRepo) ListTaskCategories(ctx context.Context) ([]catalog.TaskCategory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, color, icon, created_at
		FROM task_categories
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.TaskCategory, 0)
	for rows.Next() {
		var c catalog.TaskCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.Icon, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) GetTaskCategory(ctx context.Context, id int64) (catalog.TaskCategory, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, color, icon, created_at
		FROM task_categories
		WHERE id = $1
	`, id)

	var c catalog.TaskCategory
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.Icon, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return catalog.TaskCategory{}, ErrNotFound
		}
		return catalog.TaskCategory{}, err
	}
	return c, nil
}

func (r *CatalogRepo) FindTaskCategoryByName(ctx context.Context, name string) (catalog.TaskCategory, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, color, icon, created_at
		FROM task_categories
		WHERE lower(name) = lower($1)
	`, strings.TrimSpace(name))

	var c catalog.TaskCategory
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.Icon, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return catalog.TaskCategory{}, ErrNotFound
		}
		return catalog.TaskCategory{}, err
	}
	return c, nil
}

func (r *CatalogRepo) ListVaccineTypes(ctx context.Context) ([]catalog.VaccineType, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, applicable_species, created_at
		FROM vaccine_types
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.VaccineType, 0)
	for rows.Next() {
		vt, err := scanVaccineType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, vt)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) GetVaccineType(ctx context.Context, id int64) (catalog.VaccineType, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, applicable_species, created_at
		FROM vaccine_types
		WHERE id = $1
	`, id)

	vt, err := scanVaccineType(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return catalog.VaccineType{}, ErrNotFound
		}
		return catalog.VaccineType{}, err
	}
	return vt, nil
}

func (r *CatalogRepo) ListVaccineSchedules(ctx context.Context, speciesID int64) ([]catalog.VaccineSchedule, error) {
	query := `
		SELECT id, vaccine_type_id, species_id, age_in_months,
		       is_recurring, recurring_months, notes, created_at
		FROM vaccine_schedules`
	args := []any{}

	if speciesID != 0 {
		query += ` WHERE species_id = $1`
		args = append(args, speciesID)
	}
	query += ` ORDER BY age_in_months ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.VaccineSchedule, 0)
	for rows.Next() {
		var s catalog.VaccineSchedule
		if err := rows.Scan(
			&s.ID,
			&s.VaccineTypeID,
			&s.SpeciesID,
			&s.AgeInMonths,
			&s.IsRecurring,
			&s.RecurringMonths,
			&s.Notes,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// applicable_species es BIGINT[]: se escanea vía pgtype porque database/sql
// no trae soporte de arrays.
func scanVaccineType(row rowScanner) (catalog.VaccineType, error) {
	var vt catalog.VaccineType
	var species pgtype.FlatArray[int64]
	m := pgtype.NewMap()

	if err := row.Scan(
		&vt.ID,
		&vt.Name,
		&vt.Description,
		m.SQLScanner(&species),
		&vt.CreatedAt,
	); err != nil {
		return catalog.VaccineType{}, err
	}

	vt.ApplicableSpecies = append([]int64(nil), species...)
	return vt, nil
}
