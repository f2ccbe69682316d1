package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-care-tracker/internal/domain/tasks"
)

type TasksRepo struct {
	db *sql.DB
}

func NewTasksRepo(db *sql.DB) *TasksRepo {
	return &TasksRepo{db: db}
}

const taskColumns = `
	id, title, description, category_id, completed, due_date,
	pet_id, recurring_type, recurring_interval, priority,
	owner_id, is_default, parent_task_id, created_at, updated_at`

func (r *TasksRepo) Create(ctx context.Context, t tasks.Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`, taskArgs(t)...)
	return err
}

// CreateBatch inserta todo el lote dentro de una transacción: o entran
// todas las tareas o ninguna.
func (r *TasksRepo) CreateBatch(ctx context.Context, ts []tasks.Task) error {
	if len(ts) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range ts {
		if _, err := stmt.ExecContext(ctx, taskArgs(t)...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *TasksRepo) GetByID(ctx context.Context, id string) (tasks.Task, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return tasks.Task{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1
	`, id)

	return scanTask(row)
}

func (r *TasksRepo) ListByOwner(ctx context.Context, ownerID string, f tasks.ListFilter) ([]tasks.Task, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, nil
	}

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE owner_id = $1`
	args := []any{ownerID}

	if f.PetID != "" {
		query += ` AND pet_id = $2`
		args = append(args, f.PetID)
	}
	query += ` ORDER BY due_date ASC NULLS LAST, created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]tasks.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, rows.Err()
}

func (r *TasksRepo) Update(ctx context.Context, t tasks.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET
			title = $2,
			description = $3,
			category_id = $4,
			completed = $5,
			due_date = $6,
			recurring_type = $7,
			recurring_interval = $8,
			priority = $9,
			updated_at = $10
		WHERE id = $1
	`,
		t.ID,
		t.Title,
		t.Description,
		toNullInt64(t.CategoryID),
		t.Completed,
		toNullDate(t.DueDate),
		string(t.RecurringType),
		t.RecurringInterval,
		string(t.Priority),
		t.UpdatedAt,
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

func (r *TasksRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func taskArgs(t tasks.Task) []any {
	return []any{
		t.ID,
		t.Title,
		t.Description,
		toNullInt64(t.CategoryID),
		t.Completed,
		toNullDate(t.DueDate),
		t.PetID,
		string(t.RecurringType),
		t.RecurringInterval,
		string(t.Priority),
		t.OwnerID,
		t.IsDefault,
		t.ParentTaskID,
		t.CreatedAt,
		t.UpdatedAt,
	}
}

func scanTask(row rowScanner) (tasks.Task, error) {
	var t tasks.Task
	var categoryID sql.NullInt64
	var due sql.NullTime
	var recurring, priority string
	if err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&categoryID,
		&t.Completed,
		&due,
		&t.PetID,
		&recurring,
		&t.RecurringInterval,
		&priority,
		&t.OwnerID,
		&t.IsDefault,
		&t.ParentTaskID,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return tasks.Task{}, ErrNotFound
		}
		return tasks.Task{}, err
	}

	t.RecurringType = tasks.RecurringType(recurring)
	t.Priority = tasks.Priority(priority)
	if categoryID.Valid {
		v := categoryID.Int64
		t.CategoryID = &v
	}
	if due.Valid {
		d := due.Time
		t.DueDate = &d
	}

	return t, nil
}

func toNullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

// TemplatesRepo lee los templates de tareas por defecto (solo seed).
type TemplatesRepo struct {
	db *sql.DB
}

func NewTemplatesRepo(db *sql.DB) *TemplatesRepo {
	return &TemplatesRepo{db: db}
}

func (r *TemplatesRepo) ListBySpecies(ctx context.Context, speciesID int64) ([]tasks.DefaultTask, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, title, description, category_id, species_id,
			recurring_type, recurring_interval, priority,
			age_min_months, age_max_months, created_at
		FROM default_tasks
		WHERE species_id = $1
		ORDER BY title ASC
	`, speciesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]tasks.DefaultTask, 0)
	for rows.Next() {
		var dt tasks.DefaultTask
		var categoryID sql.NullInt64
		var recurring, priority string
		var ageMin, ageMax sql.NullInt64
		if err := rows.Scan(
			&dt.ID,
			&dt.Title,
			&dt.Description,
			&categoryID,
			&dt.SpeciesID,
			&recurring,
			&dt.RecurringInterval,
			&priority,
			&ageMin,
			&ageMax,
			&dt.CreatedAt,
		); err != nil {
			return nil, err
		}

		dt.RecurringType = tasks.RecurringType(recurring)
		dt.Priority = tasks.Priority(priority)
		if categoryID.Valid {
			v := categoryID.Int64
			dt.CategoryID = &v
		}
		if ageMin.Valid {
			v := int(ageMin.Int64)
			dt.AgeMinMonths = &v
		}
		if ageMax.Valid {
			v := int(ageMax.Int64)
			dt.AgeMaxMonths = &v
		}

		out = append(out, dt)
	}

	return out, rows.Err()
}
