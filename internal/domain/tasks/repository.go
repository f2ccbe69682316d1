package tasks

import "context"

type Repository interface {
	Create(ctx context.Context, t Task) error
	// CreateBatch persiste todas las tareas en una sola escritura.
	// Si falla, no queda ninguna.
	CreateBatch(ctx context.Context, ts []Task) error
	GetByID(ctx context.Context, id string) (Task, error)
	// ListByOwner devuelve las tareas ordenadas por due_date asc
	// (las que no tienen fecha van al final).
	ListByOwner(ctx context.Context, ownerID string, f ListFilter) ([]Task, error)
	Update(ctx context.Context, t Task) error
	Delete(ctx context.Context, id string) error
}

// TemplateRepository lee los templates de tareas por defecto (solo seed).
type TemplateRepository interface {
	// ListBySpecies devuelve los templates de la especie ordenados por título.
	ListBySpecies(ctx context.Context, speciesID int64) ([]DefaultTask, error)
}
