package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-care-tracker/internal/domain/tasks"
)

type taskRepo struct {
	mu   sync.RWMutex
	byID map[string]tasks.Task
}

func newTaskRepo() *taskRepo {
	return &taskRepo{byID: make(map[string]tasks.Task)}
}

func (r *taskRepo) Create(ctx context.Context, t tasks.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insert(t)
}

// CreateBatch valida todo el lote antes de escribir: si una tarea es
// inválida no queda ninguna.
func (r *taskRepo) CreateBatch(ctx context.Context, ts []tasks.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range ts {
		if strings.TrimSpace(t.ID) == "" {
			return errors.New("task id required")
		}
		if _, exists := r.byID[t.ID]; exists {
			return errors.New("task already exists")
		}
	}
	for _, t := range ts {
		r.byID[t.ID] = t
	}
	return nil
}

func (r *taskRepo) insert(t tasks.Task) error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("task id required")
	}
	if _, exists := r.byID[t.ID]; exists {
		return errors.New("task already exists")
	}
	r.byID[t.ID] = t
	return nil
}

func (r *taskRepo) GetByID(ctx context.Context, id string) (tasks.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return tasks.Task{}, ErrNotFound
	}
	return t, nil
}

func (r *taskRepo) ListByOwner(ctx context.Context, ownerID string, f tasks.ListFilter) ([]tasks.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tasks.Task, 0)
	for _, t := range r.byID {
		if t.OwnerID != ownerID {
			continue
		}
		if f.PetID != "" && t.PetID != f.PetID {
			continue
		}
		out = append(out, t)
	}

	// due_date asc, las tareas sin fecha al final
	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].DueDate, out[j].DueDate
		switch {
		case di == nil && dj == nil:
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return di.Before(*dj)
		}
	})

	return out, nil
}

func (r *taskRepo) Update(ctx context.Context, t tasks.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[t.ID]; !exists {
		return ErrNotFound
	}
	r.byID[t.ID] = t
	return nil
}

func (r *taskRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type templateRepo struct {
	mu    sync.RWMutex
	items []tasks.DefaultTask
}

func newTemplateRepo() *templateRepo {
	return &templateRepo{}
}

func (r *templateRepo) load(items []tasks.DefaultTask) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]tasks.DefaultTask(nil), items...)
}

func (r *templateRepo) ListBySpecies(ctx context.Context, speciesID int64) ([]tasks.DefaultTask, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tasks.DefaultTask, 0)
	for _, dt := range r.items {
		if dt.SpeciesID == speciesID {
			out = append(out, dt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}
