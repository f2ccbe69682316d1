package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-care-tracker/internal/domain/vaccines"
)

type vaccineRepo struct {
	mu   sync.RWMutex
	byID map[string]vaccines.PetVaccine
}

func newVaccineRepo() *vaccineRepo {
	return &vaccineRepo{byID: make(map[string]vaccines.PetVaccine)}
}

func (r *vaccineRepo) Create(ctx context.Context, v vaccines.PetVaccine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(v.ID) == "" {
		return errors.New("vaccine id required")
	}
	if _, exists := r.byID[v.ID]; exists {
		return errors.New("vaccine already exists")
	}
	r.byID[v.ID] = v
	return nil
}

func (r *vaccineRepo) GetByID(ctx context.Context, id string) (vaccines.PetVaccine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return vaccines.PetVaccine{}, ErrNotFound
	}
	return v, nil
}

func (r *vaccineRepo) ListByPet(ctx context.Context, petID string) ([]vaccines.PetVaccine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vaccines.PetVaccine, 0)
	for _, v := range r.byID {
		if v.PetID == petID {
			out = append(out, v)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledDate.Before(out[j].ScheduledDate)
	})

	return out, nil
}

func (r *vaccineRepo) Update(ctx context.Context, v vaccines.PetVaccine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[v.ID]; !exists {
		return ErrNotFound
	}
	r.byID[v.ID] = v
	return nil
}

func (r *vaccineRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
