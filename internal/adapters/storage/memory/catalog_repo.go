package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"pet-care-tracker/internal/domain/catalog"
)

type catalogRepo struct {
	mu        sync.RWMutex
	species   []catalog.Species
	cats      []catalog.TaskCategory
	types     []catalog.VaccineType
	schedules []catalog.VaccineSchedule
}

func newCatalogRepo() *catalogRepo {
	return &catalogRepo{}
}

func (r *catalogRepo) load(seed SeedData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.species = append([]catalog.Species(nil), seed.Species...)
	r.cats = append([]catalog.TaskCategory(nil), seed.TaskCategories...)
	r.types = append([]catalog.VaccineType(nil), seed.VaccineTypes...)
	r.schedules = append([]catalog.VaccineSchedule(nil), seed.VaccineSchedules...)
}

func (r *catalogRepo) ListSpecies(ctx context.Context) ([]catalog.Species, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]catalog.Species(nil), r.species...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *catalogRepo) GetSpecies(ctx context.Context, id int64) (catalog.Species, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.species {
		if s.ID == id {
			return s, nil
		}
	}
	return catalog.Species{}, ErrNotFound
}

func (r *catalogRepo) ListTaskCategories(ctx context.Context) ([]catalog.TaskCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]catalog.TaskCategory(nil), r.cats...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *catalogRepo) GetTaskCategory(ctx context.Context, id int64) (catalog.TaskCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.cats {
		if c.ID == id {
			return c, nil
		}
	}
	return catalog.TaskCategory{}, ErrNotFound
}

func (r *catalogRepo) FindTaskCategoryByName(ctx context.Context, name string) (catalog.TaskCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.cats {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return catalog.TaskCategory{}, ErrNotFound
}

func (r *catalogRepo) ListVaccineTypes(ctx context.Context) ([]catalog.VaccineType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]catalog.VaccineType(nil), r.types...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *catalogRepo) GetVaccineType(ctx context.Context, id int64) (catalog.VaccineType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.types {
		if t.ID == id {
			return t, nil
		}
	}
	return catalog.VaccineType{}, ErrNotFound
}

func (r *catalogRepo) ListVaccineSchedules(ctx context.Context, speciesID int64) ([]catalog.VaccineSchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.VaccineSchedule, 0)
	for _, s := range r.schedules {
		if speciesID == 0 || s.SpeciesID == speciesID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AgeInMonths < out[j].AgeInMonths })
	return out, nil
}
