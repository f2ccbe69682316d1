package catalog

import (
	"context"
	"errors"
	"strings"

	"pet-care-tracker/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// Cache es opcional (Redis en producción). Un miss o un error de cache
// nunca corta la lectura: siempre se cae al repositorio.
type Cache interface {
	Get(ctx context.Context, key string, out any) (bool, error)
	Set(ctx context.Context, key string, val any) error
}

type Service struct {
	repo  Repository
	cache Cache // puede ser nil
	log   logger.Logger
}

func NewService(repo Repository, cache Cache, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, cache: cache, log: log}
}

func (s *Service) ListSpecies(ctx context.Context) ([]Species, error) {
	out := []Species{}
	if s.cached(ctx, "catalog:species", &out) {
		return out, nil
	}
	out, err := s.repo.ListSpecies(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, "catalog:species", out)
	return out, nil
}

func (s *Service) GetSpecies(ctx context.Context, id int64) (Species, error) {
	if id <= 0 {
		return Species{}, ErrInvalidInput
	}
	return s.repo.GetSpecies(ctx, id)
}

func (s *Service) ListTaskCategories(ctx context.Context) ([]TaskCategory, error) {
	out := []TaskCategory{}
	if s.cached(ctx, "catalog:task_categories", &out) {
		return out, nil
	}
	out, err := s.repo.ListTaskCategories(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, "catalog:task_categories", out)
	return out, nil
}

func (s *Service) GetTaskCategory(ctx context.Context, id int64) (TaskCategory, error) {
	if id <= 0 {
		return TaskCategory{}, ErrInvalidInput
	}
	return s.repo.GetTaskCategory(ctx, id)
}

func (s *Service) FindTaskCategoryByName(ctx context.Context, name string) (TaskCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return TaskCategory{}, ErrInvalidInput
	}
	return s.repo.FindTaskCategoryByName(ctx, name)
}

func (s *Service) ListVaccineTypes(ctx context.Context) ([]VaccineType, error) {
	out := []VaccineType{}
	if s.cached(ctx, "catalog:vaccine_types", &out) {
		return out, nil
	}
	out, err := s.repo.ListVaccineTypes(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, "catalog:vaccine_types", out)
	return out, nil
}

func (s *Service) GetVaccineType(ctx context.Context, id int64) (VaccineType, error) {
	if id <= 0 {
		return VaccineType{}, ErrInvalidInput
	}
	return s.repo.GetVaccineType(ctx, id)
}

func (s *Service) ListVaccineSchedules(ctx context.Context, speciesID int64) ([]VaccineSchedule, error) {
	// Los calendarios se consultan por especie en el camino caliente
	// (alta de mascota); no hace falta cachear por variante.
	return s.repo.ListVaccineSchedules(ctx, speciesID)
}

func (s *Service) cached(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, out)
	if err != nil {
		s.log.Debug("catalog cache get failed", map[string]any{"key": key, "err": err.Error()})
		return false
	}
	return hit
}

func (s *Service) store(ctx context.Context, key string, val any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, val); err != nil {
		s.log.Debug("catalog cache set failed", map[string]any{"key": key, "err": err.Error()})
	}
}
