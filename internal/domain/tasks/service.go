package tasks

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-care-tracker/internal/domain/catalog"
	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// CategorySource y PetSource resuelven las expansiones sin acoplar este
// paquete a los servicios concretos.
type CategorySource interface {
	GetTaskCategory(ctx context.Context, id int64) (catalog.TaskCategory, error)
}

type PetSource interface {
	GetByID(ctx context.Context, id string, inc pets.Include) (pets.Pet, error)
}

type Service struct {
	repo       Repository
	templates  TemplateRepository
	categories CategorySource
	pets       PetSource
	log        logger.Logger
	now        func() time.Time
}

func NewService(repo Repository, templates TemplateRepository, categories CategorySource, petSrc PetSource, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:       repo,
		templates:  templates,
		categories: categories,
		pets:       petSrc,
		log:        log,
		now:        time.Now,
	}
}

type CreateInput struct {
	Title             string
	Description       string
	CategoryID        *int64
	Completed         bool
	DueDate           *time.Time
	PetID             string
	RecurringType     RecurringType
	RecurringInterval int
	Priority          Priority
	IsDefault         bool
	ParentTaskID      string
}

func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Task, error) {
	t, err := s.build(ownerID, in, s.now())
	if err != nil {
		return Task{}, err
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

// CreateBatch arma y persiste todas las tareas en una sola escritura.
// Lo usa el generador de datos por defecto (paso A).
func (s *Service) CreateBatch(ctx context.Context, ownerID string, ins []CreateInput) ([]Task, error) {
	if len(ins) == 0 {
		return nil, nil
	}

	now := s.now()
	ts := make([]Task, 0, len(ins))
	for _, in := range ins {
		t, err := s.build(ownerID, in, now)
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}

	if err := s.repo.CreateBatch(ctx, ts); err != nil {
		return nil, err
	}
	return ts, nil
}

func (s *Service) GetByID(ctx context.Context, id string, inc Include) (Task, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Task{}, ErrInvalidInput
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Task{}, err
	}
	s.expand(ctx, &t, inc)
	return t, nil
}

func (s *Service) List(ctx context.Context, ownerID string, f ListFilter, inc Include) ([]Task, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrInvalidInput
	}

	items, err := s.repo.ListByOwner(ctx, ownerID, f)
	if err != nil {
		return nil, err
	}
	for i := range items {
		s.expand(ctx, &items[i], inc)
	}
	return items, nil
}

type UpdateInput struct {
	Title             *string
	Description       *string
	CategoryID        *int64
	Completed         *bool
	DueDate           *time.Time
	RecurringType     *RecurringType
	RecurringInterval *int
	Priority          *Priority
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Task, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Task{}, ErrInvalidInput
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Task{}, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return Task{}, ErrInvalidInput
		}
		t.Title = title
	}
	if in.Description != nil {
		t.Description = strings.TrimSpace(*in.Description)
	}
	if in.CategoryID != nil {
		t.CategoryID = in.CategoryID
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate
	}
	if in.RecurringType != nil {
		rt, ok := ParseRecurringType(string(*in.RecurringType))
		if !ok {
			return Task{}, ErrInvalidInput
		}
		t.RecurringType = rt
	}
	if in.RecurringInterval != nil {
		t.RecurringInterval = *in.RecurringInterval
	}
	if in.Priority != nil {
		pr, ok := ParsePriority(string(*in.Priority))
		if !ok {
			return Task{}, ErrInvalidInput
		}
		t.Priority = pr
	}

	t.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

// SetCompleted lo usa el camino de actualización de vacunas: marcar una
// vacuna administrada completa su tarea asociada (nunca al revés).
func (s *Service) SetCompleted(ctx context.Context, id string, completed bool) (Task, error) {
	return s.Update(ctx, id, UpdateInput{Completed: &completed})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListDefaultTasks(ctx context.Context, speciesID int64) ([]DefaultTask, error) {
	if speciesID < 0 {
		return nil, ErrInvalidInput
	}
	return s.templates.ListBySpecies(ctx, speciesID)
}

func (s *Service) build(ownerID string, in CreateInput, now time.Time) (Task, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return Task{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return Task{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.PetID) == "" {
		return Task{}, ErrInvalidInput
	}

	rt := in.RecurringType
	if rt == "" {
		rt = RecurringNone
	}

	return Task{
		ID:                uuid.NewString(),
		Title:             strings.TrimSpace(in.Title),
		Description:       strings.TrimSpace(in.Description),
		CategoryID:        in.CategoryID,
		Completed:         in.Completed,
		DueDate:           in.DueDate,
		PetID:             strings.TrimSpace(in.PetID),
		RecurringType:     rt,
		RecurringInterval: in.RecurringInterval,
		Priority:          in.Priority,
		OwnerID:           ownerID,
		IsDefault:         in.IsDefault,
		ParentTaskID:      strings.TrimSpace(in.ParentTaskID),
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

func (s *Service) expand(ctx context.Context, t *Task, inc Include) {
	if inc.Category && s.categories != nil && t.CategoryID != nil {
		if c, err := s.categories.GetTaskCategory(ctx, *t.CategoryID); err == nil {
			t.Category = &c
		} else {
			s.log.Debug("category expansion failed", map[string]any{
				"task_id":     t.ID,
				"category_id": *t.CategoryID,
				"err":         err.Error(),
			})
		}
	}

	if inc.Pet && s.pets != nil && t.PetID != "" {
		// La mascota se sub-expande con su especie (un solo nivel).
		if p, err := s.pets.GetByID(ctx, t.PetID, pets.Include{Species: true}); err == nil {
			t.Pet = &p
		} else {
			s.log.Debug("pet expansion failed", map[string]any{
				"task_id": t.ID,
				"pet_id":  t.PetID,
				"err":     err.Error(),
			})
		}
	}
}
