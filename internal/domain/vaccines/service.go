package vaccines

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-care-tracker/internal/domain/catalog"
	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/tasks"
	"pet-care-tracker/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// healthCategoryName es la categoría que reciben las tareas de vacunas.
// Se resuelve por nombre porque los ids del catálogo dependen del seed.
const healthCategoryName = "health"

type CatalogSource interface {
	GetVaccineType(ctx context.Context, id int64) (catalog.VaccineType, error)
	FindTaskCategoryByName(ctx context.Context, name string) (catalog.TaskCategory, error)
}

type PetSource interface {
	GetByID(ctx context.Context, id string, inc pets.Include) (pets.Pet, error)
}

// TaskService es lo que este módulo necesita del módulo de tareas para
// mantener el par vacuna↔tarea.
type TaskService interface {
	Create(ctx context.Context, ownerID string, in tasks.CreateInput) (tasks.Task, error)
	GetByID(ctx context.Context, id string, inc tasks.Include) (tasks.Task, error)
	SetCompleted(ctx context.Context, id string, completed bool) (tasks.Task, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo    Repository
	catalog CatalogSource
	pets    PetSource
	tasks   TaskService
	log     logger.Logger
	now     func() time.Time
}

func NewService(repo Repository, cat CatalogSource, petSrc PetSource, taskSvc TaskService, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:    repo,
		catalog: cat,
		pets:    petSrc,
		tasks:   taskSvc,
		log:     log,
		now:     time.Now,
	}
}

type CreateInput struct {
	PetID         string
	VaccineTypeID int64
	ScheduledDate time.Time
	Notes         string
	// TaskID opcional: si viene vacío se crea la tarea asociada acá.
	TaskID string
}

// Create es la escritura en dos fases: primero la tarea (para capturar su
// id), después la vacuna que la referencia. No hay transacción entre ambas;
// si la vacuna falla, la tarea queda — resultado parcial aceptado.
func (s *Service) Create(ctx context.Context, in CreateInput) (PetVaccine, error) {
	petID := strings.TrimSpace(in.PetID)
	if petID == "" || in.VaccineTypeID <= 0 || in.ScheduledDate.IsZero() {
		return PetVaccine{}, ErrInvalidInput
	}

	taskID := strings.TrimSpace(in.TaskID)
	if taskID == "" {
		taskID = s.createLinkedTask(ctx, petID, in)
	}

	now := s.now()
	v := PetVaccine{
		ID:            uuid.NewString(),
		PetID:         petID,
		VaccineTypeID: in.VaccineTypeID,
		ScheduledDate: in.ScheduledDate,
		Administered:  false,
		Notes:         strings.TrimSpace(in.Notes),
		TaskID:        taskID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return PetVaccine{}, err
	}
	return v, nil
}

// createLinkedTask arma la tarea asociada a la vacuna. Best-effort: si algo
// falla se loguea y la vacuna se crea sin tarea (comportamiento original).
func (s *Service) createLinkedTask(ctx context.Context, petID string, in CreateInput) string {
	vt, err := s.catalog.GetVaccineType(ctx, in.VaccineTypeID)
	if err != nil {
		s.log.Warn("vaccine task skipped: vaccine type lookup failed", map[string]any{
			"pet_id":          petID,
			"vaccine_type_id": in.VaccineTypeID,
			"err":             err.Error(),
		})
		return ""
	}

	p, err := s.pets.GetByID(ctx, petID, pets.Include{})
	if err != nil {
		s.log.Warn("vaccine task skipped: pet lookup failed", map[string]any{
			"pet_id": petID,
			"err":    err.Error(),
		})
		return ""
	}

	var categoryID *int64
	if c, err := s.catalog.FindTaskCategoryByName(ctx, healthCategoryName); err == nil {
		categoryID = &c.ID
	}

	due := in.ScheduledDate
	t, err := s.tasks.Create(ctx, p.OwnerID, tasks.CreateInput{
		Title:         fmt.Sprintf("%s vaccine", vt.Name),
		Description:   fmt.Sprintf("%s vaccine appointment for %s", vt.Name, p.Name),
		CategoryID:    categoryID,
		Completed:     false,
		DueDate:       &due,
		PetID:         petID,
		RecurringType: tasks.RecurringNone,
		Priority:      tasks.PriorityHigh,
		IsDefault:     true,
	})
	if err != nil {
		s.log.Warn("vaccine task creation failed", map[string]any{
			"pet_id":          petID,
			"vaccine_type_id": in.VaccineTypeID,
			"err":             err.Error(),
		})
		return ""
	}

	return t.ID
}

func (s *Service) GetByID(ctx context.Context, id string, inc Include) (PetVaccine, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return PetVaccine{}, ErrInvalidInput
	}

	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return PetVaccine{}, err
	}
	s.expand(ctx, &v, inc)
	return v, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string, inc Include) ([]PetVaccine, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, ErrInvalidInput
	}

	items, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		s.expand(ctx, &items[i], inc)
	}
	return items, nil
}

type UpdateInput struct {
	ScheduledDate    *time.Time
	AdministeredDate *time.Time
	Administered     *bool
	Notes            *string
}

// Update aplica el patch. Cuando administered pasa a true y hay tarea
// asociada, la tarea se completa también (solo en ese sentido: completar
// una tarea nunca marca la vacuna como administrada).
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (PetVaccine, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return PetVaccine{}, ErrInvalidInput
	}

	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return PetVaccine{}, err
	}

	if in.Administered != nil && *in.Administered && v.TaskID != "" {
		if _, err := s.tasks.SetCompleted(ctx, v.TaskID, true); err != nil {
			// Best-effort: la vacuna se actualiza igual.
			s.log.Warn("linked task completion failed", map[string]any{
				"vaccine_id": v.ID,
				"task_id":    v.TaskID,
				"err":        err.Error(),
			})
		}
	}

	if in.ScheduledDate != nil {
		v.ScheduledDate = *in.ScheduledDate
	}
	if in.AdministeredDate != nil {
		v.AdministeredDate = in.AdministeredDate
	}
	if in.Administered != nil {
		v.Administered = *in.Administered
	}
	if in.Notes != nil {
		v.Notes = strings.TrimSpace(*in.Notes)
	}

	v.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, v); err != nil {
		return PetVaccine{}, err
	}
	return v, nil
}

// Delete borra la vacuna y su tarea asociada. La cascada es asimétrica:
// borrar la tarea directamente no toca la vacuna.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}

	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if v.TaskID != "" {
		if err := s.tasks.Delete(ctx, v.TaskID); err != nil {
			s.log.Warn("linked task deletion failed", map[string]any{
				"vaccine_id": v.ID,
				"task_id":    v.TaskID,
				"err":        err.Error(),
			})
		}
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) expand(ctx context.Context, v *PetVaccine, inc Include) {
	if inc.VaccineType && s.catalog != nil {
		if vt, err := s.catalog.GetVaccineType(ctx, v.VaccineTypeID); err == nil {
			v.VaccineType = &vt
		}
	}
	if inc.Task && s.tasks != nil && v.TaskID != "" {
		if t, err := s.tasks.GetByID(ctx, v.TaskID, tasks.Include{}); err == nil {
			v.Task = &t
		}
	}
}
