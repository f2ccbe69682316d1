package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-care-tracker/internal/domain/catalog"
	"pet-care-tracker/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// DefaultsSeeder puebla las tareas por defecto y el plan de vacunación de
// una mascota recién creada. Definido acá para no importar el paquete del
// generador (que a su vez depende de pets).
type DefaultsSeeder interface {
	PopulateForPet(ctx context.Context, p Pet) error
}

// SpeciesSource resuelve la expansión de especie en lecturas.
type SpeciesSource interface {
	GetSpecies(ctx context.Context, id int64) (catalog.Species, error)
}

type Service struct {
	repo    Repository
	species SpeciesSource
	seeder  DefaultsSeeder
	log     logger.Logger
	now     func() time.Time
}

func NewService(repo Repository, species SpeciesSource, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:    repo,
		species: species,
		log:     log,
		now:     time.Now,
	}
}

// SetSeeder engancha el generador de datos por defecto después de la
// construcción (el generador necesita los servicios de tasks/vaccines,
// que a su vez necesitan este servicio).
func (s *Service) SetSeeder(seeder DefaultsSeeder) {
	s.seeder = seeder
}

type CreateInput struct {
	Name      string
	SpeciesID int64
	Breed     string
	BirthDate *time.Time
	Gender    Gender
	ImageURL  string
	Notes     string
}

// Create inserta la mascota y después dispara el seeding de datos por
// defecto. El seeding es best-effort: un fallo se loguea y no se propaga
// ni revierte la mascota ya creada.
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.SpeciesID <= 0 {
		return Pet{}, ErrInvalidInput
	}

	gender := in.Gender
	if gender == "" {
		gender = GenderUnknown
	}

	now := s.now()
	p := Pet{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		SpeciesID: in.SpeciesID,
		Breed:     strings.TrimSpace(in.Breed),
		BirthDate: in.BirthDate,
		Gender:    gender,
		ImageURL:  strings.TrimSpace(in.ImageURL),
		Notes:     strings.TrimSpace(in.Notes),
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}

	if s.seeder != nil {
		if err := s.seeder.PopulateForPet(ctx, p); err != nil {
			s.log.Error("default data generation failed", map[string]any{
				"pet_id": p.ID,
				"err":    err.Error(),
			})
		}
	}

	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string, inc Include) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	s.expand(ctx, &p, inc)
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string, inc Include) ([]Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrInvalidInput
	}

	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		s.expand(ctx, &items[i], inc)
	}
	return items, nil
}

// BirthDatePatch distingue "no enviado" de "enviado null" (limpiar fecha).
type BirthDatePatch struct {
	Present bool
	Value   *time.Time
}

type UpdateInput struct {
	Name      *string
	SpeciesID *int64
	Breed     *string
	Gender    *Gender
	ImageURL  *string
	Notes     *string
	BirthDate BirthDatePatch
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.SpeciesID != nil {
		if *in.SpeciesID <= 0 {
			return Pet{}, ErrInvalidInput
		}
		p.SpeciesID = *in.SpeciesID
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Gender != nil {
		g, ok := ParseGender(string(*in.Gender))
		if !ok {
			return Pet{}, ErrInvalidInput
		}
		p.Gender = g
	}
	if in.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.BirthDate.Present {
		p.BirthDate = in.BirthDate.Value
	}

	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// SetImageURL lo usa el flujo de subida de imagen (presigned upload).
func (s *Service) SetImageURL(ctx context.Context, id, url string) (Pet, error) {
	u := strings.TrimSpace(url)
	return s.Update(ctx, id, UpdateInput{ImageURL: &u})
}

// Delete borra la mascota. Las tareas y vacunas dependientes las limpia el
// store remoto vía integridad referencial, no esta capa.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// OwnerOf expone el dueño sin forzar una lectura completa en los llamadores.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerID, nil
}

func (s *Service) expand(ctx context.Context, p *Pet, inc Include) {
	if !inc.Species || s.species == nil {
		return
	}
	sp, err := s.species.GetSpecies(ctx, p.SpeciesID)
	if err != nil {
		// La expansión es best-effort: el registro base siempre vale.
		s.log.Debug("species expansion failed", map[string]any{
			"pet_id":     p.ID,
			"species_id": p.SpeciesID,
			"err":        err.Error(),
		})
		return
	}
	p.Species = &sp
}
