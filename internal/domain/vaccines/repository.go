package vaccines

import "context"

type Repository interface {
	Create(ctx context.Context, v PetVaccine) error
	GetByID(ctx context.Context, id string) (PetVaccine, error)
	// ListByPet devuelve las vacunas ordenadas por scheduled_date asc.
	ListByPet(ctx context.Context, petID string) ([]PetVaccine, error)
	Update(ctx context.Context, v PetVaccine) error
	Delete(ctx context.Context, id string) error
}
