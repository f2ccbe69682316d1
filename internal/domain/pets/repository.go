package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	// ListByOwner devuelve las mascotas ordenadas por created_at desc.
	ListByOwner(ctx context.Context, ownerID string) ([]Pet, error)
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
}
