package profiles

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Profile, error)
	// Upsert inserta o pisa el perfil completo según el id.
	Upsert(ctx context.Context, p Profile) error
}
