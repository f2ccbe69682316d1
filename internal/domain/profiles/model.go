package profiles

import "time"

// Profile son los datos visibles del usuario. El ID es el id del usuario en
// el proveedor de identidad (no se genera acá).
type Profile struct {
	ID        string
	Name      string
	AvatarURL string

	CreatedAt time.Time
	UpdatedAt time.Time
}
