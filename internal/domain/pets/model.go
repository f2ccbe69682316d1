package pets

import (
	"time"

	"pet-care-tracker/internal/domain/catalog"
)

// Gender define el género de la mascota.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

func ParseGender(s string) (Gender, bool) {
	switch Gender(s) {
	case GenderMale, GenderFemale, GenderUnknown:
		return Gender(s), true
	case "":
		return GenderUnknown, true
	default:
		return "", false
	}
}

// Pet representa una mascota registrada, siempre con un dueño.
type Pet struct {
	ID        string
	Name      string
	SpeciesID int64
	Breed     string
	BirthDate *time.Time
	Gender    Gender
	ImageURL  string
	Notes     string
	OwnerID   string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Expansión opcional (Include{Species: true})
	Species *catalog.Species
}

// Include declara qué relaciones expandir en las lecturas.
// Reemplaza los joins implícitos por-llamada del diseño anterior.
type Include struct {
	Species bool
}
