package catalog

import "time"

// El catálogo es data de referencia: se escribe solo vía migraciones/seed.
// Los ids son enteros estables (a diferencia de los uuid de data de usuario).

// Species clasifica una mascota (dog, cat, ...) y determina qué
// tareas por defecto y calendarios de vacunas aplican.
type Species struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}

// TaskCategory es un lookup chico (health, feeding, ...), sin dueño.
type TaskCategory struct {
	ID          int64
	Name        string
	Description string
	Color       string
	Icon        string
	CreatedAt   time.Time
}

type VaccineType struct {
	ID                int64
	Name              string
	Description       string
	ApplicableSpecies []int64
	CreatedAt         time.Time
}

// VaccineSchedule es un template de referencia: cuándo (en meses desde el
// nacimiento) corresponde nominalmente una vacuna para una especie, y si
// se repite. No está atado a ninguna mascota concreta.
type VaccineSchedule struct {
	ID              int64
	VaccineTypeID   int64
	SpeciesID       int64
	AgeInMonths     int
	IsRecurring     bool
	RecurringMonths int
	Notes           string
	CreatedAt       time.Time

	// Expansión opcional
	VaccineType *VaccineType
}
