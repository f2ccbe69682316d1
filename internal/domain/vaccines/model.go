package vaccines

import (
	"time"

	"pet-care-tracker/internal/domain/catalog"
	"pet-care-tracker/internal/domain/tasks"
)

// PetVaccine es una vacuna planificada (o aplicada) de una mascota.
//
// Invariante del ciclo de vida: toda vacuna generada automáticamente tiene
// exactamente una tarea asociada (creada primero, referenciada por TaskID), y
// marcar Administered=true completa esa tarea. La inversa no vale: completar
// la tarea no administra la vacuna.
type PetVaccine struct {
	ID               string
	PetID            string
	VaccineTypeID    int64
	ScheduledDate    time.Time
	AdministeredDate *time.Time
	Administered     bool
	Notes            string
	TaskID           string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Expansiones opcionales (Include)
	VaccineType *catalog.VaccineType
	Task        *tasks.Task
}

type Include struct {
	VaccineType bool
	Task        bool
}
