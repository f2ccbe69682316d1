package tasks

import (
	"time"

	"pet-care-tracker/internal/domain/catalog"
	"pet-care-tracker/internal/domain/pets"
)

// RecurringType es la cadencia de una tarea. La ejecución de la recurrencia
// (avanzar instancias automáticamente) está fuera del alcance del servicio.
type RecurringType string

const (
	RecurringDaily   RecurringType = "daily"
	RecurringWeekly  RecurringType = "weekly"
	RecurringMonthly RecurringType = "monthly"
	RecurringYearly  RecurringType = "yearly"
	RecurringNone    RecurringType = "none"
)

func ParseRecurringType(s string) (RecurringType, bool) {
	switch RecurringType(s) {
	case RecurringDaily, RecurringWeekly, RecurringMonthly, RecurringYearly, RecurringNone:
		return RecurringType(s), true
	case "":
		return RecurringNone, true
	default:
		return "", false
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, "":
		return Priority(s), true
	default:
		return "", false
	}
}

// Task pertenece a exactamente una mascota y un dueño.
// IsDefault marca las tareas generadas automáticamente al crear la mascota.
type Task struct {
	ID                string
	Title             string
	Description       string
	CategoryID        *int64
	Completed         bool
	DueDate           *time.Time
	PetID             string
	RecurringType     RecurringType
	RecurringInterval int
	Priority          Priority
	OwnerID           string
	IsDefault         bool
	ParentTaskID      string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Expansiones opcionales (Include)
	Category *catalog.TaskCategory
	Pet      *pets.Pet
}

// DefaultTask es el template de referencia que se copia a cada mascota
// nueva de la especie. Vive acá para compartir los enums de Task.
type DefaultTask struct {
	ID                int64
	Title             string
	Description       string
	CategoryID        *int64
	SpeciesID         int64
	RecurringType     RecurringType
	RecurringInterval int
	Priority          Priority
	AgeMinMonths      *int
	AgeMaxMonths      *int
	CreatedAt         time.Time
}

// Include declara qué relaciones expandir en las lecturas. La mascota
// expandida trae a su vez su especie (un nivel de sub-expansión).
type Include struct {
	Category bool
	Pet      bool
}

type ListFilter struct {
	PetID string
}
