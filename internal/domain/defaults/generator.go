package defaults

import (
	"context"
	"fmt"
	"time"

	"pet-care-tracker/internal/domain/catalog"
	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/tasks"
	"pet-care-tracker/internal/domain/vaccines"
	"pet-care-tracker/internal/platform/logger"
)

// TemplateSource lee los templates de tareas por defecto de una especie.
type TemplateSource interface {
	ListDefaultTasks(ctx context.Context, speciesID int64) ([]tasks.DefaultTask, error)
}

// ScheduleSource lee los calendarios de vacunación de una especie.
type ScheduleSource interface {
	ListVaccineSchedules(ctx context.Context, speciesID int64) ([]catalog.VaccineSchedule, error)
}

// TaskWriter persiste el lote de tareas por defecto en una sola escritura.
type TaskWriter interface {
	CreateBatch(ctx context.Context, ownerID string, ins []tasks.CreateInput) ([]tasks.Task, error)
}

// VaccineCreator crea el par tarea+vacuna (la escritura en dos fases vive
// en el servicio de vacunas).
type VaccineCreator interface {
	Create(ctx context.Context, in vaccines.CreateInput) (vaccines.PetVaccine, error)
}

// Generator puebla las tareas de cuidado recurrentes y el plan de
// vacunación de una mascota recién creada. Corre sincrónicamente después
// del alta; nunca se reintenta y nunca revierte la mascota: los fallos se
// loguean por paso/por ítem y la ejecución sigue.
type Generator struct {
	templates TemplateSource
	schedules ScheduleSource
	tasks     TaskWriter
	vaccines  VaccineCreator
	log       logger.Logger
	now       func() time.Time
}

func NewGenerator(templates TemplateSource, schedules ScheduleSource, taskWriter TaskWriter, vaccineCreator VaccineCreator, log logger.Logger) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{
		templates: templates,
		schedules: schedules,
		tasks:     taskWriter,
		vaccines:  vaccineCreator,
		log:       log,
		now:       time.Now,
	}
}

// PopulateForPet ejecuta los dos pasos:
//
// Paso A: copia los templates de tareas de la especie a tareas de la
// mascota (is_default=true) en una sola escritura en lote. Si la especie no
// tiene templates, la rutina termina acá. Si el lote falla, se loguea y el
// paso B corre igual (los pasos fallan de forma independiente).
//
// Paso B: proyecta el calendario de vacunas desde la fecha de nacimiento.
// Sin fecha de nacimiento no hay proyección. Cada entrada crea una tarea y
// una vacuna que la referencia, una por una (la vacuna necesita el id de la
// tarea recién creada); un fallo individual no aborta las demás entradas.
func (g *Generator) PopulateForPet(ctx context.Context, p pets.Pet) error {
	templates, err := g.templates.ListDefaultTasks(ctx, p.SpeciesID)
	if err != nil {
		return fmt.Errorf("default task templates lookup: %w", err)
	}
	if len(templates) == 0 {
		return nil
	}

	ins := make([]tasks.CreateInput, 0, len(templates))
	for _, dt := range templates {
		ins = append(ins, tasks.CreateInput{
			Title:             dt.Title,
			Description:       dt.Description,
			CategoryID:        dt.CategoryID,
			Completed:         false,
			PetID:             p.ID,
			RecurringType:     dt.RecurringType,
			RecurringInterval: dt.RecurringInterval,
			Priority:          dt.Priority,
			IsDefault:         true,
		})
	}

	if _, err := g.tasks.CreateBatch(ctx, p.OwnerID, ins); err != nil {
		g.log.Error("default tasks batch failed", map[string]any{
			"pet_id":     p.ID,
			"species_id": p.SpeciesID,
			"count":      len(ins),
			"err":        err.Error(),
		})
	}

	return g.populateVaccines(ctx, p)
}

func (g *Generator) populateVaccines(ctx context.Context, p pets.Pet) error {
	schedules, err := g.schedules.ListVaccineSchedules(ctx, p.SpeciesID)
	if err != nil {
		return fmt.Errorf("vaccine schedules lookup: %w", err)
	}
	if len(schedules) == 0 {
		return nil
	}

	if p.BirthDate == nil {
		// Sin fecha de nacimiento no se puede proyectar un calendario por edad.
		return nil
	}

	birth := dateOnly(*p.BirthDate)
	today := dateOnly(g.now())

	for _, sched := range schedules {
		due := scheduledDate(birth, sched, today)

		_, err := g.vaccines.Create(ctx, vaccines.CreateInput{
			PetID:         p.ID,
			VaccineTypeID: sched.VaccineTypeID,
			ScheduledDate: due,
			Notes:         sched.Notes,
		})
		if err != nil {
			g.log.Error("vaccine schedule entry failed", map[string]any{
				"pet_id":          p.ID,
				"schedule_id":     sched.ID,
				"vaccine_type_id": sched.VaccineTypeID,
				"err":             err.Error(),
			})
			continue
		}
	}

	return nil
}

// scheduledDate calcula la fecha de una entrada del calendario:
// nominal = nacimiento + age_in_months meses calendario. Si la nominal ya
// pasó: las recurrentes avanzan de a recurring_months desde la nominal
// (no desde hoy) hasta dejar de estar en el pasado; las no recurrentes se
// clampean a hoy.
func scheduledDate(birth time.Time, sched catalog.VaccineSchedule, today time.Time) time.Time {
	due := addMonths(birth, sched.AgeInMonths)

	if due.Before(today) {
		if sched.IsRecurring && sched.RecurringMonths > 0 {
			for due.Before(today) {
				due = addMonths(due, sched.RecurringMonths)
			}
		} else {
			due = today
		}
	}

	return due
}

// addMonths suma meses calendario preservando el día del mes cuando existe
// (el overflow normaliza: 31 de enero + 1 mes cae a principios de marzo).
func addMonths(t time.Time, months int) time.Time {
	return t.AddDate(0, months, 0)
}

// dateOnly trunca a medianoche UTC; las comparaciones de vencimiento son a
// granularidad de día.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
