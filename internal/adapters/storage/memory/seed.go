package memory

import (
	"pet-care-tracker/internal/domain/catalog"
	"pet-care-tracker/internal/domain/tasks"
)

// SeedData es el catálogo de referencia completo de un backend en memoria.
type SeedData struct {
	Species          []catalog.Species
	TaskCategories   []catalog.TaskCategory
	VaccineTypes     []catalog.VaccineType
	VaccineSchedules []catalog.VaccineSchedule
	DefaultTasks     []tasks.DefaultTask
}

// DefaultSeed replica el seed de las migraciones de postgres para que el
// backend de desarrollo se comporte igual que producción. La categoría
// "health" es obligatoria: las tareas de vacunas la buscan por nombre.
func DefaultSeed() SeedData {
	intp := func(v int) *int { return &v }
	i64p := func(v int64) *int64 { return &v }

	return SeedData{
		Species: []catalog.Species{
			{ID: 1, Name: "dog", Description: "Domestic dog"},
			{ID: 2, Name: "cat", Description: "Domestic cat"},
		},
		TaskCategories: []catalog.TaskCategory{
			{ID: 1, Name: "feeding", Description: "Food and water", Color: "#F59E0B", Icon: "bowl"},
			{ID: 2, Name: "health", Description: "Vet visits, medication and vaccines", Color: "#EF4444", Icon: "heart"},
			{ID: 3, Name: "grooming", Description: "Bathing, brushing and nail care", Color: "#8B5CF6", Icon: "scissors"},
			{ID: 4, Name: "exercise", Description: "Walks and play", Color: "#10B981", Icon: "paw"},
			{ID: 5, Name: "training", Description: "Obedience and habits", Color: "#3B82F6", Icon: "star"},
		},
		VaccineTypes: []catalog.VaccineType{
			{ID: 1, Name: "Rabies", Description: "Rabies vaccine", ApplicableSpecies: []int64{1, 2}},
			{ID: 2, Name: "Distemper", Description: "Canine distemper combination vaccine", ApplicableSpecies: []int64{1}},
			{ID: 3, Name: "Parvovirus", Description: "Canine parvovirus vaccine", ApplicableSpecies: []int64{1}},
			{ID: 4, Name: "FVRCP", Description: "Feline viral rhinotracheitis, calicivirus and panleukopenia", ApplicableSpecies: []int64{2}},
			{ID: 5, Name: "Feline Leukemia", Description: "FeLV vaccine", ApplicableSpecies: []int64{2}},
		},
		VaccineSchedules: []catalog.VaccineSchedule{
			// perros
			{ID: 1, VaccineTypeID: 2, SpeciesID: 1, AgeInMonths: 2, Notes: "First distemper dose"},
			{ID: 2, VaccineTypeID: 3, SpeciesID: 1, AgeInMonths: 2, Notes: "First parvovirus dose"},
			{ID: 3, VaccineTypeID: 2, SpeciesID: 1, AgeInMonths: 3, Notes: "Distemper booster"},
			{ID: 4, VaccineTypeID: 1, SpeciesID: 1, AgeInMonths: 4, IsRecurring: true, RecurringMonths: 12, Notes: "Annual rabies shot"},
			// gatos
			{ID: 5, VaccineTypeID: 4, SpeciesID: 2, AgeInMonths: 2, Notes: "First FVRCP dose"},
			{ID: 6, VaccineTypeID: 4, SpeciesID: 2, AgeInMonths: 3, Notes: "FVRCP booster"},
			{ID: 7, VaccineTypeID: 5, SpeciesID: 2, AgeInMonths: 3, Notes: "FeLV for outdoor cats"},
			{ID: 8, VaccineTypeID: 1, SpeciesID: 2, AgeInMonths: 4, IsRecurring: true, RecurringMonths: 12, Notes: "Annual rabies shot"},
		},
		DefaultTasks: []tasks.DefaultTask{
			{ID: 1, Title: "Feed twice a day", CategoryID: i64p(1), SpeciesID: 1, RecurringType: tasks.RecurringDaily, RecurringInterval: 1, Priority: tasks.PriorityHigh},
			{ID: 2, Title: "Daily walk", CategoryID: i64p(4), SpeciesID: 1, RecurringType: tasks.RecurringDaily, RecurringInterval: 1, Priority: tasks.PriorityMedium},
			{ID: 3, Title: "Brush coat", CategoryID: i64p(3), SpeciesID: 1, RecurringType: tasks.RecurringWeekly, RecurringInterval: 1, Priority: tasks.PriorityLow},
			{ID: 4, Title: "Monthly flea and tick treatment", CategoryID: i64p(2), SpeciesID: 1, RecurringType: tasks.RecurringMonthly, RecurringInterval: 1, Priority: tasks.PriorityHigh, AgeMinMonths: intp(2)},
			{ID: 5, Title: "Annual vet checkup", CategoryID: i64p(2), SpeciesID: 1, RecurringType: tasks.RecurringYearly, RecurringInterval: 1, Priority: tasks.PriorityHigh},
			{ID: 6, Title: "Feed twice a day", CategoryID: i64p(1), SpeciesID: 2, RecurringType: tasks.RecurringDaily, RecurringInterval: 1, Priority: tasks.PriorityHigh},
			{ID: 7, Title: "Clean litter box", CategoryID: i64p(3), SpeciesID: 2, RecurringType: tasks.RecurringDaily, RecurringInterval: 1, Priority: tasks.PriorityMedium},
			{ID: 8, Title: "Brush coat", CategoryID: i64p(3), SpeciesID: 2, RecurringType: tasks.RecurringWeekly, RecurringInterval: 1, Priority: tasks.PriorityLow},
			{ID: 9, Title: "Annual vet checkup", CategoryID: i64p(2), SpeciesID: 2, RecurringType: tasks.RecurringYearly, RecurringInterval: 1, Priority: tasks.PriorityHigh},
		},
	}
}
