package catalog

import "context"

type Repository interface {
	ListSpecies(ctx context.Context) ([]Species, error)
	GetSpecies(ctx context.Context, id int64) (Species, error)

	ListTaskCategories(ctx context.Context) ([]TaskCategory, error)
	GetTaskCategory(ctx context.Context, id int64) (TaskCategory, error)
	FindTaskCategoryByName(ctx context.Context, name string) (TaskCategory, error)

	ListVaccineTypes(ctx context.Context) ([]VaccineType, error)
	GetVaccineType(ctx context.Context, id int64) (VaccineType, error)

	// speciesID == 0 lista todos los calendarios.
	ListVaccineSchedules(ctx context.Context, speciesID int64) ([]VaccineSchedule, error)
}
