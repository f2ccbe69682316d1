package storage

import (
	"pet-care-tracker/internal/domain/catalog"
	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/profiles"
	"pet-care-tracker/internal/domain/tasks"
	"pet-care-tracker/internal/domain/vaccines"
)

// Repositories agrupa los repos concretos de un backend. Los dos backends
// (memoria para dev, postgres para prod) lo implementan completo: el router
// y los comandos administrativos se arman contra esta interfaz.
type Repositories interface {
	Catalog() catalog.Repository
	Pets() pets.Repository
	Tasks() tasks.Repository
	TaskTemplates() tasks.TemplateRepository
	Vaccines() vaccines.Repository
	Profiles() profiles.Repository
}
