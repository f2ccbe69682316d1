package memory

import (
	"errors"

	"pet-care-tracker/internal/domain/catalog"
	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/profiles"
	"pet-care-tracker/internal/domain/tasks"
	"pet-care-tracker/internal/domain/vaccines"
)

var ErrNotFound = errors.New("not found")

// Manager es el backend en memoria para desarrollo y tests. El catálogo y
// los templates se cargan por seed (Load); la data de usuario arranca vacía.
type Manager struct {
	catalog   *catalogRepo
	pets      *petRepo
	tasks     *taskRepo
	templates *templateRepo
	vaccines  *vaccineRepo
	profiles  *profileRepo
}

func NewManager() *Manager {
	return &Manager{
		catalog:   newCatalogRepo(),
		pets:      newPetRepo(),
		tasks:     newTaskRepo(),
		templates: newTemplateRepo(),
		vaccines:  newVaccineRepo(),
		profiles:  newProfileRepo(),
	}
}

// NewManagerWithDefaults arranca con el catálogo de referencia cargado
// (equivalente al seed de las migraciones de postgres).
func NewManagerWithDefaults() *Manager {
	m := NewManager()
	m.Load(DefaultSeed())
	return m
}

// Load pisa el catálogo y los templates con el seed dado.
func (m *Manager) Load(seed SeedData) {
	m.catalog.load(seed)
	m.templates.load(seed.DefaultTasks)
}

func (m *Manager) Catalog() catalog.Repository             { return m.catalog }
func (m *Manager) Pets() pets.Repository                   { return m.pets }
func (m *Manager) Tasks() tasks.Repository                 { return m.tasks }
func (m *Manager) TaskTemplates() tasks.TemplateRepository { return m.templates }
func (m *Manager) Vaccines() vaccines.Repository           { return m.vaccines }
func (m *Manager) Profiles() profiles.Repository           { return m.profiles }
