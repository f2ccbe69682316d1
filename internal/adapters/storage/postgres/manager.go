package postgres

import (
	"database/sql"

	"pet-care-tracker/internal/domain/catalog"
	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/profiles"
	"pet-care-tracker/internal/domain/tasks"
	"pet-care-tracker/internal/domain/vaccines"
)

// Manager es el backend Postgres: arma todos los repos sobre la misma
// conexión pool.
type Manager struct {
	db *sql.DB
}

func NewManager(db *sql.DB) *Manager {
	return &Manager{db: db}
}

func (m *Manager) Catalog() catalog.Repository             { return NewCatalogRepo(m.db) }
func (m *Manager) Pets() pets.Repository                   { return NewPetsRepo(m.db) }
func (m *Manager) Tasks() tasks.Repository                 { return NewTasksRepo(m.db) }
func (m *Manager) TaskTemplates() tasks.TemplateRepository { return NewTemplatesRepo(m.db) }
func (m *Manager) Vaccines() vaccines.Repository           { return NewVaccinesRepo(m.db) }
func (m *Manager) Profiles() profiles.Repository           { return NewProfilesRepo(m.db) }
