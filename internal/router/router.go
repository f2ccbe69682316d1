package router

import (
	"database/sql"
	"net/http"
	"os"

	"pet-care-tracker/internal/adapters/storage"
	mem "pet-care-tracker/internal/adapters/storage/memory"
	pg "pet-care-tracker/internal/adapters/storage/postgres"
	"pet-care-tracker/internal/domain/catalog"
	"pet-care-tracker/internal/domain/defaults"
	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/profiles"
	"pet-care-tracker/internal/domain/tasks"
	"pet-care-tracker/internal/domain/vaccines"
	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/platform/logger"
	"pet-care-tracker/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	AuthVerifier auth.AuthVerifier  // puede ser nil (modo dev)
	Sessions     auth.SessionClient // puede ser nil: las rutas /auth responden 503

	// Opcional: backend ya construido (lo comparten los comandos admin).
	Repos storage.Repositories
	// Opcional: si viene DB usa Postgres. Sin Repos ni DB, in-memory con seed.
	DB *sql.DB

	Cache  catalog.Cache   // opcional
	Media  pets.MediaStore // opcional: sin media no hay upload de fotos
	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	repos := opts.Repos
	if repos == nil {
		db := opts.DB
		if db == nil {
			if dsn := os.Getenv("DB_DSN"); dsn != "" {
				opened, err := pg.Open(dsn)
				if err == nil {
					db = opened
				} else {
					log.Warn("postgres unavailable, falling back to memory", map[string]any{"err": err.Error()})
				}
			}
		}
		if db != nil {
			repos = pg.NewManager(db)
		} else {
			repos = mem.NewManagerWithDefaults()
		}
	}

	// Services por módulo
	catalogSvc := catalog.NewService(repos.Catalog(), opts.Cache, log)
	petsSvc := pets.NewService(repos.Pets(), catalogSvc, log)
	tasksSvc := tasks.NewService(repos.Tasks(), repos.TaskTemplates(), catalogSvc, petsSvc, log)
	vaccinesSvc := vaccines.NewService(repos.Vaccines(), catalogSvc, petsSvc, tasksSvc, log)
	profilesSvc := profiles.NewService(repos.Profiles(), log)

	// El generador necesita a vaccines y pets necesita al generador: el
	// ciclo de construcción se corta seteando el seeder al final.
	gen := defaults.NewGenerator(tasksSvc, catalogSvc, tasksSvc, vaccinesSvc, log)
	petsSvc.SetSeeder(gen)

	// Rutas por módulo
	catalog.RegisterRoutes(r, catalogSvc)
	pets.RegisterRoutes(r, petsSvc, opts.Media)
	tasks.RegisterRoutes(r, tasksSvc)
	vaccines.RegisterRoutes(r, vaccinesSvc, petsSvc)
	profiles.RegisterRoutes(r, profilesSvc)

	registerAuthRoutes(r, opts.Sessions, log)

	return r
}
