// Comando administrativo: crea (o asegura) un usuario de prueba en el
// servicio de auth y deja armado su perfil. Pensado para entornos de dev.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"pet-care-tracker/internal/adapters/auth/gotrue"
	mem "pet-care-tracker/internal/adapters/storage/memory"
	pg "pet-care-tracker/internal/adapters/storage/postgres"
	"pet-care-tracker/internal/domain/profiles"
	"pet-care-tracker/internal/platform/logger"
)

func main() {
	log := logger.NewFromEnv()

	email := flag.String("email", "testuser@example.com", "email del usuario de prueba")
	password := flag.String("password", "pet12345", "password del usuario de prueba")
	name := flag.String("name", "Test User", "nombre para el perfil")
	flag.Parse()

	authURL := os.Getenv("AUTH_URL")
	serviceKey := os.Getenv("AUTH_SERVICE_KEY")
	if authURL == "" || serviceKey == "" {
		log.Error("AUTH_URL and AUTH_SERVICE_KEY are required", nil)
		os.Exit(1)
	}

	client, err := gotrue.NewClient(gotrue.Config{
		BaseURL:    authURL,
		AnonKey:    os.Getenv("AUTH_ANON_KEY"),
		ServiceKey: serviceKey,
	})
	if err != nil {
		log.Error("auth client failed", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := client.AdminCreateUser(ctx, *email, *password, map[string]any{
		"full_name": *name,
	})
	if err != nil {
		log.Error("create user failed", map[string]any{"email": *email, "err": err.Error()})
		os.Exit(1)
	}
	log.Info("user created", map[string]any{"id": user.ID, "email": user.Email})

	// El perfil se escribe directo al storage (con DSN a postgres; sin DSN
	// queda en un backend en memoria que solo sirve para probar el flujo).
	var repo profiles.Repository
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		db, err := pg.Open(dsn)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		repo = pg.NewProfilesRepo(db)
	} else {
		log.Warn("DB_DSN not set, profile written to throwaway in-memory store", nil)
		repo = mem.NewManager().Profiles()
	}

	svc := profiles.NewService(repo, log)
	p, err := svc.Upsert(ctx, profiles.Profile{
		ID:   user.ID,
		Name: *name,
	})
	if err != nil {
		log.Error("profile upsert failed", map[string]any{"user_id": user.ID, "err": err.Error()})
		os.Exit(1)
	}

	log.Info("profile ready", map[string]any{"id": p.ID, "name": p.Name})
}
