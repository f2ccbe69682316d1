package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"pet-care-tracker/internal/adapters/auth/gotrue"
	"pet-care-tracker/internal/adapters/cache/rediscache"
	"pet-care-tracker/internal/adapters/media/s3store"
	"pet-care-tracker/internal/adapters/storage"
	mem "pet-care-tracker/internal/adapters/storage/memory"
	pg "pet-care-tracker/internal/adapters/storage/postgres"
	"pet-care-tracker/internal/domain/catalog"
	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/profiles"
	"pet-care-tracker/internal/platform/logger"
	"pet-care-tracker/internal/ports/auth"
	"pet-care-tracker/internal/router"
	"pet-care-tracker/internal/session"

	"github.com/redis/go-redis/v9"
)

func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	ctx := context.Background()

	// Storage: postgres con DSN, in-memory con seed si no
	var repos storage.Repositories
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		db, err := pg.Open(dsn)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		defer db.Close()

		if err := pg.RunMigrations(ctx, db); err != nil {
			log.Error("migrations failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		repos = pg.NewManager(db)
		log.Info("storage: postgres", nil)
	} else {
		repos = mem.NewManagerWithDefaults()
		log.Info("storage: in-memory (dev)", nil)
	}

	// Cache del catálogo (opcional)
	var cache catalog.Cache
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		cache = rediscache.New(rdb, "pct:", 10*time.Minute)
		log.Info("catalog cache: redis", map[string]any{"addr": redisAddr})
	}

	// Media para fotos de mascotas (opcional)
	var media pets.MediaStore
	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		store, err := s3store.New(ctx, s3store.Config{
			Region:        envOr("S3_REGION", "us-east-1"),
			Endpoint:      os.Getenv("S3_ENDPOINT"),
			AccessKey:     os.Getenv("S3_ACCESS_KEY"),
			SecretKey:     os.Getenv("S3_SECRET_KEY"),
			Bucket:        bucket,
			PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
		})
		if err != nil {
			log.Error("s3 media store failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		media = store
		log.Info("media: s3", map[string]any{"bucket": bucket})
	}

	// Auth hosteado (opcional: sin AUTH_URL corre en modo dev)
	var verifier auth.AuthVerifier
	var sessions auth.SessionClient
	var holder *session.Holder
	if authURL := os.Getenv("AUTH_URL"); authURL != "" {
		client, err := gotrue.NewClient(gotrue.Config{
			BaseURL:    authURL,
			AnonKey:    os.Getenv("AUTH_ANON_KEY"),
			ServiceKey: os.Getenv("AUTH_SERVICE_KEY"),
		})
		if err != nil {
			log.Error("auth client failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		verifier = gotrue.NewVerifier(client)
		sessions = client

		profilesSvc := profiles.NewService(repos.Profiles(), log)
		holder = session.NewHolder(client, profilesSvc, log)
		if err := holder.Start(ctx); err != nil {
			log.Warn("session holder start failed", map[string]any{"err": err.Error()})
		}
		defer holder.Close()
		log.Info("auth: gotrue", map[string]any{"url": authURL})
	} else {
		log.Warn("auth not configured, dev identity via X-Debug-User-ID", nil)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Sessions:     sessions,
		Repos:        repos,
		Cache:        cache,
		Media:        media,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
