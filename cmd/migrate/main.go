// Comando administrativo: corre las migraciones embebidas contra la base
// apuntada por DB_DSN. Subcomandos: up (default), down, status.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	pg "pet-care-tracker/internal/adapters/storage/postgres"
	"pet-care-tracker/internal/platform/logger"
)

func main() {
	log := logger.NewFromEnv()
	flag.Parse()

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "up"
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Error("DB_DSN is required", nil)
		os.Exit(1)
	}

	db, err := pg.Open(dsn)
	if err != nil {
		log.Error("postgres open failed", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch cmd {
	case "up":
		err = pg.RunMigrations(ctx, db)
	case "down":
		err = pg.RollbackMigration(ctx, db)
	case "status":
		err = pg.MigrationStatus(ctx, db)
	default:
		log.Error("unknown command, want up|down|status", map[string]any{"cmd": cmd})
		os.Exit(2)
	}
	if err != nil {
		log.Error("migration command failed", map[string]any{"cmd": cmd, "err": err.Error()})
		os.Exit(1)
	}

	log.Info("migration command done", map[string]any{"cmd": cmd})
}
