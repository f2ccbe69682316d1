package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pet-care-tracker/internal/adapters/storage/postgres/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

var ErrNotFound = errors.New("not found")

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables (ajustable luego)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// RunMigrations aplica las migraciones embebidas (esquema + seed del
// catálogo) con goose.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	if err := prepareGoose(); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// RollbackMigration deshace la última migración aplicada.
func RollbackMigration(ctx context.Context, db *sql.DB) error {
	if err := prepareGoose(); err != nil {
		return err
	}
	return goose.DownContext(ctx, db, ".")
}

// MigrationStatus imprime el estado de cada migración embebida.
func MigrationStatus(ctx context.Context, db *sql.DB) error {
	if err := prepareGoose(); err != nil {
		return err
	}
	return goose.StatusContext(ctx, db, ".")
}

func prepareGoose() error {
	goose.SetBaseFS(migrations.Migrations)
	return goose.SetDialect("pgx")
}
