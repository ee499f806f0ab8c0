package store

import (
	"database/sql"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/bitmark-inc/hub/fault"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate applies every pending migration in store/migrations to the
// database reachable through db (a *sql.DB opened with the pgx stdlib
// driver), bringing sweeps and sweep_tails up to date before the
// gateway is used.
func Migrate(db *sql.DB) error {
	source, err := iofs.New(migrationFiles, "migrations")
	if nil != err {
		return fault.ErrMigrationFailed
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if nil != err {
		return fault.ErrMigrationFailed
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if nil != err {
		return fault.ErrMigrationFailed
	}

	if err := m.Up(); nil != err && !errors.Is(err, migrate.ErrNoChange) {
		return fault.ErrMigrationFailed
	}
	return nil
}
