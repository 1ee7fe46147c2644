package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"scribe/internal/database/repositories"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// runMigrations applies all pending migrations for the dialect. Already
// applied migrations are skipped, so it runs on every startup.
func runMigrations(db *sql.DB, dialect repositories.Dialect) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations/"+dialect.String())
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	var dbDriver migratedb.Driver
	switch dialect {
	case repositories.Postgres:
		dbDriver, err = migratepgx.WithInstance(db, &migratepgx.Config{})
	case repositories.SQLite:
		dbDriver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	default:
		err = fmt.Errorf("no migration driver for %s", dialect)
	}
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, dialect.String(), dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
