package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"scribe/internal/database/repositories"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type sqlService struct {
	db      *sql.DB
	dialect repositories.Dialect
	users   repositories.UserRepository
	notes   repositories.NoteRepository
}

func openPostgres(ctx context.Context, dsn string) (Service, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	return newSQLService(ctx, db, repositories.Postgres)
}

// openSQLite accepts a plain file path or a "file:" URI. The pool is limited
// to one connection so writers never see "database is locked".
func openSQLite(ctx context.Context, path string) (Service, error) {
	if path == "" {
		path = "scribe.db"
	}
	dsn := path
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	dsn += sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	return newSQLService(ctx, db, repositories.SQLite)
}

func newSQLService(ctx context.Context, db *sql.DB, dialect repositories.Dialect) (Service, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}
	if err := runMigrations(db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqlService{
		db:      db,
		dialect: dialect,
		users:   repositories.NewUserRepository(db, dialect),
		notes:   repositories.NewNoteRepository(db, dialect),
	}, nil
}

func (s *sqlService) Users() repositories.UserRepository { return s.users }

func (s *sqlService) Notes() repositories.NoteRepository { return s.notes }

// Health pings the database and reports pool statistics.
func (s *sqlService) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	stats := map[string]string{"driver": s.dialect.String()}

	if err := s.db.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := s.db.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()
	stats["max_idle_closed"] = strconv.FormatInt(dbStats.MaxIdleClosed, 10)
	stats["max_lifetime_closed"] = strconv.FormatInt(dbStats.MaxLifetimeClosed, 10)

	if dbStats.OpenConnections > 40 {
		stats["message"] = "The database is experiencing heavy load."
	}
	if dbStats.WaitCount > 1000 {
		stats["message"] = "The database has a high number of wait events, indicating potential bottlenecks."
	}

	return stats
}

func (s *sqlService) Close(context.Context) error {
	return s.db.Close()
}
