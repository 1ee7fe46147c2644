package database

import (
	"context"
	"fmt"

	"scribe/internal/config"
	"scribe/internal/database/repositories"
)

// Service represents a connected storage backend. It is created once at
// startup, handed to the components that need it and closed on shutdown.
type Service interface {
	// Users returns the credential store.
	Users() repositories.UserRepository

	// Notes returns the note store.
	Notes() repositories.NoteRepository

	// Health returns a map of health status information.
	// The "status" key is "up" or "down"; other keys are backend-specific.
	Health(ctx context.Context) map[string]string

	// Close terminates the database connection.
	Close(ctx context.Context) error
}

// New connects to the backend selected by cfg.Driver and brings its schema up
// to date.
func New(ctx context.Context, cfg config.Database) (Service, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.PostgresDSN())
	case config.DriverSQLite:
		return openSQLite(ctx, cfg.SQLitePath)
	case config.DriverMongo:
		return openMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
