package database

import (
	"context"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"scribe/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestNew_SQLiteFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scribe.db")

	srv, err := New(ctx, config.Database{Driver: config.DriverSQLite, SQLitePath: path})
	require.NoError(t, err)

	stats := srv.Health(ctx)
	assert.Equal(t, "up", stats["status"])
	assert.Equal(t, "sqlite", stats["driver"])
	require.NoError(t, srv.Close(ctx))

	// Reopening applies no migrations and keeps the schema.
	srv, err = New(ctx, config.Database{Driver: config.DriverSQLite, SQLitePath: path})
	require.NoError(t, err)
	assert.Equal(t, "up", srv.Health(ctx)["status"])
	require.NoError(t, srv.Close(ctx))
}

func TestNew_SQLiteInMemory(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + url.PathEscape(t.Name()) + "?mode=memory&cache=shared"

	srv, err := New(ctx, config.Database{Driver: config.DriverSQLite, SQLitePath: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close(ctx) })

	assert.NotNil(t, srv.Users())
	assert.NotNil(t, srv.Notes())
}

func TestHealth_DownAfterClose(t *testing.T) {
	ctx := context.Background()
	srv, err := New(ctx, config.Database{Driver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	require.NoError(t, srv.Close(ctx))

	stats := srv.Health(ctx)
	assert.Equal(t, "down", stats["status"])
	assert.NotEmpty(t, stats["error"])
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(context.Background(), config.Database{Driver: "oracle"})
	assert.Error(t, err)
}

func TestNew_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("container test")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("scribe"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	srv, err := New(ctx, config.Database{Driver: config.DriverPostgres, URL: dsn})
	require.NoError(t, err)
	defer srv.Close(ctx)

	stats := srv.Health(ctx)
	assert.Equal(t, "up", stats["status"])
	assert.Equal(t, "It's healthy", stats["message"])
}

func TestNew_Mongo(t *testing.T) {
	if testing.Short() {
		t.Skip("container test")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	srv, err := New(ctx, config.Database{Driver: config.DriverMongo, MongoURI: uri, MongoDatabase: "scribe_test"})
	require.NoError(t, err)
	defer srv.Close(ctx)

	assert.Equal(t, "up", srv.Health(ctx)["status"])
}
