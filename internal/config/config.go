package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported storage backends.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverSQLite   = "sqlite"
)

const devJWTSecret = "dev-secret-change-me"

// Config holds all application configuration.
type Config struct {
	Env      string // "local" enables dev defaults and text logs; must be set explicitly
	Port     int
	LogLevel string
	Database Database
	Auth     Auth
	CORS     CORS
}

// Database selects and configures the storage backend.
type Database struct {
	Driver string

	// postgres
	URL      string // full DSN, overrides the parts below
	Host     string
	Port     string
	Name     string
	Username string
	Password string
	Schema   string

	// mongo
	MongoURI      string
	MongoDatabase string

	// sqlite
	SQLitePath string
}

// Auth contains token settings.
type Auth struct {
	JWTSecret      string
	AccessTokenTTL time.Duration
}

type CORS struct {
	AllowOrigins string
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	ttlMinutes, err := getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:      getEnv("APP_ENV", "production"),
		Port:     port,
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Database: Database{
			Driver:        strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			URL:           getEnv("DB_URL", ""),
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnv("DB_PORT", "5432"),
			Name:          getEnv("DB_DATABASE", "scribe"),
			Username:      getEnv("DB_USERNAME", "postgres"),
			Password:      getEnv("DB_PASSWORD", "postgres"),
			Schema:        getEnv("DB_SCHEMA", "public"),
			MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDatabase: getEnv("MONGO_DATABASE", "scribe"),
			SQLitePath:    getEnv("SQLITE_PATH", "scribe.db"),
		},
		Auth: Auth{
			JWTSecret:      getEnv("JWT_SECRET", ""),
			AccessTokenTTL: time.Duration(ttlMinutes) * time.Minute,
		},
		CORS: CORS{
			AllowOrigins: getEnv("CORS_ORIGINS", "*"),
		},
	}

	if cfg.Auth.JWTSecret == "" && cfg.Env == "local" {
		cfg.Auth.JWTSecret = devJWTSecret
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMongo, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is not set; required outside APP_ENV=local")
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	return nil
}

// PostgresDSN returns URL when set, otherwise builds a DSN from the parts.
func (d Database) PostgresDSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.Username, d.Password),
		Host:   d.Host + ":" + d.Port,
		Path:   d.Name,
	}
	q := url.Values{}
	q.Set("sslmode", "disable")
	if d.Schema != "" {
		q.Set("search_path", d.Schema)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

// String returns a representation of the config with secrets masked.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Env: %s, Port: %d, DB: %s, JWT: *** (masked) ***, TokenTTL: %s}",
		c.Env, c.Port, c.Database.Driver, c.Auth.AccessTokenTTL)
}
