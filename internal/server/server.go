package server

import (
	"scribe/internal/auth"
	"scribe/internal/config"
	"scribe/internal/database"
	"scribe/internal/logging"
	"scribe/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type FiberServer struct {
	*fiber.App

	db            database.Service
	log           logging.Logger
	tokens        *auth.TokenService
	authenticator *auth.Authenticator
	auth          *services.AuthService
	notes         *services.NoteService
}

// New wires the HTTP layer on top of an open database. Routes are added by
// RegisterFiberRoutes.
func New(cfg *config.Config, db database.Service, log logging.Logger) (*FiberServer, error) {
	tokens := auth.NewTokenService([]byte(cfg.Auth.JWTSecret), cfg.Auth.AccessTokenTTL)
	authService, err := services.NewAuthService(db.Users(), tokens, cfg.Auth.AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	server := &FiberServer{
		App: fiber.New(fiber.Config{
			ServerHeader: "scribe",
			AppName:      "scribe",
			ErrorHandler: errorHandler(log),
		}),
		db:            db,
		log:           log,
		tokens:        tokens,
		authenticator: auth.NewAuthenticator(tokens, db.Users()),
		auth:          authService,
		notes:         services.NewNoteService(db.Notes()),
	}
	server.App.Use(recover.New())
	server.App.Use(favicon.New())
	server.App.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		MaxAge:       3600,
	}))
	server.App.Use(logger.New())
	if cfg.Env == "local" {
		server.App.Use(pprof.New())
	}
	return server, nil
}
