package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"scribe/internal/config"
	"scribe/internal/database"
	"scribe/internal/logging"
	"scribe/internal/server"
)

func gracefulShutdown(fiberServer *server.FiberServer, db database.Service, logger logging.Logger, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info(context.Background(), "shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fiberServer.ShutdownWithContext(ctx); err != nil {
		logger.Error(ctx, "server forced to shutdown", "error", err)
	}
	if err := db.Close(ctx); err != nil {
		logger.Error(ctx, "close database", "error", err)
	}

	logger.Info(ctx, "server exiting")
	done <- true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.Env, cfg.LogLevel)
	ctx := context.Background()
	logger.Info(ctx, "configuration loaded", "config", cfg.String())

	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		logger.Error(ctx, "open database", "error", err)
		log.Fatal(err)
	}

	srv, err := server.New(cfg, db, logger)
	if err != nil {
		logger.Error(ctx, "build server", "error", err)
		log.Fatal(err)
	}
	srv.RegisterFiberRoutes()

	done := make(chan bool, 1)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info(ctx, "http server listening", "addr", addr)
		if err := srv.Listen(addr); err != nil {
			panic(fmt.Sprintf("http server error: %s", err))
		}
	}()

	go gracefulShutdown(srv, db, logger, done)

	<-done
	logger.Info(ctx, "graceful shutdown complete")
}
