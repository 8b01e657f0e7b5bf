// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tienda-org/storefront/internal/config"
	"github.com/tienda-org/storefront/internal/infrastructure/database/postgres"
	"github.com/tienda-org/storefront/internal/infrastructure/database/redis"
	"github.com/tienda-org/storefront/internal/interfaces/http"
	"github.com/tienda-org/storefront/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr := logger.New(cfg)
	logr.Infof("starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	db, err := postgres.NewConnection(cfg, logr)
	if err != nil {
		logr.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := redis.NewConnection(cfg, logr)
	if err != nil {
		logr.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	migration := postgres.NewMigration(db.GetDB(), cfg, logr)

	if err := migration.RunAutoMigrations(); err != nil {
		logr.Fatalf("Database migration failed: %v", err)
	}

	if err := migration.CreateIndexes(); err != nil {
		logr.Warnf("Index creation failed: %v", err)
	}

	if err := migration.SeedInitialData(context.Background()); err != nil {
		logr.Warnf("Data seeding failed: %v", err)
	}

	server := http.NewServer(cfg, db.GetDB(), redisClient.GetClient(), logr)

	go func() {
		if err := server.Start(); err != nil {
			logr.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logr.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	logr.Info("server shutdown completed")
}
