package cmd

import (
	"context"
	"fmt"
	"time"

	"libraminds/api"
	"libraminds/config"
	"libraminds/database"
	"libraminds/domain/events"
	"libraminds/repository"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the policy engine and its HTTP adapter
func Run(ctx context.Context) error {
	log.Info("Starting libraminds...")

	cfg := config.Get()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	eventBus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	server := api.NewServer(cfg, uowFactory)

	log.WithField("environment", cfg.Environment).Info("Service is running")
	if err := server.Start(ctx); err != nil {
		db.Close()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}
