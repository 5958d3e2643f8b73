// Package app wires the configuration, the model artifact, the
// observation database, the scoring engine, and the REST controller
// into a running service.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/wdvr/snowscore/internal/controllers/restserver"
	"github.com/wdvr/snowscore/internal/database"
	"github.com/wdvr/snowscore/internal/log"
	"github.com/wdvr/snowscore/internal/scoring"
	"github.com/wdvr/snowscore/pkg/config"
	"github.com/wdvr/snowscore/pkg/model"
)

// App represents the main application
type App struct {
	configProvider config.ConfigProvider
	logger         *zap.SugaredLogger
}

// New creates a new application instance
func New(configProvider config.ConfigProvider, logger *zap.SugaredLogger) *App {
	return &App{
		configProvider: configProvider,
		logger:         logger,
	}
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := a.configProvider.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	// The model artifact is required; a missing or malformed artifact
	// is fatal since scoring cannot proceed at all.
	artifact, err := model.Load(cfg.Model.Path)
	if err != nil {
		return fmt.Errorf("error loading model artifact: %w", err)
	}
	a.logger.Infof("loaded model artifact version %s from %s", artifact.Version, cfg.Model.Path)

	if cfg.Database == nil {
		return fmt.Errorf("observation database must be configured")
	}
	db := database.NewClient(cfg.Database.ConnectionString, a.logger)
	if err := db.Connect(); err != nil {
		return fmt.Errorf("error connecting to observation database: %w", err)
	}

	engine := scoring.NewEngine(artifact.Stats, artifact.Weights, a.logger)

	httpConfig := config.HTTPData{Port: 8080}
	if cfg.HTTP != nil {
		httpConfig = *cfg.HTTP
	}
	rest, err := restserver.NewController(ctx, &wg, a.configProvider, httpConfig, db, engine, a.logger)
	if err != nil {
		return fmt.Errorf("error creating REST controller: %w", err)
	}
	if err := rest.Start(); err != nil {
		return fmt.Errorf("error starting REST controller: %w", err)
	}

	log.Info("Application started successfully")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	// Cancel context to signal all goroutines to stop
	cancel()

	// Wait for all workers to terminate
	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
