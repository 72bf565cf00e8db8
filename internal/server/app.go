// Package server initializes and runs the Artstore reference backend: an
// in-memory storefront behind the REST API, with photo uploads presigned
// against an S3-compatible store. It handles graceful shutdown on
// SIGINT/SIGTERM/SIGQUIT.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/artstore/internal/logging"
	"github.com/dmitrijs2005/artstore/internal/server/config"
	"github.com/dmitrijs2005/artstore/internal/server/httpapi"
	"github.com/dmitrijs2005/artstore/internal/server/repositories/artworks"
	"github.com/dmitrijs2005/artstore/internal/server/repositories/users"
	"github.com/dmitrijs2005/artstore/internal/server/services"
	"github.com/gin-gonic/gin"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	store     *services.StoreService
	presigner services.Presigner
}

func NewApp(c *config.Config) (*App, error) {

	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := logging.NewJSONSlogLogger(os.Stdout, level)

	artworkRepo := artworks.NewMemoryRepository()
	if c.SeedCatalog {
		if err := artworks.Seed(context.Background(), artworkRepo, artworks.DemoCatalog()); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
	}

	store := services.NewStoreService(users.NewMemoryRepository(), artworkRepo)

	return &App{
		config:    c,
		logger:    logger,
		store:     store,
		presigner: services.NewPresignService(c),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.store, app.presigner)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a termination signal arrives or ctx is cancelled.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(ctx, "App stopped")
}
