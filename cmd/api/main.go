package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quickbite/internal/catalog"
	"quickbite/internal/config"
	"quickbite/internal/database"
	"quickbite/internal/handler"
	"quickbite/internal/model"
	"quickbite/internal/repository"
	"quickbite/internal/router"
	"quickbite/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting QuickBite API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the recipe catalogue, preferring S3 when it is enabled
	recipes, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load recipe catalog: %w", err)
	}

	// Initialize repositories
	recipeRepo := repository.NewRecipeRepository(recipes, logger)
	mealPlanRepo, closeStore, err := openMealPlanStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize meal plan store: %w", err)
	}
	defer closeStore.Close()

	// Initialize services
	recipeService := service.NewRecipeService(recipeRepo, logger)
	mealPlanService := service.NewMealPlanService(mealPlanRepo, logger)

	// Initialize HTTP handlers
	recipeHandler := handler.NewRecipeHandler(recipeService, logger)
	mealPlanHandler := handler.NewMealPlanHandler(mealPlanService, logger)
	healthHandler := handler.NewHealthHandler(logger)

	// Initialize router
	mux := router.New(recipeHandler, mealPlanHandler, healthHandler, router.Options{
		AllowedOrigin: cfg.CORS.AllowedOrigin,
		StaticDir:     cfg.Static.Dir,
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Int("recipes", len(recipes)).
			Str("store", cfg.Store.Driver).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// loadCatalog reads every configured catalogue source. With S3 enabled each
// source is tried in the bucket first and falls back to the local file.
func loadCatalog(ctx context.Context, cfg *config.Config, logger zerolog.Logger) ([]model.Recipe, error) {
	fileLoader := catalog.NewFileLoader(logger)

	var s3Loader catalog.Loader
	if cfg.S3.Enabled {
		l, err := catalog.NewS3Loader(ctx, cfg.S3, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = l
		}
	} else {
		logger.Info().Msg("using local file system for catalog files (S3 disabled)")
	}

	loader := catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)
	return catalog.LoadAll(ctx, loader, cfg.Catalog.Paths, logger)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// openMealPlanStore builds the meal plan repository for the configured driver.
// The returned closer releases its connections.
func openMealPlanStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.MealPlanRepository, io.Closer, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := repository.EnsureMealPlanSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		closer := closerFunc(func() error {
			pool.Close()
			return nil
		})
		return repository.NewPostgresMealPlanRepository(pool, logger), closer, nil

	case config.StoreMongo:
		db, err := database.ConnectMongo(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, nil, err
		}
		closer := closerFunc(func() error { return database.DisconnectMongo(db) })
		return repository.NewMongoMealPlanRepository(db, logger), closer, nil

	default:
		logger.Info().Msg("using in-memory meal plan store, plans are lost on restart")
		return repository.NewMemoryMealPlanRepository(nil, logger), closerFunc(func() error { return nil }), nil
	}
}
