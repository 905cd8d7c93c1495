// Package main is the entry point for the GastOn expense tracker API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitlab.com/gastonapp/gaston-api/internal/config"
	"gitlab.com/gastonapp/gaston-api/internal/database"
	"gitlab.com/gastonapp/gaston-api/internal/logger"
	"gitlab.com/gastonapp/gaston-api/internal/reports"
	"gitlab.com/gastonapp/gaston-api/internal/repository"
	"gitlab.com/gastonapp/gaston-api/internal/server"
	"gitlab.com/gastonapp/gaston-api/internal/service"
	"gitlab.com/gastonapp/gaston-api/internal/telemetry"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("gaston-api %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.SetLevel(cfg.LogLevel)

	tel, err := telemetry.Setup(ctx, cfg, version)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to set up telemetry")
	}
	defer tel.Shutdown(context.Background())

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	if err := database.SeedCategories(ctx, pool); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to seed categories")
	}

	logger.Log.Info().Msg("Database initialized successfully")

	categoryRepo := repository.NewCategoryRepository(pool)
	nameRepo := repository.NewExpenseNameRepository(pool)
	expenseRepo := repository.NewExpenseRepository(pool)

	engine := reports.NewEngine(expenseRepo, reports.Options{
		RecentLimit: cfg.DashboardRecentLimit,
		RecentDays:  cfg.DashboardRecentDays,
	})

	srv := server.New(cfg, server.Deps{
		Pool:       pool,
		Engine:     engine,
		Store:      expenseRepo,
		Categories: service.NewCategoryService(categoryRepo),
		Names:      service.NewExpenseNameService(nameRepo, categoryRepo),
		Expenses:   service.NewExpenseService(expenseRepo, categoryRepo, nameRepo, nil),
	})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Log.Info().Msg("Shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error().Err(err).Msg("Failed to shut down server")
		}
		cancel()
	}()

	logger.Log.Info().Str("port", cfg.Port).Msg("Starting HTTP server")
	if err := srv.Listen(); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server stopped")
	}
}
