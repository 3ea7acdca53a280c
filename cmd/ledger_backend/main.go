package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/pfmgr/portfolio_ledger_app/internal/core/services"
	"github.com/pfmgr/portfolio_ledger_app/internal/handlers"
	"github.com/pfmgr/portfolio_ledger_app/internal/middleware"
	"github.com/pfmgr/portfolio_ledger_app/internal/platform/config"
	"github.com/pfmgr/portfolio_ledger_app/internal/repositories/database/sqlite"
	"github.com/pfmgr/portfolio_ledger_app/pkg/database"
)

// @title Portfolio Ledger Backend API
// @version 1.0
// @description Double-entry trade ledger for the portfolio manager.

// @host localhost:8080
// @BasePath /
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := database.NewSQLiteDB(cfg.SQLitePath)
	if err != nil {
		logger.Error("Failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.CloseSQLiteDB(db)

	// --- Run Database Migrations ---
	logger.Info("Running database migrations...")
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		logger.Error("Could not create sqlite driver instance for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "sqlite3", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Apply all available "up" migrations
	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	// --- End Database Migrations ---

	repos := sqlite.NewRepositoryProvider(db)
	serviceContainer := services.NewServiceContainer(repos, cfg)

	// Replay any pre-ledger transactions table into the double-entry model
	migrated, err := serviceContainer.LegacyMigration.MigrateLegacyTransactions(context.Background())
	if err != nil {
		logger.Error("Legacy transaction migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if migrated > 0 {
		logger.Info("Legacy transactions migrated", slog.Int("count", migrated))
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
