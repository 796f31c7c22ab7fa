package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/festarent/rental_mgmt_app/internal/core/services"
	"github.com/festarent/rental_mgmt_app/internal/handlers"
	"github.com/festarent/rental_mgmt_app/internal/middleware"
	"github.com/festarent/rental_mgmt_app/internal/platform/events"
	"github.com/festarent/rental_mgmt_app/internal/repositories/database/pgsql"
	"github.com/festarent/rental_mgmt_app/pkg/config"
	"github.com/festarent/rental_mgmt_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// @title Rental Management Backend API
// @version 1.0
// @description Reservation lifecycle and payment reconciliation backend.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.Use(middleware.RateLimit(buildRateLimiter(cfg, logger)))

	// Event publisher: enabled only when a broker is configured
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.AMQPURL != "" {
		publisher = events.NewAMQPPublisher(cfg.AMQPURL, logger)
		logger.Info("Lifecycle event publishing enabled")
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(repos, publisher, nil)

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations from the migrations
// directory over a temporary database/sql connection.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// buildRateLimiter prefers a Redis-backed store so limits hold across
// replicas; without REDIS_ADDR it falls back to an in-memory store.
func buildRateLimiter(cfg *config.Config, logger *slog.Logger) *limiter.Limiter {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Warn("Invalid RATE_LIMIT, defaulting to 300-M", slog.String("value", cfg.RateLimit))
		rate, _ = limiter.NewRateFromFormatted("300-M")
	}

	if cfg.RedisAddr != "" {
		client, err := database.NewRedisClient(context.Background(), cfg.RedisAddr)
		if err == nil {
			store, err := redisstore.NewStore(client)
			if err == nil {
				return limiter.New(store, rate)
			}
			logger.Warn("Failed to create redis limiter store, using memory store", slog.String("error", err.Error()))
		} else {
			logger.Warn("Failed to connect to redis, using memory limiter store", slog.String("error", err.Error()))
		}
	}

	return limiter.New(memory.NewStore(), rate)
}
