// Command api runs the placement analytics REST API: filtered dashboard
// aggregations backed by PostgreSQL, a best-effort Redis response cache,
// and the tabular upload pipeline.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spj-hub/placement-analytics/config"
	"github.com/spj-hub/placement-analytics/internal/application/command"
	"github.com/spj-hub/placement-analytics/internal/application/query"
	"github.com/spj-hub/placement-analytics/internal/infrastructure/persistence/postgres"
	"github.com/spj-hub/placement-analytics/internal/infrastructure/persistence/redis"
	"github.com/spj-hub/placement-analytics/internal/infrastructure/scheduler"
	"github.com/spj-hub/placement-analytics/internal/infrastructure/tabular"
	httpx "github.com/spj-hub/placement-analytics/internal/interface/http"
	"github.com/spj-hub/placement-analytics/pkg/circuitbreaker"
	"github.com/spj-hub/placement-analytics/pkg/logger"
	"github.com/spj-hub/placement-analytics/pkg/retry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Default().Fatal("failed to load configuration", logger.Err(err))
	}

	log := logger.New(logger.Options{
		Output:    os.Stdout,
		Level:     logger.ParseLevel(cfg.Observability.LogLevel),
		AddCaller: true,
	})

	log.Info("starting placement analytics service",
		logger.String("version", cfg.App.Version),
		logger.String("environment", string(cfg.App.Environment)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ─────────────────────────────────────────────────────────────────────────
	// PostgreSQL
	// ─────────────────────────────────────────────────────────────────────────
	conn, err := connectDatabase(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", logger.Err(err))
	}
	defer conn.Close()

	if cfg.Database.Migrate {
		if err := postgres.NewMigrator(conn).Migrate(ctx); err != nil {
			log.Fatal("failed to apply migrations", logger.Err(err))
		}
		log.Info("database migrations applied")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// Redis (optional)
	// ─────────────────────────────────────────────────────────────────────────
	cache := connectCache(ctx, cfg, log)
	if cache != nil {
		defer cache.Close()
	}

	// A typed nil must not end up inside a non-nil interface value, so the
	// interface wiring only happens when the cache actually exists.
	var (
		responseCache query.Cache
		invalidator   command.Invalidator
		cacheHealth   httpx.HealthChecker
	)
	if cache != nil {
		responseCache = cache
		invalidator = cache
		cacheHealth = cache
	}

	// ─────────────────────────────────────────────────────────────────────────
	// Repositories and use cases
	// ─────────────────────────────────────────────────────────────────────────
	analyticsRepo := postgres.NewAnalyticsRepository(conn)
	cohortRepo := postgres.NewCohortRepository(conn)
	ingestRepo := postgres.NewIngestRepository(conn)

	deps := httpx.Dependencies{
		GetOverviewHandler:        query.NewGetOverviewHandler(analyticsRepo, responseCache, log),
		GetTutorAnalyticsHandler:  query.NewGetTutorAnalyticsHandler(analyticsRepo, responseCache, log),
		GetMentorAnalyticsHandler: query.NewGetMentorAnalyticsHandler(analyticsRepo, responseCache, log),
		GetJptAnalyticsHandler:    query.NewGetJptAnalyticsHandler(analyticsRepo, responseCache, log),
		ListCohortsHandler:        query.NewListCohortsHandler(cohortRepo, log),
		GetCohortHandler:          query.NewGetCohortHandler(cohortRepo, log),
		GetCohortStatsHandler:     query.NewGetCohortStatsHandler(cohortRepo, log),
		ListPlacementsHandler:     query.NewListPlacementsHandler(cohortRepo, log),
		IngestUploadHandler: command.NewIngestUploadHandler(
			ingestRepo, tabular.Parse, invalidator, redis.PrefixAnalytics, log),
		Logger:   log,
		Database: conn,
		Cache:    cacheHealth,
	}

	// ─────────────────────────────────────────────────────────────────────────
	// HTTP server
	// ─────────────────────────────────────────────────────────────────────────
	server := httpx.NewServer(httpx.Config{
		Host:               cfg.HTTP.Host,
		Port:               cfg.HTTP.Port,
		ReadTimeout:        cfg.HTTP.ReadTimeout,
		WriteTimeout:       cfg.HTTP.WriteTimeout,
		IdleTimeout:        cfg.HTTP.IdleTimeout,
		MaxHeaderBytes:     1 << 20,
		AllowedOrigins:     cfg.HTTP.AllowedOrigins,
		RateLimitPerMinute: cfg.HTTP.RateLimitPerMinute,
		APIKey:             cfg.HTTP.APIKey,
		UploadDir:          cfg.Upload.Dir,
		TemplateDir:        cfg.Upload.TemplateDir,
		MaxUploadBytes:     cfg.Upload.MaxFileSize,
		ExposeErrors:       !cfg.IsProduction(),
		Version:            cfg.App.Version,
	}, deps)

	// ─────────────────────────────────────────────────────────────────────────
	// Scheduler
	// ─────────────────────────────────────────────────────────────────────────
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New(log, cfg.Scheduler.JobTimeout)
		sched.Register(
			scheduler.NewSweepUploadsJob(cfg.Upload.Dir, cfg.Scheduler.SweepMaxAge, log),
			cfg.Scheduler.SweepInterval,
		)
		sched.Start(ctx)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// Run until signalled
	// ─────────────────────────────────────────────────────────────────────────
	errCh := server.StartAsync()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", logger.Err(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", logger.Err(err))
	}
	if sched != nil {
		sched.Stop()
	}

	log.Info("service stopped")
}

// connectDatabase establishes the pool with startup retries. The service
// commonly races the orchestrator bringing PostgreSQL up.
func connectDatabase(ctx context.Context, cfg *config.Config, log *logger.Logger) (*postgres.Connection, error) {
	retrier := retry.StartupRetrier(cfg.Database.ConnectRetries, cfg.Database.ConnectRetryDelay)

	var conn *postgres.Connection
	err := retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		conn, err = postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
		if err != nil {
			log.Warn("database connection attempt failed", logger.Err(err))
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info("connected to database")
	return conn, nil
}

// connectCache connects to Redis behind a circuit breaker. The cache is
// best-effort, so a missing or unreachable Redis only logs a warning and
// the service runs uncached.
func connectCache(ctx context.Context, cfg *config.Config, log *logger.Logger) *redis.Cache {
	if cfg.Redis.Disabled {
		log.Info("redis disabled, running without response cache")
		return nil
	}

	breaker := circuitbreaker.CacheBreaker(func(name string, from, to circuitbreaker.State) {
		log.Warn("circuit breaker state changed",
			logger.String("breaker", name),
			logger.String("from", from.String()),
			logger.String("to", to.String()))
	})

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cache, err := redis.NewCache(connectCtx, redis.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   3,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	}, breaker)
	if err != nil {
		log.Warn("redis unavailable, running without response cache", logger.Err(err))
		return nil
	}

	log.Info("connected to redis")
	return cache
}
