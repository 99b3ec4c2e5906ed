package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/gormstore"
	"github.com/gokatarajesh/trivia-api/internal/db/models"
	"github.com/gokatarajesh/trivia-api/internal/db/pgstore"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/server"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// Store is what the repositories need from a backend.
type Store interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (models.Category, error)
	ListQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
	CountQuestions(ctx context.Context) (int64, error)
	InsertQuestion(ctx context.Context, arg models.InsertQuestionParams) (models.Question, error)
	DeleteQuestion(ctx context.Context, id int64) error
}

// Application aggregates shared infrastructure (store, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	http    *http.Server
	warmer  *trivia.CacheWarmer
	closers []func()
}

// New bootstraps the logger, store backend, optional Redis cache and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Str("store", cfg.Store.Driver).Msg("starting application bootstrap")

	a := &Application{cfg: cfg, logger: logger}

	backend, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, backend.Close)
	store := backend.Store
	deps := []server.Dependency{{Name: backend.Name, Ping: backend.Ping}}

	var cache trivia.CategoryCache
	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		a.closers = append(a.closers, func() {
			if err := redisClient.Close(); err != nil {
				logger.Error().Err(err).Msg("redis shutdown error")
			}
		})
		cache = trivia.NewCache(redisClient, cfg.Redis.CacheTTL)
		deps = append(deps, server.Dependency{
			Name: "redis",
			Ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("category cache enabled")
	} else {
		logger.Warn().Msg("REDIS_ADDR not configured; category cache disabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	triviaSvc := trivia.NewService(
		repository.NewQuestionRepository(store),
		repository.NewCategoryRepository(store),
		trivia.ServiceOptions{
			Cache:                  cache,
			Metrics:                trivia.NewMetrics(reg),
			LenientCurrentCategory: cfg.Trivia.LenientCurrentCategory,
		},
	)

	if cache != nil {
		a.warmer = trivia.NewCacheWarmer(triviaSvc, cfg.Redis.WarmInterval, logger)
	}

	a.http = server.NewHTTPServer(cfg, logger, reg, deps, trivia.NewHTTPHandler(triviaSvc))
	return a, nil
}

// Backend is an opened store together with its health check and cleanup.
type Backend struct {
	Store Store
	Name  string
	Ping  func(ctx context.Context) error
	Close func()
}

// OpenStore connects the store selected by cfg.Store.Driver. An empty sqlite
// store is seeded when cfg.Store.Seed is set.
func OpenStore(ctx context.Context, cfg *config.App, logger zerolog.Logger) (*Backend, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		poolCfg, err := pgxpool.ParseConfig(cfg.Postgres.DSN())
		if err != nil {
			return nil, fmt.Errorf("parse postgres config: %w", err)
		}
		poolCfg.MaxConns = int32(cfg.Postgres.MaxConns)
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &Backend{Store: pgstore.New(pool), Name: config.DriverPostgres, Ping: pool.Ping, Close: pool.Close}, nil

	case config.DriverSQLite:
		store, err := gormstore.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		closeStore := func() {
			if err := store.Close(); err != nil {
				logger.Error().Err(err).Msg("sqlite shutdown error")
			}
		}
		if cfg.Store.Seed {
			seeded, err := store.Seed(ctx)
			if err != nil {
				closeStore()
				return nil, err
			}
			if seeded {
				logger.Info().Msg("sqlite store seeded with bundled questions")
			}
		}
		return &Backend{Store: store, Name: config.DriverSQLite, Ping: store.Ping, Close: closeStore}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	if a.warmer != nil {
		go func() {
			_ = a.warmer.Run(logging.IntoContext(workerCtx, a.logger))
		}()
	}

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}
	stopWorkers()
	a.close()

	a.logger.Info().Msg("shutdown complete")
	return runErr
}

func (a *Application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// Handler exposes the routed HTTP handler.
func (a *Application) Handler() http.Handler {
	return a.http.Handler
}
