package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/config"
	"github.com/jonathan/candidate-screener/internal/db"
	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/lock"
	"github.com/jonathan/candidate-screener/internal/metrics"
	"github.com/jonathan/candidate-screener/internal/observability"
	"github.com/jonathan/candidate-screener/internal/pipeline"
	"github.com/jonathan/candidate-screener/internal/skills"
)

// application holds the wired collaborators for one command invocation
type application struct {
	cfg          *config.Config
	logger       *zap.Logger
	database     *db.DB
	metrics      *metrics.Collector
	orchestrator *pipeline.Orchestrator
	closers      []func()
}

// newLoggedConfig loads settings and builds the logger they describe
func newLoggedConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := observability.NewLogger(cfg.Debug, cfg.JSON)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, nil
}

// newApplication wires the orchestrator with Postgres and Redis when configured,
// and in-process stand-ins otherwise.
func newApplication(ctx context.Context) (*application, error) {
	cfg, logger, err := newLoggedConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}

	a := &application{cfg: cfg, logger: logger, metrics: metrics.NewCollector()}
	a.closers = append(a.closers, func() { _ = logger.Sync() })

	catalog, err := loadCatalog(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	client, err := llm.NewClient(ctx, cfg.LLMClientConfig())
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	a.closers = append(a.closers, func() { _ = client.Close() })

	deps := pipeline.Deps{
		Client:    llm.WithRateLimit(llm.WithLogging(client, logger), cfg.LLM.RequestsPerMinute, cfg.LLM.Burst),
		Extractor: skills.NewExtractor(catalog),
		Observer:  a.metrics,
		Logger:    logger,
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.database = database
		a.closers = append(a.closers, database.Close)
		deps.Store = database
	} else {
		logger.Warn("database_url not set, evaluations are kept in memory for this run only")
	}

	if cfg.RedisURL != "" {
		rdb, err := lock.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		deps.Locker = lock.NewRedisLocker(rdb)
	}

	orch, err := pipeline.New(deps, cfg.PipelineSettings())
	if err != nil {
		a.Close()
		return nil, err
	}
	a.orchestrator = orch
	return a, nil
}

// Close releases resources in reverse order of acquisition
func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// requireDatabase reports an error when a command needs Postgres and none is configured
func (a *application) requireDatabase() error {
	if a.database == nil {
		return errors.New("this command needs a database: set DATABASE_URL or database_url")
	}
	return nil
}

func loadCatalog(cfg *config.Config) (*skills.Catalog, error) {
	if cfg.Skills.CatalogPath == "" {
		return skills.DefaultCatalog(), nil
	}
	catalog, err := skills.LoadCatalog(cfg.Skills.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load skill catalog: %w", err)
	}
	return catalog, nil
}
