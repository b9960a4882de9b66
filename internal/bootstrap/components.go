// Package bootstrap assembles the formsight service from configuration:
// storage, history database, telemetry, the classification engine, the
// optional browser collector, and the HTTP server.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/formsight/internal/api"
	"github.com/jonesrussell/formsight/internal/classifier"
	"github.com/jonesrussell/formsight/internal/config"
	"github.com/jonesrussell/formsight/internal/database"
	"github.com/jonesrussell/formsight/internal/knowledge"
	"github.com/jonesrussell/formsight/internal/logger"
	"github.com/jonesrussell/formsight/internal/snapshot"
	"github.com/jonesrussell/formsight/internal/store"
	"github.com/jonesrussell/formsight/internal/telemetry"
)

// Components holds everything the HTTP entrypoint needs to run and shut
// down the service.
type Components struct {
	DB        *sqlx.DB
	Results   store.ResultStore
	Collector *snapshot.Collector
	Engine    *classifier.Classifier
	Handler   *api.Handler
	Server    *api.Server

	log logger.Logger
}

// New assembles all service components from configuration.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*Components, error) {
	db, err := setupDatabase(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	history := database.NewHistoryRepository(db)

	base, err := knowledge.New()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load knowledge base: %w", err)
	}

	tp := telemetry.NewProvider()

	backing, err := setupResultStore(cfg, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	results := store.NewInstrumentedStore(backing, tp.Metrics)

	engine := classifier.NewClassifier(log, tp, classifier.Config{
		Version: cfg.Service.Version,
	})
	log.Info("classification engine initialized",
		logger.String("version", engine.Version()))

	collector := setupCollector(cfg, log, tp)

	handler := api.NewHandler(api.HandlerConfig{
		Engine:    engine,
		Results:   results,
		History:   history,
		Knowledge: base,
		Collector: collectorOrNil(collector),
		Logger:    log,
		Telemetry: tp,
		Service:   cfg.Service.Name,
		Version:   cfg.Service.Version,
		MaxBatch:  cfg.Service.MaxBatchSnapshots,
	})

	server := api.NewServer(cfg.Server, cfg.Service.Debug)
	api.SetupRoutes(server.Router(), handler, tp)

	return &Components{
		DB:        db,
		Results:   results,
		Collector: collector,
		Engine:    engine,
		Handler:   handler,
		Server:    server,
		log:       log,
	}, nil
}

// Close releases held resources in reverse dependency order.
func (c *Components) Close() {
	if c.Collector != nil {
		if err := c.Collector.Close(); err != nil {
			c.log.Warn("collector close failed", logger.Error(err))
		}
	}
	if closer, ok := c.Results.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			c.log.Warn("result store close failed", logger.Error(err))
		}
	}
	if err := c.DB.Close(); err != nil {
		c.log.Warn("database close failed", logger.Error(err))
	}
}

func setupDatabase(ctx context.Context, cfg *config.Config, log logger.Logger) (*sqlx.DB, error) {
	log.Info("opening history database", logger.String("path", cfg.Database.Path))

	db, err := database.NewSQLiteConnection(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure history schema: %w", err)
	}
	return db, nil
}

func setupResultStore(cfg *config.Config, log logger.Logger) (store.ResultStore, error) {
	if cfg.Store.Backend != "redis" {
		log.Info("using in-memory result store")
		return store.NewMemoryStore(), nil
	}

	log.Info("connecting to redis result store",
		logger.String("address", cfg.Store.Address))

	results, err := store.NewRedisStore(store.RedisConfig{
		Address:   cfg.Store.Address,
		Password:  cfg.Store.Password,
		DB:        cfg.Store.DB,
		ResultTTL: cfg.Store.ResultTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return results, nil
}

func setupCollector(cfg *config.Config, log logger.Logger, tp *telemetry.Provider) *snapshot.Collector {
	if !cfg.Collector.Enabled {
		log.Info("browser collector disabled")
		return nil
	}

	return snapshot.NewCollector(snapshot.Config{
		RemoteURL:         cfg.Collector.RemoteURL,
		NavigateTimeout:   cfg.Collector.NavigateTimeout,
		CapturesPerSecond: cfg.Collector.CapturesPerSecond,
		CaptureBurst:      cfg.Collector.CaptureBurst,
	}, log, tp)
}

// collectorOrNil keeps a disabled collector out of the handler: a typed
// nil pointer inside the interface would pass the handler's nil check.
func collectorOrNil(c *snapshot.Collector) api.Collector {
	if c == nil {
		return nil
	}
	return c
}
