// Package app wires configuration into the storage, cache, messaging and
// service layers shared by the binaries.
package app

import (
	"fmt"

	"question-bank/internal/adapter"
	"question-bank/internal/adapter/messaging"
	"question-bank/internal/cache"
	"question-bank/internal/config"
	"question-bank/internal/csvimport"
	"question-bank/internal/database"
	"question-bank/internal/domain"
	"question-bank/internal/logger"
	"question-bank/internal/metrics"
	"question-bank/internal/repository"
	"question-bank/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Container holds everything a binary needs after startup.
type Container struct {
	Config    *config.Config
	DB        *sqlx.DB
	Cache     domain.Cache
	Publisher domain.EventPublisher
	Metrics   *metrics.Metrics
	Registry  *prometheus.Registry
	Parser    *csvimport.Parser
	Sink      domain.QuestionSink
	Imports   service.ImportService
	Exports   service.ExportService

	closers []func() error
}

// NewParser builds a parser from the import settings.
func NewParser(cfg *config.Config) (*csvimport.Parser, error) {
	tok, err := csvimport.NewTokenizer(cfg.StandInRune())
	if err != nil {
		return nil, err
	}
	th := cfg.Import.Thresholds
	normalizer := csvimport.NewNormalizer(domain.DefaultTaxonomy(), csvimport.Thresholds{
		Section:      th.Section,
		Domain:       th.Domain,
		QuestionType: th.QuestionType,
		Difficulty:   th.Difficulty,
	})
	return csvimport.NewParser(tok, normalizer), nil
}

// Build connects to the database, applies migrations and assembles the
// services. Redis and RabbitMQ are used only when configured. Call Close on
// the returned container.
func Build(cfg *config.Config) (*Container, error) {
	log := logger.Get()
	c := &Container{Config: cfg}

	parser, err := NewParser(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid import settings: %w", err)
	}
	c.Parser = parser

	db, err := database.NewSQLXDB(cfg)
	if err != nil {
		return nil, err
	}
	c.DB = db
	c.closers = append(c.closers, db.Close)
	if err := database.RunMigrations(db); err != nil {
		c.Close()
		return nil, err
	}

	if cfg.Redis.Address != "" {
		client, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.closers = append(c.closers, client.Close)
		c.Cache = adapter.NewRedisCacheAdapter(client)
		log.Info("Using Redis session cache", zap.String("address", cfg.Redis.Address))
	} else {
		c.Cache = adapter.NewMemoryCacheAdapter()
		log.Info("Redis not configured, using in-process session cache")
	}

	publisher, err := messaging.NewRabbitMQPublisher(cfg.RabbitMQ)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Publisher = publisher
	c.closers = append(c.closers, publisher.Close)

	c.Registry = prometheus.NewRegistry()
	c.Metrics = metrics.New(c.Registry)

	repo := repository.NewQuestionDatabaseAdapter(db)
	c.Sink = service.NewQuestionSink(repo, repository.NewTransactionManagerAdapter(db), publisher, c.Metrics)
	c.Imports = service.NewImportService(parser, service.NewSessionStore(c.Cache, cfg.Import.SessionTTL), c.Sink, c.Metrics)
	c.Exports = service.NewExportService(repo, csvimport.NewExporter(parser.Tokenizer()))
	return c, nil
}

// Close releases resources in reverse order of acquisition.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			logger.Get().Warn("Error during shutdown", zap.Error(err))
		}
	}
	c.closers = nil
}
