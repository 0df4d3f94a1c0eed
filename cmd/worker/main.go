package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"meta_indexer/internal/config"
	"meta_indexer/internal/embedding"
	"meta_indexer/internal/queue"
	"meta_indexer/internal/schema"
	"meta_indexer/internal/search"
	"meta_indexer/internal/storage/postgres"
	"meta_indexer/internal/worker"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	searchClient, err := search.NewClient(search.Config{
		URL:        cfg.Elasticsearch.URL,
		Username:   cfg.Elasticsearch.Username,
		Password:   cfg.Elasticsearch.Password,
		MaxRetries: cfg.Elasticsearch.MaxRetries,
		Timeout:    cfg.Elasticsearch.Timeout,
	})
	if err != nil {
		logger.Error("failed to connect to elasticsearch", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to elasticsearch")

	embedder, err := embedding.New(embedding.Config{
		Provider:  cfg.Embedding.Provider,
		Model:     cfg.Embedding.Model,
		Dimension: cfg.Embedding.Dimension,
		ServerURL: cfg.Embedding.ServerURL,
		APIKey:    cfg.Embedding.APIKey,
	})
	if err != nil {
		logger.Error("failed to create embedder", "error", err)
		os.Exit(1)
	}

	validator, err := schema.NewValidator()
	if err != nil {
		logger.Error("failed to compile record schema", "error", err)
		os.Exit(1)
	}

	rabbitMQ, err := queue.NewRabbitMQ(queue.Config{
		URL:        cfg.RabbitMQ.URL,
		Exchange:   cfg.RabbitMQ.Exchange,
		RoutingKey: cfg.RabbitMQ.RoutingKey,
		QueueName:  cfg.RabbitMQ.QueueName,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer rabbitMQ.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := searchClient.EnsureIndex(ctx, cfg.Producer.IndexName, embedder.Dimension()); err != nil {
		logger.Error("failed to ensure index", "error", err)
		os.Exit(1)
	}

	w := worker.New(
		postgres.NewRecordStore(db),
		postgres.NewEventStore(db),
		postgres.NewTransactionManager(db),
		embedder,
		searchClient,
		validator,
		logger,
	)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting transform worker",
		"queue", cfg.RabbitMQ.QueueName,
		"index", cfg.Producer.IndexName,
		"embedding_model", embedder.Model(),
	)

	if err := rabbitMQ.Consume(ctx, w); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumer error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
