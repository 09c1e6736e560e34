package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"signal_monitor/internal/config"
	"signal_monitor/internal/domain"
	"signal_monitor/internal/metrics"
	"signal_monitor/internal/publisher"
	"signal_monitor/internal/scheduler"
	"signal_monitor/internal/service"
	"signal_monitor/internal/source/gnews"
	"signal_monitor/internal/storage/postgres"
	"signal_monitor/internal/storage/supabase"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return 1
	}

	logger = setupLogger(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		return 1
	}

	store, closeStore, err := newStore(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize store", "backend", cfg.Store.Backend, "error", err)
		return 1
	}
	defer closeStore()

	client := gnews.NewClient(gnews.Config{
		BaseURL:      cfg.Feed.BaseURL,
		Timeout:      cfg.Feed.Timeout,
		MaxRedirects: cfg.Feed.MaxRedirects,
		UserAgent:    cfg.Feed.UserAgent,
		Search: gnews.SearchOptions{
			Language: cfg.Feed.Language,
			Country:  cfg.Feed.Country,
			Window:   cfg.Feed.Window,
		},
	}, logger)

	var parser service.FeedParser = gnews.NewLexicalParser(logger)
	if cfg.Feed.Parser == config.ParserGofeed {
		parser = gnews.NewFeedParser(logger)
	}

	// Notifications are optional; a broker outage must not block ingestion.
	var pub service.Publisher
	if cfg.RabbitMQ.Enabled() {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Warn("publisher disabled", "error", err)
		} else {
			defer rabbitMQ.Close()
			pub = rabbitMQ
		}
	}

	recorder := metrics.NewRecorder()

	ingestService := service.NewIngestService(
		client,
		parser,
		store,
		pub,
		recorder,
		logger,
		cfg.Ingest,
	)

	afterRun := func(ctx context.Context, stats *domain.RunStats, _ error) {
		if cfg.Metrics.PushgatewayURL == "" || stats == nil {
			return
		}
		pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := recorder.Push(pushCtx, cfg.Metrics.PushgatewayURL, cfg.Metrics.Job); err != nil {
			logger.Warn("failed to push metrics", "error", err)
		}
	}

	sched := scheduler.NewScheduler(ingestService, cfg.Schedule.Interval, cfg.Schedule.RunTimeout, afterRun, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting signal monitor",
		"queries", len(cfg.Ingest.Queries),
		"store", cfg.Store.Backend,
		"parser", cfg.Feed.Parser,
		"interval", cfg.Schedule.Interval,
	)

	if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("scheduler error", "error", err)
	}

	return 0
}

func newStore(cfg *config.Config, logger *slog.Logger) (service.SignalStore, func(), error) {
	if cfg.Store.Backend == config.BackendPostgres {
		db, err := sqlx.Connect("postgres", cfg.Store.Database.DSN())
		if err != nil {
			return nil, nil, err
		}
		logger.Info("connected to database")
		return postgres.NewSignalStore(db, cfg.Store.Table), func() { db.Close() }, nil
	}

	return supabase.New(supabase.Config{
		BaseURL:    cfg.Store.URL,
		Table:      cfg.Store.Table,
		APIKey:     cfg.Store.APIKey,
		Timeout:    cfg.Store.Timeout,
		OnConflict: cfg.Store.OnConflict,
	}, logger), func() {}, nil
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
