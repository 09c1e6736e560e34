package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"signal_monitor/internal/config"
	"signal_monitor/internal/dedup"
	"signal_monitor/internal/domain"
	"signal_monitor/internal/metrics"
)

const queryDisplayLen = 40

// IngestService runs the ingestion pipeline: prune, fetch every query, dedupe,
// then insert in batches. Failures are absorbed per query and per batch.
type IngestService struct {
	client    FeedClient
	parser    FeedParser
	store     SignalStore
	publisher Publisher
	metrics   *metrics.Recorder
	logger    *slog.Logger
	config    config.IngestConfig
}

func NewIngestService(
	client FeedClient,
	parser FeedParser,
	store SignalStore,
	publisher Publisher,
	recorder *metrics.Recorder,
	logger *slog.Logger,
	cfg config.IngestConfig,
) *IngestService {
	return &IngestService{
		client:    client,
		parser:    parser,
		store:     store,
		publisher: publisher,
		metrics:   recorder,
		logger:    logger.With("component", "ingest"),
		config:    cfg,
	}
}

// Run executes one ingestion run. The only error it returns is the context's,
// when the run is canceled; everything else is logged and counted in the stats.
func (s *IngestService) Run(ctx context.Context) (*domain.RunStats, error) {
	startTime := time.Now()
	stats := &domain.RunStats{Queries: len(s.config.Queries)}

	s.prune(ctx, stats)

	s.logger.Info("fetching signals", "queries", len(s.config.Queries))

	set := dedup.NewSet()
	for i, query := range s.config.Queries {
		items, err := s.fetchQuery(ctx, query)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return s.finish(stats, startTime), ctxErr
		}
		if err != nil {
			stats.QueryErrors++
			s.logger.Error("failed to fetch query",
				"query", query,
				"error", err,
			)
		}

		stats.Fetched += len(items)
		set.Add(query, items)
		s.metrics.ObserveQuery(len(items), err)

		s.logger.Info("fetched query",
			"query", truncate(query, queryDisplayLen),
			"items", len(items),
		)

		if i < len(s.config.Queries)-1 {
			if err := pause(ctx, s.config.InterQueryDelay); err != nil {
				return s.finish(stats, startTime), err
			}
		}
	}

	stats.Unique = set.Len()
	s.logger.Info("total unique items", "count", stats.Unique)

	if stats.Unique == 0 {
		s.logger.Info("no items to insert")
		return s.finish(stats, startTime), nil
	}

	if err := s.insertAll(ctx, set.Items(), stats); err != nil {
		return s.finish(stats, startTime), err
	}

	s.finish(stats, startTime)

	s.logger.Info("run completed",
		"new", stats.Inserted,
		"duplicates", stats.Duplicates,
		"batch_errors", stats.BatchErrors,
		"query_errors", stats.QueryErrors,
		"published", stats.Published,
		"duration", stats.Duration,
	)

	return stats, nil
}

func (s *IngestService) prune(ctx context.Context, stats *domain.RunStats) {
	result, err := s.store.Prune(ctx, s.config.PruneDays)
	s.metrics.ObservePrune(err)
	if err != nil {
		stats.PruneFailed = true
		s.logger.Error("cleanup failed", "older_than_days", s.config.PruneDays, "error", err)
		return
	}

	stats.Pruned = result
	s.logger.Info("cleanup completed",
		"older_than_days", s.config.PruneDays,
		"result", result,
	)
}

func (s *IngestService) fetchQuery(ctx context.Context, query string) ([]domain.Signal, error) {
	text, err := s.client.Fetch(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	return s.parser.Parse(text), nil
}

func (s *IngestService) insertAll(ctx context.Context, items []domain.Signal, stats *domain.RunStats) error {
	size := s.config.BatchSize

	for start := 0; start < len(items); start += size {
		if err := ctx.Err(); err != nil {
			return err
		}

		batch := items[start:min(start+size, len(items))]
		number := start/size + 1
		stats.Batches++

		result, err := s.store.InsertBatch(ctx, batch)
		if err != nil {
			stats.BatchErrors++
			s.metrics.ObserveBatch(0, 0, err)
			s.logger.Error("batch insert failed",
				"batch", number,
				"size", len(batch),
				"error", err,
			)
			continue
		}

		duplicates := len(batch) - result.Inserted
		stats.Inserted += result.Inserted
		stats.Duplicates += duplicates
		s.metrics.ObserveBatch(result.Inserted, duplicates, nil)

		s.logger.Info("batch inserted",
			"batch", number,
			"new", result.Inserted,
			"duplicates", duplicates,
		)

		s.publish(ctx, result.Rows, stats)
	}

	return nil
}

func (s *IngestService) publish(ctx context.Context, inserted []domain.Signal, stats *domain.RunStats) {
	if s.publisher == nil {
		return
	}

	for i := range inserted {
		if err := s.publisher.Publish(ctx, &inserted[i]); err != nil {
			s.logger.Warn("failed to publish signal",
				"title", inserted[i].Title,
				"error", err,
			)
			continue
		}
		stats.Published++
		s.metrics.ObservePublished()
	}
}

func (s *IngestService) finish(stats *domain.RunStats, startTime time.Time) *domain.RunStats {
	stats.Duration = time.Since(startTime)
	s.metrics.ObserveRun(stats)
	return stats
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
