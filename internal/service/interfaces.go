package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"signal_monitor/internal/domain"
)

// FeedClient returns the raw search feed for a query.
type FeedClient interface {
	Fetch(ctx context.Context, query string) (string, error)
}

// FeedParser turns raw feed text into signals. Implementations never fail;
// unusable input yields no signals.
type FeedParser interface {
	Parse(text string) []domain.Signal
}

type SignalStore interface {
	Prune(ctx context.Context, olderThanDays int) (string, error)
	InsertBatch(ctx context.Context, signals []domain.Signal) (domain.BatchResult, error)
}

type Publisher interface {
	Publish(ctx context.Context, signal *domain.Signal) error
	Close() error
}
