package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"signal_monitor/internal/domain"
)

// SignalStore writes signals straight into Postgres. It mirrors the REST
// store's contract: the table's unique constraint decides what is a duplicate.
type SignalStore struct {
	db    *sqlx.DB
	table string
	now   func() time.Time
}

func NewSignalStore(db *sqlx.DB, table string) *SignalStore {
	return &SignalStore{
		db:    db,
		table: pq.QuoteIdentifier(table),
		now:   time.Now,
	}
}

func (s *SignalStore) Prune(ctx context.Context, olderThanDays int) (string, error) {
	cutoff := s.now().Add(-time.Duration(olderThanDays) * 24 * time.Hour).UTC()

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM "+s.table+" WHERE created_at < $1 AND is_relevant IS NULL",
		cutoff,
	)
	if err != nil {
		return "", fmt.Errorf("delete stale signals: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return "ok", nil
	}
	return fmt.Sprintf("%d rows", n), nil
}

func (s *SignalStore) InsertBatch(ctx context.Context, signals []domain.Signal) (domain.BatchResult, error) {
	if len(signals) == 0 {
		return domain.BatchResult{Rows: []domain.Signal{}}, nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO " + s.table + " (title, link, source, published_at, query) VALUES ")
	valueArgs := make([]interface{}, 0, len(signals)*5)

	for i, signal := range signals {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for j := 1; j <= 5; j++ {
			if j > 1 {
				sb.WriteString(", ")
			}
			sb.WriteString("$")
			sb.WriteString(strconv.Itoa(i*5 + j))
		}
		sb.WriteString(")")
		valueArgs = append(valueArgs, signal.Title, signal.Link, signal.Source, signal.PublishedAt, signal.Query)
	}
	sb.WriteString(" ON CONFLICT DO NOTHING RETURNING title, link, source, published_at, query")

	inserted := []domain.Signal{}
	if err := s.db.SelectContext(ctx, &inserted, sb.String(), valueArgs...); err != nil {
		return domain.BatchResult{}, fmt.Errorf("insert signals: %w", err)
	}
	return domain.BatchResult{Inserted: len(inserted), Rows: inserted}, nil
}
