//go:build integration

package postgres

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"signal_monitor/internal/domain"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_create_signals_raw.up.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM signals_raw")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) TestInsertBatch_Insert() {
	store := NewSignalStore(s.db, "signals_raw")
	published := time.Date(2026, 10, 12, 14, 30, 0, 0, time.UTC)

	result, err := store.InsertBatch(s.ctx, []domain.Signal{
		{Title: "Drought declared", Link: "https://a", Source: "AP", PublishedAt: &published, Query: "drought"},
		{Title: "No date", Source: "Reuters", Query: "drought"},
	})
	s.Require().NoError(err)
	s.Equal(2, result.Inserted)
	inserted := result.Rows
	s.Require().Len(inserted, 2)
	s.Require().NotNil(inserted[0].PublishedAt)
	s.True(published.Equal(*inserted[0].PublishedAt))
	s.Nil(inserted[1].PublishedAt)

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM signals_raw")
	s.NoError(err)
	s.Equal(2, count)
}

func (s *PostgresIntegrationSuite) TestInsertBatch_SkipsDuplicates() {
	store := NewSignalStore(s.db, "signals_raw")

	_, err := store.InsertBatch(s.ctx, []domain.Signal{
		{Title: "a", Source: "S", Query: "q1"},
		{Title: "b", Source: "S", Query: "q1"},
	})
	s.Require().NoError(err)

	result, err := store.InsertBatch(s.ctx, []domain.Signal{
		{Title: "a", Source: "S", Query: "q2"},
		{Title: "b", Source: "S", Query: "q2"},
		{Title: "c", Source: "S", Query: "q2"},
		{Title: "d", Source: "S", Query: "q2"},
		{Title: "a", Source: "T", Query: "q2"},
	})
	s.Require().NoError(err)
	s.Equal(3, result.Inserted)
	s.Len(result.Rows, 3)
}

func (s *PostgresIntegrationSuite) TestInsertBatch_Empty() {
	result, err := NewSignalStore(s.db, "signals_raw").InsertBatch(s.ctx, nil)

	s.NoError(err)
	s.Zero(result.Inserted)
	s.Empty(result.Rows)
}

func (s *PostgresIntegrationSuite) TestPrune_OnlyStaleUnreviewed() {
	store := NewSignalStore(s.db, "signals_raw")
	old := time.Now().Add(-100 * 24 * time.Hour)
	recent := time.Now().Add(-10 * 24 * time.Hour)

	rows := []struct {
		title      string
		createdAt  time.Time
		isRelevant *bool
	}{
		{"old unreviewed", old, nil},
		{"old relevant", old, ptr(true)},
		{"old irrelevant", old, ptr(false)},
		{"recent unreviewed", recent, nil},
	}
	for _, r := range rows {
		_, err := s.db.ExecContext(s.ctx,
			"INSERT INTO signals_raw (title, created_at, is_relevant) VALUES ($1, $2, $3)",
			r.title, r.createdAt, r.isRelevant,
		)
		s.Require().NoError(err)
	}

	result, err := store.Prune(s.ctx, 90)
	s.Require().NoError(err)
	s.Equal("1 rows", result)

	var titles []string
	err = s.db.SelectContext(s.ctx, &titles, "SELECT title FROM signals_raw ORDER BY title")
	s.NoError(err)
	s.Equal([]string{"old irrelevant", "old relevant", "recent unreviewed"}, titles)
}

func ptr[T any](v T) *T {
	return &v
}
