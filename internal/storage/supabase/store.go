package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"signal_monitor/internal/domain"
)

// isoMillis matches the millisecond ISO-8601 form PostgREST filters expect.
const isoMillis = "2006-01-02T15:04:05.000Z"

// RemoteError is returned when the store answers with a non-2xx status.
type RemoteError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Op, e.StatusCode, e.Body)
}

// Config holds REST store configuration.
type Config struct {
	BaseURL string
	Table   string
	APIKey  string
	Timeout time.Duration

	// OnConflict names the unique columns PostgREST should check when
	// ignoring duplicates. Empty means the primary key.
	OnConflict string
}

// Store talks to a PostgREST collection. Uniqueness of rows is enforced by the
// table itself; inserts ask the server to skip conflicting rows.
type Store struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	onConflict string
	now        func() time.Time
	logger     *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Store {
	return &Store{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + "/rest/v1/" + cfg.Table,
		apiKey:     cfg.APIKey,
		onConflict: cfg.OnConflict,
		now:        time.Now,
		logger:     logger.With("component", "supabase_store"),
	}
}

// Cutoff returns the instant olderThanDays days before now.
func Cutoff(now time.Time, olderThanDays int) time.Time {
	return now.Add(-time.Duration(olderThanDays) * 24 * time.Hour)
}

// Prune deletes rows created before the cutoff that nobody has reviewed yet.
// It returns the Content-Range reported by the server, or "ok" when absent.
func (s *Store) Prune(ctx context.Context, olderThanDays int) (string, error) {
	cutoff := Cutoff(s.now(), olderThanDays).UTC().Format(isoMillis)

	params := url.Values{}
	params.Set("created_at", "lt."+cutoff)
	params.Set("is_relevant", "is.null")

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	s.authorize(req)
	req.Header.Set("Prefer", "return=headers-only")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &RemoteError{Op: "prune", StatusCode: resp.StatusCode, Body: string(body)}
	}

	s.logger.Debug("pruned stale signals", "cutoff", cutoff)

	if cr := resp.Header.Get("Content-Range"); cr != "" {
		return cr, nil
	}
	return "ok", nil
}

// InsertBatch submits signals in one request and reports the rows the server
// actually inserted. Conflicting rows are skipped by the server, so the count
// can be lower than the input length.
func (s *Store) InsertBatch(ctx context.Context, signals []domain.Signal) (domain.BatchResult, error) {
	payload, err := json.Marshal(signals)
	if err != nil {
		return domain.BatchResult{}, fmt.Errorf("marshal signals: %w", err)
	}

	target := s.endpoint
	if s.onConflict != "" {
		target += "?" + url.Values{"on_conflict": {s.onConflict}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return domain.BatchResult{}, fmt.Errorf("create request: %w", err)
	}
	s.authorize(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "resolution=ignore-duplicates,return=representation")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.BatchResult{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.BatchResult{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.BatchResult{}, &RemoteError{Op: "insert", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		// The rows were accepted; only the count is unknown.
		s.logger.Warn("unreadable insert representation, counting zero inserted",
			"status", resp.StatusCode,
			"error", err,
		)
		return domain.BatchResult{Rows: []domain.Signal{}}, nil
	}

	return domain.BatchResult{Inserted: len(rows), Rows: s.decodeRows(rows)}, nil
}

// decodeRows keeps every returned row that maps onto a Signal. Rows in another
// shape still count as inserted but cannot be published.
func (s *Store) decodeRows(rows []json.RawMessage) []domain.Signal {
	decoded := make([]domain.Signal, 0, len(rows))
	for i, row := range rows {
		var signal domain.Signal
		if err := json.Unmarshal(row, &signal); err != nil {
			s.logger.Warn("undecodable inserted row", "index", i, "error", err)
			continue
		}
		decoded = append(decoded, signal)
	}
	return decoded
}

func (s *Store) authorize(req *http.Request) {
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
}
