package gnews

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const maxBodySize = 10 << 20

var (
	ErrTimeout          = errors.New("feed request timed out")
	ErrTransport        = errors.New("feed transport error")
	ErrTooManyRedirects = errors.New("too many redirects")
	ErrUnexpectedStatus = errors.New("unexpected feed status")
)

// Config holds feed client configuration.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	MaxRedirects int
	UserAgent    string
	Search       SearchOptions
}

// Client fetches search feeds over HTTP, following redirects up to a fixed hop count.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	userAgent    string
	maxRedirects int
	search       SearchOptions
	logger       *slog.Logger
}

// NewClient creates a new feed client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			// Redirects are followed by Get so the hop count can be enforced.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		baseURL:      cfg.BaseURL,
		userAgent:    cfg.UserAgent,
		maxRedirects: cfg.MaxRedirects,
		search:       cfg.Search,
		logger:       logger.With("component", "feed_client"),
	}
}

// Fetch returns the raw search feed for query.
func (c *Client) Fetch(ctx context.Context, query string) (string, error) {
	return c.Get(ctx, SearchURL(c.baseURL, query, c.search))
}

// Get performs a GET against rawURL and returns the response body.
func (c *Client) Get(ctx context.Context, rawURL string) (string, error) {
	target := rawURL

	for hop := 0; ; hop++ {
		resp, err := c.do(ctx, target)
		if err != nil {
			return "", err
		}

		if isRedirect(resp.StatusCode) {
			loc, err := resp.Location()
			resp.Body.Close()
			if err != nil {
				return "", fmt.Errorf("%w: redirect %d without location", ErrTransport, resp.StatusCode)
			}
			if hop >= c.maxRedirects {
				return "", fmt.Errorf("%w: gave up after %d hops at %s", ErrTooManyRedirects, hop, target)
			}

			c.logger.Debug("following redirect",
				"status", resp.StatusCode,
				"from", target,
				"to", loc.String(),
			)
			target = loc.String()
			continue
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		resp.Body.Close()
		if err != nil {
			return "", classify(ctx, fmt.Errorf("read body: %w", err))
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
		}

		return string(body), nil
	}
}

func (c *Client) do(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify(ctx, fmt.Errorf("execute request: %w", err))
	}
	return resp, nil
}

func isRedirect(status int) bool {
	switch status {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

func classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}
