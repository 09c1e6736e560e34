package gnews

import (
	"log/slog"
	"strings"

	"github.com/mmcdole/gofeed/rss"

	"signal_monitor/internal/domain"
)

// FeedParser parses the feed as RSS XML. Unlike LexicalParser it rejects
// malformed documents; a parse failure is logged and yields no items so the
// caller sees the same non-failing contract.
type FeedParser struct {
	logger *slog.Logger
}

func NewFeedParser(logger *slog.Logger) *FeedParser {
	return &FeedParser{logger: logger.With("component", "gofeed_parser")}
}

func (p *FeedParser) Parse(text string) []domain.Signal {
	parser := &rss.Parser{}
	feed, err := parser.Parse(strings.NewReader(text))
	if err != nil {
		p.logger.Warn("failed to parse feed", "error", err)
		return []domain.Signal{}
	}

	signals := make([]domain.Signal, 0, len(feed.Items))
	for _, item := range feed.Items {
		signal := domain.Signal{
			Title: strings.TrimSpace(item.Title),
			Link:  strings.TrimSpace(item.Link),
		}
		if item.Source != nil {
			signal.Source = strings.TrimSpace(item.Source.Title)
		}
		if item.PubDateParsed != nil {
			t := item.PubDateParsed.UTC()
			signal.PublishedAt = &t
		} else if item.PubDate != "" {
			if t, ok := ParseDate(strings.TrimSpace(item.PubDate)); ok {
				signal.PublishedAt = &t
			}
		}
		signals = append(signals, signal)
	}

	return signals
}
