package gnews

import (
	"log/slog"
	"regexp"
	"strings"
	"time"

	"signal_monitor/internal/domain"
)

var (
	itemPattern    = regexp.MustCompile(`(?s)<item>(.*?)</item>`)
	titlePattern   = regexp.MustCompile(`(?s)<title>(.*?)</title>`)
	linkPattern    = regexp.MustCompile(`(?s)<link>(.*?)</link>`)
	pubDatePattern = regexp.MustCompile(`(?s)<pubDate>(.*?)</pubDate>`)
	sourcePattern  = regexp.MustCompile(`(?s)<source[^>]*>(.*?)</source>`)
)

// pubDateLayouts are tried in order; feeds almost always use the first one.
var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC822Z,
	time.RFC822,
	"2 Jan 2006 15:04:05 -0700",
	time.RFC3339,
}

// LexicalParser extracts items with a pragmatic tag scan instead of a full XML
// parser. It never fails: missing tags become empty fields, and text without
// any <item> block yields no items.
type LexicalParser struct {
	logger *slog.Logger
}

func NewLexicalParser(logger *slog.Logger) *LexicalParser {
	return &LexicalParser{logger: logger.With("component", "lexical_parser")}
}

// Parse returns the items found in text. Query is left empty.
func (p *LexicalParser) Parse(text string) []domain.Signal {
	blocks := itemPattern.FindAllStringSubmatch(text, -1)
	signals := make([]domain.Signal, 0, len(blocks))

	for _, m := range blocks {
		block := m[1]
		pubDate := strings.TrimSpace(firstMatch(pubDatePattern, block))

		signals = append(signals, domain.Signal{
			Title:       strings.TrimSpace(DecodeEntities(firstMatch(titlePattern, block))),
			Link:        strings.TrimSpace(firstMatch(linkPattern, block)),
			Source:      strings.TrimSpace(DecodeEntities(firstMatch(sourcePattern, block))),
			PublishedAt: p.parseDate(pubDate),
		})
	}

	return signals
}

// parseDate returns nil for an empty or unparseable date.
func (p *LexicalParser) parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, ok := ParseDate(value)
	if !ok {
		p.logger.Debug("unparseable pubDate, leaving published_at empty", "pub_date", value)
		return nil
	}
	return &t
}

// ParseDate parses an RFC-822 style feed date and returns it in UTC.
func ParseDate(value string) (time.Time, bool) {
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func firstMatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}

// DecodeEntities replaces the handful of entities that appear in feed titles.
// Replacements run one after another in a fixed order, &amp; first.
func DecodeEntities(s string) string {
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&#39;", "'")
	return s
}
