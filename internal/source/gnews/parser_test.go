package gnews

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
<title>"water rights" - Google News</title>
<item>
  <title>Utility buys  water rights &amp; land - The Journal</title>
  <link>https://news.google.com/articles/abc</link>
  <guid isPermaLink="false">abc</guid>
  <pubDate>Mon, 12 Oct 2026 14:30:00 GMT</pubDate>
  <source url="https://journal.example">The Journal</source>
</item>
<item>
  <title>Aquifer &quot;at risk&quot;, officials say</title>
  <link> https://news.google.com/articles/def </link>
  <pubDate>Tue, 13 Oct 2026 08:00:00 +0200</pubDate>
  <source url="https://ap.example">AP &amp; Partners</source>
</item>
</channel></rss>`

func TestLexicalParser_Parse(t *testing.T) {
	signals := NewLexicalParser(testLogger()).Parse(sampleFeed)
	require.Len(t, signals, 2)

	first := signals[0]
	assert.Equal(t, "Utility buys  water rights & land - The Journal", first.Title)
	assert.Equal(t, "https://news.google.com/articles/abc", first.Link)
	assert.Equal(t, "The Journal", first.Source)
	require.NotNil(t, first.PublishedAt)
	assert.Equal(t, time.Date(2026, 10, 12, 14, 30, 0, 0, time.UTC), *first.PublishedAt)
	assert.Empty(t, first.Query)

	second := signals[1]
	assert.Equal(t, `Aquifer "at risk", officials say`, second.Title)
	assert.Equal(t, "https://news.google.com/articles/def", second.Link)
	assert.Equal(t, "AP & Partners", second.Source)
	require.NotNil(t, second.PublishedAt)
	assert.Equal(t, time.Date(2026, 10, 13, 6, 0, 0, 0, time.UTC), *second.PublishedAt)
}

func TestLexicalParser_MinimalItem(t *testing.T) {
	signals := NewLexicalParser(testLogger()).Parse(`<item><title>A &amp; B</title><source url="x">Reuters</source></item>`)

	require.Len(t, signals, 1)
	assert.Equal(t, "A & B", signals[0].Title)
	assert.Equal(t, "Reuters", signals[0].Source)
	assert.Equal(t, "", signals[0].Link)
	assert.Nil(t, signals[0].PublishedAt)
}

func TestLexicalParser_NoItems(t *testing.T) {
	parser := NewLexicalParser(testLogger())

	for _, text := range []string{"", "<rss><channel></channel></rss>", "<html>blocked</html>", "<item><title>unterminated"} {
		signals := parser.Parse(text)
		assert.NotNil(t, signals)
		assert.Empty(t, signals)
	}
}

func TestLexicalParser_MissingTagsAndFirstOccurrence(t *testing.T) {
	text := `<item><link>l1</link></item>
<item><title>one</title><title>two</title><source>S1</source><source>S2</source></item>`

	signals := NewLexicalParser(testLogger()).Parse(text)
	require.Len(t, signals, 2)

	assert.Equal(t, "", signals[0].Title)
	assert.Equal(t, "l1", signals[0].Link)
	assert.Equal(t, "", signals[0].Source)

	assert.Equal(t, "one", signals[1].Title)
	assert.Equal(t, "S1", signals[1].Source)
}

func TestLexicalParser_UnparseableDate(t *testing.T) {
	signals := NewLexicalParser(testLogger()).Parse(`<item><title>t</title><pubDate>sometime last week</pubDate></item>`)

	require.Len(t, signals, 1)
	assert.Nil(t, signals[0].PublishedAt)
}

func TestLexicalParser_MultilineTitle(t *testing.T) {
	signals := NewLexicalParser(testLogger()).Parse("<item><title>\n  Drought\n declared \n</title></item>")

	require.Len(t, signals, 1)
	assert.Equal(t, "Drought\n declared", signals[0].Title)
}

func TestDecodeEntities(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Water &amp; Power", "Water & Power"},
		{"Water & Power", "Water & Power"},
		{"&lt;b&gt;", "<b>"},
		{"&quot;quoted&quot;", `"quoted"`},
		{"it&#39;s", "it's"},
		{"&nbsp;", "&nbsp;"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DecodeEntities(tt.in), tt.in)
	}
}

func TestDecodeEntities_IdempotentOnDecodedText(t *testing.T) {
	decoded := DecodeEntities("Water &amp; Power")
	assert.Equal(t, decoded, DecodeEntities(decoded))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"Mon, 12 Oct 2026 14:30:00 GMT", time.Date(2026, 10, 12, 14, 30, 0, 0, time.UTC), true},
		{"Mon, 12 Oct 2026 14:30:00 +0000", time.Date(2026, 10, 12, 14, 30, 0, 0, time.UTC), true},
		{"Mon, 2 Oct 2026 09:05:00 -0500", time.Date(2026, 10, 2, 14, 5, 0, 0, time.UTC), true},
		{"2026-10-12T14:30:00Z", time.Date(2026, 10, 12, 14, 30, 0, 0, time.UTC), true},
		{"not a date", time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.True(t, tt.want.Equal(got), "%s: got %s", tt.in, got)
			assert.Equal(t, time.UTC, got.Location())
		}
	}
}

func TestFeedParser_Parse(t *testing.T) {
	signals := NewFeedParser(testLogger()).Parse(sampleFeed)
	require.Len(t, signals, 2)

	assert.Equal(t, "Utility buys  water rights & land - The Journal", signals[0].Title)
	assert.Equal(t, "https://news.google.com/articles/abc", signals[0].Link)
	assert.Equal(t, "The Journal", signals[0].Source)
	require.NotNil(t, signals[0].PublishedAt)
	assert.True(t, time.Date(2026, 10, 12, 14, 30, 0, 0, time.UTC).Equal(*signals[0].PublishedAt))

	assert.Equal(t, "AP & Partners", signals[1].Source)
}

func TestFeedParser_MalformedYieldsNoItems(t *testing.T) {
	signals := NewFeedParser(testLogger()).Parse("<html><body>captcha</body></html>")

	assert.NotNil(t, signals)
	assert.Empty(t, signals)
}
