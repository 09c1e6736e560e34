package gnews

import (
	"net/url"
	"strings"
)

// SearchOptions are the locale and recency parameters appended to every search URL.
type SearchOptions struct {
	Language string
	Country  string
	Window   string
}

// SearchURL builds the feed URL for query. The query is percent-encoded with
// spaces as %20 so the result matches what browsers send for the same search.
func SearchURL(base, query string, opts SearchOptions) string {
	var sb strings.Builder
	sb.WriteString(base)
	if strings.Contains(base, "?") {
		sb.WriteString("&")
	} else {
		sb.WriteString("?")
	}
	sb.WriteString("q=")
	sb.WriteString(EncodeQuery(query))

	if opts.Language != "" {
		sb.WriteString("&hl=" + url.QueryEscape(opts.Language))
	}
	if opts.Country != "" {
		sb.WriteString("&gl=" + url.QueryEscape(opts.Country))
		if opts.Language != "" {
			sb.WriteString("&ceid=" + opts.Country + ":" + opts.Language)
		}
	}
	if opts.Window != "" {
		sb.WriteString("&when=" + url.QueryEscape(opts.Window))
	}
	return sb.String()
}

// EncodeQuery escapes a search query with spaces as %20, the form the search endpoint expects.
func EncodeQuery(query string) string {
	return strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
}
