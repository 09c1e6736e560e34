package domain

import "time"

// Signal is one news item discovered by a search query.
type Signal struct {
	Title       string     `json:"title" db:"title"`
	Link        string     `json:"link" db:"link"`
	Source      string     `json:"source" db:"source"`
	PublishedAt *time.Time `json:"published_at" db:"published_at"`
	Query       string     `json:"query" db:"query"`
}
