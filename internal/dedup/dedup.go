package dedup

import (
	"strconv"

	"signal_monitor/internal/domain"
)

const keySeparator = "|||"

// Set accumulates signals across queries, keeping the first occurrence of
// every (title, source) pair in insertion order. A Set is not safe for
// concurrent use.
type Set struct {
	seen  map[string]struct{}
	items []domain.Signal
}

func NewSet() *Set {
	return &Set{seen: make(map[string]struct{})}
}

// Key returns the dedup key of a signal. The title length prefix keeps
// ("A", "B|||C") and ("A|||B", "C") apart even when a field contains the separator.
func Key(s domain.Signal) string {
	return strconv.Itoa(len(s.Title)) + ":" + s.Title + keySeparator + s.Source
}

// Add merges signals produced by query into the set and returns how many were new.
// Signals without a title are dropped.
func (s *Set) Add(query string, signals []domain.Signal) int {
	added := 0
	for _, signal := range signals {
		if signal.Title == "" {
			continue
		}
		key := Key(signal)
		if _, ok := s.seen[key]; ok {
			continue
		}
		s.seen[key] = struct{}{}

		signal.Query = query
		s.items = append(s.items, signal)
		added++
	}
	return added
}

func (s *Set) Len() int {
	return len(s.items)
}

// Items returns the accumulated signals in first-seen order.
func (s *Set) Items() []domain.Signal {
	return s.items
}
