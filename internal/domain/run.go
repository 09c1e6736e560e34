package domain

import "time"

// RunStats holds statistics about a single ingestion run.
type RunStats struct {
	Queries     int
	QueryErrors int
	Fetched     int
	Unique      int
	Batches     int
	BatchErrors int
	Inserted    int
	Duplicates  int
	Published   int
	Pruned      string
	PruneFailed bool
	Duration    time.Duration
}

// BatchResult reports what the store accepted from one insert batch.
// Rows holds the inserted rows that could be decoded; it may be shorter
// than Inserted when the store returns rows in an unexpected shape.
type BatchResult struct {
	Inserted int
	Rows     []Signal
}
