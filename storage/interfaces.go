package storage

import (
	"context"

	"github.com/baytlab/bayt/core"
)

// CorpusRepository provides persistence for corpus records.
// Implementations must be thread-safe and support concurrent access.
type CorpusRepository interface {
	// AddRecords adds one or more records to storage, preserving the call
	// order so AllRecords returns records in the order they were ingested.
	// Returns ErrDuplicateKey if a record ID is already stored.
	AddRecords(ctx context.Context, records ...*core.Record) error

	// GetRecord retrieves a single record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetRecord(ctx context.Context, id core.ID) (*core.Record, error)

	// AllRecords retrieves the whole corpus in ingestion order.
	AllRecords(ctx context.Context) ([]*core.Record, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// DeleteAll removes every stored record, for rebuilding the corpus
	// from scratch.
	DeleteAll(ctx context.Context) error

	// Close releases repository resources.
	Close() error
}
