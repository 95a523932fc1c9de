package ingestion

import "errors"

var (
	// ErrRepositoryRequired is returned when a corpus repository is not provided.
	ErrRepositoryRequired = errors.New("corpus repository required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")
)
