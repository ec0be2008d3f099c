package ingestion

import "errors"

var (
	// ErrEnricherRequired is returned when no enrichment processor is provided.
	ErrEnricherRequired = errors.New("enricher required")
	// ErrRepositoryRequired is returned when no document repository is provided.
	ErrRepositoryRequired = errors.New("document repository required")
	// ErrVectorStoreRequired is returned when no vector store is provided.
	ErrVectorStoreRequired = errors.New("vector store required")
	// ErrIndexRequired is returned when no keyword index is provided.
	ErrIndexRequired = errors.New("index required")
	// ErrInvalidPoolSize is returned for a non-positive worker pool size.
	ErrInvalidPoolSize = errors.New("pool size must be at least 1")
)
