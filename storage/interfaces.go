package storage

import (
	"context"
	"time"

	"github.com/poiesic/verdant/core"
)

// DocumentRepository is the canonical store for enriched documents.
// Implementations must be thread-safe and support concurrent access.
//
// The keyword index and vector store hold their own denormalized copies for
// retrieval; this repository owns the authoritative record and serves by-ID
// lookups after ranking.
type DocumentRepository interface {
	// AddDocuments adds one or more documents to storage.
	// Documents with ID=0 get a content-derived ID, so re-adding identical
	// content overwrites the existing record instead of duplicating it.
	// Sets InsertedAt if not already set and always refreshes UpdatedAt.
	// Returns the documents with IDs and timestamps populated.
	AddDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocuments retrieves multiple documents by their IDs.
	// Returns only the documents that exist (no error for missing documents).
	GetDocuments(ctx context.Context, ids ...core.ID) ([]*core.Document, error)

	// DeleteDocuments removes documents by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any document doesn't exist.
	DeleteDocuments(ctx context.Context, ids ...core.ID) error

	// GetDocumentsByDateRange retrieves documents within a time range.
	// Returns documents where start <= EffectiveDate < end, ordered by date.
	GetDocumentsByDateRange(ctx context.Context, start, end time.Time) ([]*core.Document, error)

	// CountDocuments returns the number of stored documents.
	CountDocuments(ctx context.Context) (int, error)

	// Close closes the repository and releases resources.
	Close() error
}
