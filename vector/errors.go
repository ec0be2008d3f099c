package vector

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidDimension indicates a non-positive embedding dimension.
	ErrInvalidDimension = errors.New("invalid embedding dimension")

	// ErrDimensionMismatch indicates a vector whose length differs from the
	// store's configured dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrNoIndexPath is returned by Save/Load when the store was built
	// without an index path.
	ErrNoIndexPath = errors.New("no index path configured")
)
