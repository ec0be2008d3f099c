// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package vector

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/poiesic/verdant/ai"
	"github.com/poiesic/verdant/ai/seeded"
	"github.com/poiesic/verdant/core"
)

// Store maps document IDs to embedding vectors and filter metadata.
// Every stored vector is unit-length, so the raw dot product against a
// normalized query vector is the cosine similarity in [-1, 1].
//
// Reads are safe against concurrent Adds at per-document granularity: a
// search sees either the pre-add or post-add state for any given document.
type Store struct {
	mu       sync.RWMutex
	embedder ai.Embedder
	dim      int
	docs     map[core.ID]*core.Document
	vectors  map[core.ID][]float32
	meta     map[core.ID]*core.Metadata

	indexPath   string
	lastUpdated time.Time
	logger      *slog.Logger
}

// Option configures a Store.
type Option func(*Store) error

// WithDimension sets the embedding dimension. Default is seeded.DefaultDimension.
func WithDimension(dim int) Option {
	return func(s *Store) error {
		if dim < 1 {
			return fmt.Errorf("%w: %d", ErrInvalidDimension, dim)
		}
		s.dim = dim
		return nil
	}
}

// WithIndexPath sets the file the index persists to. The vectors land in a
// companion file next to it (see Save).
func WithIndexPath(path string) Option {
	return func(s *Store) error {
		s.indexPath = path
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewStore creates a vector store backed by the given embedder.
func NewStore(embedder ai.Embedder, opts ...Option) (*Store, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Store{
		embedder: embedder,
		dim:      seeded.DefaultDimension,
		docs:     make(map[core.ID]*core.Document),
		vectors:  make(map[core.ID][]float32),
		meta:     make(map[core.ID]*core.Metadata),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Dimension returns the configured embedding dimension.
func (s *Store) Dimension() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dim
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Document returns a stored document by ID.
func (s *Store) Document(id core.ID) (*core.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	return doc, ok
}

// Documents returns all stored documents in ascending ID order.
func (s *Store) Documents() []*core.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]*core.Document, 0, len(s.docs))
	for _, id := range slices.Sorted(maps.Keys(s.docs)) {
		docs = append(docs, s.docs[id])
	}
	return docs
}

// Add stores a document, deriving its embedding from title and content.
// Adding an existing ID overwrites the document, its vector and its metadata.
func (s *Store) Add(ctx context.Context, doc *core.Document) error {
	if err := core.ValidateDocument(doc); err != nil {
		return err
	}

	vector, err := s.embedder.EmbedText(ctx, doc.Title+" "+doc.Content)
	if err != nil {
		return fmt.Errorf("embedding document: %w", err)
	}
	return s.AddWithVector(ctx, doc, vector)
}

// AddWithVector stores a document with a caller-supplied embedding.
// The vector is copied and L2-normalized before storage; the caller's slice
// is never mutated.
func (s *Store) AddWithVector(_ context.Context, doc *core.Document, vector []float32) error {
	if err := core.ValidateDocument(doc); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(vector) != s.dim {
		return fmt.Errorf("%w: got %d, store dimension is %d", ErrDimensionMismatch, len(vector), s.dim)
	}

	if doc.Id == 0 {
		doc.Id = core.NewDocumentID(doc.Title, doc.URL, doc.Content)
	}

	normalized := slices.Clone(vector)
	normalize(normalized)

	s.docs[doc.Id] = doc
	s.vectors[doc.Id] = normalized
	s.meta[doc.Id] = core.MetadataFromDocument(doc)
	s.lastUpdated = time.Now().UTC()
	return nil
}

// SearchText embeds the query text and runs a similarity search.
func (s *Store) SearchText(ctx context.Context, query string, filter Filter, maxResults int) ([]*core.SearchResult, error) {
	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	return s.SearchVector(ctx, vector, filter, maxResults)
}

// SearchVector ranks all stored documents by cosine similarity to the query
// vector, then walks the ranked list applying the metadata filter until
// maxResults matches are collected. Scoring is O(n) over the whole store
// regardless of the early stop. Ties break by ascending document ID so
// ordering is deterministic.
func (s *Store) SearchVector(_ context.Context, query []float32, filter Filter, maxResults int) ([]*core.SearchResult, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if maxResults <= 0 {
		return []*core.SearchResult{}, nil
	}

	normalized := slices.Clone(query)
	normalize(normalized)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(normalized) != s.dim {
		return nil, fmt.Errorf("%w: got %d, store dimension is %d", ErrDimensionMismatch, len(normalized), s.dim)
	}

	type scoredID struct {
		id    core.ID
		score float32
	}
	scored := make([]scoredID, 0, len(s.vectors))
	for id, vector := range s.vectors {
		scored = append(scored, scoredID{id: id, score: dotProduct(normalized, vector)})
	}

	slices.SortFunc(scored, func(a, b scoredID) int {
		if a.score > b.score {
			return -1
		}
		if a.score < b.score {
			return 1
		}
		if a.id < b.id {
			return -1
		}
		if a.id > b.id {
			return 1
		}
		return 0
	})

	results := make([]*core.SearchResult, 0, maxResults)
	for _, candidate := range scored {
		if !filter.matches(s.meta[candidate.id]) {
			continue
		}
		similarity := float64(candidate.score)
		results = append(results, &core.SearchResult{
			Document:   s.docs[candidate.id],
			Score:      similarity,
			Similarity: similarity,
		})
		if len(results) == maxResults {
			break
		}
	}

	return results, nil
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// normalize scales the vector to unit length in place.
// A zero vector is left unchanged.
func normalize(vector []float32) {
	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares == 0 {
		return
	}
	inv := 1 / math.Sqrt(sumSquares)
	for i := range vector {
		vector[i] = float32(float64(vector[i]) * inv)
	}
}
