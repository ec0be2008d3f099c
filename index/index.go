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


// Package index provides keyword-oriented retrieval over enriched documents
// and the uniform search contract across keyword, vector and hybrid modes.
package index

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/poiesic/verdant/core"
	"github.com/poiesic/verdant/vector"
)

// Hybrid merge weights. The keyword score is normalized to [0,1] against the
// best keyword hit in the candidate set, then the weighted components are
// summed. A document found by both strategies therefore strictly outranks
// what either strategy alone would have given it.
const (
	hybridKeywordWeight = 1.0
	hybridVectorWeight  = 1.0
)

// titleTermWeight makes title tokens count double in term frequencies,
// mirroring the entity extractor's doubled-title haystack.
const titleTermWeight = 2

// Index is the keyword-mode retrieval structure: an inverted index from token
// to per-document term frequency. Vector and hybrid modes delegate to the
// vector store the index was built with.
//
// Reads are safe against concurrent Adds at per-document granularity.
type Index struct {
	mu       sync.RWMutex
	postings map[string]map[core.ID]int
	docs     map[core.ID]*core.Document
	store    *vector.Store
	logger   *slog.Logger
}

// Option configures an Index.
type Option func(*Index) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Index) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
		return nil
	}
}

// NewIndex creates a keyword index that shares documents with the given
// vector store.
func NewIndex(store *vector.Store, opts ...Option) (*Index, error) {
	if store == nil {
		return nil, ErrVectorStoreRequired
	}

	ix := &Index{
		postings: make(map[string]map[core.ID]int),
		docs:     make(map[core.ID]*core.Document),
		store:    store,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(ix); err != nil {
			return nil, err
		}
	}

	return ix, nil
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

// Add indexes a document's title and content tokens.
// Re-adding an existing ID replaces its postings.
func (ix *Index) Add(doc *core.Document) error {
	if err := core.ValidateDocument(doc); err != nil {
		return err
	}
	if doc.Id == 0 {
		doc.Id = core.NewDocumentID(doc.Title, doc.URL, doc.Content)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	if _, exists := ix.docs[doc.Id]; exists {
		ix.removeLocked(doc.Id)
	}

	for _, token := range tokenize(doc.Title) {
		ix.bump(token, doc.Id, titleTermWeight)
	}
	for _, token := range tokenize(doc.Content) {
		ix.bump(token, doc.Id, 1)
	}
	ix.docs[doc.Id] = doc
	return nil
}

func (ix *Index) bump(token string, id core.ID, weight int) {
	byDoc, ok := ix.postings[token]
	if !ok {
		byDoc = make(map[core.ID]int)
		ix.postings[token] = byDoc
	}
	byDoc[id] += weight
}

func (ix *Index) removeLocked(id core.ID) {
	for token, byDoc := range ix.postings {
		delete(byDoc, id)
		if len(byDoc) == 0 {
			delete(ix.postings, token)
		}
	}
	delete(ix.docs, id)
}

// Search runs retrieval in the given mode and returns up to maxResults hits
// sorted by score descending, document ID ascending on ties.
// ModeRealtime is not a retrieval mode of the index; the orchestrator owns it.
func (ix *Index) Search(ctx context.Context, queryText string, mode core.SearchMode, maxResults int) ([]*core.SearchResult, error) {
	switch mode {
	case core.ModeKeyword:
		return ix.searchKeyword(queryText, maxResults), nil
	case core.ModeVector:
		return ix.store.SearchText(ctx, queryText, nil, maxResults)
	case core.ModeHybrid:
		return ix.searchHybrid(ctx, queryText, maxResults)
	case core.ModeRealtime:
		return nil, fmt.Errorf("%w: realtime is handled by the search orchestrator", core.ErrUnsupportedMode)
	default:
		return nil, fmt.Errorf("%w: %d", core.ErrUnsupportedMode, int(mode))
	}
}

// searchKeyword scores documents by summed term frequency over query tokens.
func (ix *Index) searchKeyword(queryText string, maxResults int) []*core.SearchResult {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	scores := ix.keywordScores(queryText)
	results := make([]*core.SearchResult, 0, len(scores))
	for id, score := range scores {
		results = append(results, &core.SearchResult{
			Document:     ix.docs[id],
			Score:        float64(score),
			KeywordScore: float64(score),
		})
	}

	sortResults(results)
	if maxResults >= 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// keywordScores must be called with at least a read lock held.
func (ix *Index) keywordScores(queryText string) map[core.ID]int {
	scores := make(map[core.ID]int)
	for _, token := range tokenize(queryText) {
		for id, count := range ix.postings[token] {
			scores[id] += count
		}
	}
	return scores
}

// searchHybrid merges keyword and vector retrieval. Candidates found by both
// strategies get both weighted contributions; single-strategy candidates keep
// their own. The merge map keys by document ID, so no document appears twice.
func (ix *Index) searchHybrid(ctx context.Context, queryText string, maxResults int) ([]*core.SearchResult, error) {
	similar, err := ix.store.SearchText(ctx, queryText, nil, maxResults)
	if err != nil {
		return nil, err
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	kwScores := ix.keywordScores(queryText)
	maxKw := 0
	for _, score := range kwScores {
		if score > maxKw {
			maxKw = score
		}
	}

	type contribution struct {
		doc *core.Document
		kw  float64
		sim float64
	}
	merged := make(map[core.ID]*contribution, len(kwScores)+len(similar))

	for id, score := range kwScores {
		merged[id] = &contribution{
			doc: ix.docs[id],
			kw:  float64(score) / float64(maxKw),
		}
	}
	for _, hit := range similar {
		c, ok := merged[hit.Document.Id]
		if !ok {
			c = &contribution{doc: hit.Document}
			merged[hit.Document.Id] = c
		}
		c.sim = hit.Similarity
	}

	results := make([]*core.SearchResult, 0, len(merged))
	for _, c := range merged {
		results = append(results, &core.SearchResult{
			Document:     c.doc,
			Score:        hybridKeywordWeight*c.kw + hybridVectorWeight*c.sim,
			KeywordScore: c.kw,
			Similarity:   c.sim,
		})
	}

	sortResults(results)
	if maxResults >= 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// sortResults orders by score descending, then document ID ascending so that
// equal-scored results have a stable, deterministic order.
func sortResults(results []*core.SearchResult) {
	slices.SortFunc(results, func(a, b *core.SearchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		if a.Document.Id < b.Document.Id {
			return -1
		}
		if a.Document.Id > b.Document.Id {
			return 1
		}
		return 0
	})
}
