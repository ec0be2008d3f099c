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


// Package search orchestrates the full query path: cache lookup, query
// understanding, retrieval dispatch, ranking, filtering and cache store.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/poiesic/verdant/core"
	"github.com/poiesic/verdant/enrich"
	"github.com/poiesic/verdant/index"
	"github.com/poiesic/verdant/query"
)

// DefaultMaxResults bounds a search when the caller does not say otherwise.
const DefaultMaxResults = 20

// Request carries one search call. The zero values of Mode, MaxResults and
// SkipCache select the defaults: hybrid mode, DefaultMaxResults, cache on.
type Request struct {
	Query      string
	Mode       core.SearchMode
	Filters    *Filters
	MaxResults int
	SkipCache  bool
}

// Stats is a snapshot of the orchestrator's observability counters.
type Stats struct {
	Searches   int64
	LastSearch time.Time
}

// Searcher is the top-level search orchestrator. A single instance is meant
// to be shared; all state is either immutable after construction or guarded.
type Searcher struct {
	index      *index.Index
	analyzer   *query.Analyzer
	enricher   *enrich.Processor
	cache      Cache
	collectors []SourceCollector
	monitor    SearchMonitor
	logger     *slog.Logger

	searches   atomic.Int64
	lastSearch atomic.Int64
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithCache sets the response cache.
// Default is an in-process MemoryCache with the default TTL.
func WithCache(cache Cache) Option {
	return func(s *Searcher) error {
		if cache != nil {
			s.cache = cache
		}
		return nil
	}
}

// WithMonitor sets the search lifecycle monitor.
func WithMonitor(monitor SearchMonitor) Option {
	return func(s *Searcher) error {
		if monitor != nil {
			s.monitor = monitor
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithCollectors registers the realtime document sources.
func WithCollectors(collectors ...SourceCollector) Option {
	return func(s *Searcher) error {
		s.collectors = append(s.collectors, collectors...)
		return nil
	}
}

// WithEnricher enables enrichment of realtime documents before ranking, so
// their relevance scores participate in the composite score.
func WithEnricher(enricher *enrich.Processor) Option {
	return func(s *Searcher) error {
		s.enricher = enricher
		return nil
	}
}

// NewSearcher creates a search orchestrator over a keyword index and query
// analyzer.
func NewSearcher(ix *index.Index, analyzer *query.Analyzer, opts ...Option) (*Searcher, error) {
	if ix == nil {
		return nil, ErrIndexRequired
	}
	if analyzer == nil {
		return nil, ErrAnalyzerRequired
	}

	s := &Searcher{
		index:    ix,
		analyzer: analyzer,
		monitor:  noopMonitor{},
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.cache == nil {
		cache, err := NewMemoryCache()
		if err != nil {
			return nil, err
		}
		s.cache = cache
	}

	return s, nil
}

// Search runs one search end to end and always returns a well-formed
// response on success. Invalid mode or filter input fails fast; retrieval
// problems downstream surface as diagnostics, not errors.
func (s *Searcher) Search(ctx context.Context, req Request) (*core.Response, error) {
	queryText := strings.TrimSpace(req.Query)
	if queryText == "" {
		return nil, ErrEmptyQuery
	}

	mode := req.Mode
	if mode == 0 {
		mode = core.ModeHybrid
	}
	if err := core.ValidateSearchMode(mode); err != nil {
		return nil, err
	}
	if err := req.Filters.Validate(); err != nil {
		return nil, err
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	s.searches.Add(1)
	s.lastSearch.Store(time.Now().UnixNano())
	s.monitor.SearchStarted(queryText, mode.String())

	key := CacheKey(queryText, mode, req.Filters)
	if !req.SkipCache {
		if cached, ok := s.cache.Get(ctx, key); ok {
			s.monitor.CacheHit(queryText, mode.String())
			s.monitor.SearchCompleted(queryText, mode.String(), cached.ResultCount, cached.SearchTime)
			return cached, nil
		}
	}

	start := time.Now()
	analysis := s.analyzer.Analyze(queryText)

	var (
		results     []*core.SearchResult
		diagnostics []string
		err         error
	)
	if mode == core.ModeRealtime {
		results, diagnostics = s.collectRealtime(ctx, queryText, maxResults)
	} else {
		results, err = s.index.Search(ctx, analysis.Expanded, mode, maxResults)
		if err != nil {
			return nil, err
		}
	}

	results = req.Filters.Apply(results)

	response := &core.Response{
		Query:       queryText,
		Analysis:    analysis,
		Mode:        mode,
		ModeName:    mode.String(),
		ResultCount: len(results),
		Results:     results,
		SearchTime:  time.Since(start),
		Diagnostics: diagnostics,
	}

	if !req.SkipCache {
		s.cache.Set(ctx, key, response)
	}
	s.monitor.SearchCompleted(queryText, mode.String(), response.ResultCount, response.SearchTime)
	return response, nil
}

// collectRealtime gathers documents from every registered source and ranks
// them with the composite realtime score. A failing source contributes zero
// documents and one diagnostic; it never fails the search.
func (s *Searcher) collectRealtime(ctx context.Context, queryText string, maxResults int) ([]*core.SearchResult, []string) {
	terms := queryTerms(queryText)

	var (
		results     []*core.SearchResult
		diagnostics []string
	)
	for _, collector := range s.collectors {
		docs, err := collector.Collect(ctx, queryText)
		if err != nil {
			s.logger.Warn("realtime source failed",
				"source", collector.Name(),
				"error", err)
			s.monitor.SourceFailed(collector.Name(), err)
			diagnostics = append(diagnostics, fmt.Sprintf("source %s: %v", collector.Name(), err))
			continue
		}

		for _, doc := range docs {
			if doc == nil {
				continue
			}
			if doc.Id == 0 {
				doc.Id = core.NewDocumentID(doc.Title, doc.URL, doc.Content)
			}
			doc = s.enrichRealtime(doc)
			results = append(results, &core.SearchResult{
				Document: doc,
				Score:    realtimeScore(doc, terms),
			})
		}
	}

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

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, diagnostics
}

// enrichRealtime enriches a live-collected document, falling back to the
// raw document when enrichment fails.
func (s *Searcher) enrichRealtime(doc *core.Document) *core.Document {
	if s.enricher == nil {
		return doc
	}
	enriched, err := s.enricher.Process(doc)
	if err != nil {
		s.logger.Debug("realtime enrichment failed, using raw document",
			"document_id", doc.Id,
			"error", err)
		return doc
	}
	return enriched
}

// Stats returns the current search counters.
func (s *Searcher) Stats() Stats {
	stats := Stats{Searches: s.searches.Load()}
	if nanos := s.lastSearch.Load(); nanos != 0 {
		stats.LastSearch = time.Unix(0, nanos)
	}
	return stats
}
