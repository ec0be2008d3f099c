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


// Package verdant assembles the sustainability search engine: entity
// extraction, document enrichment, vector and keyword retrieval, and the
// search orchestrator, behind one facade.
package verdant

import (
	"context"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/poiesic/verdant/ai"
	"github.com/poiesic/verdant/ai/openai"
	"github.com/poiesic/verdant/ai/seeded"
	"github.com/poiesic/verdant/core"
	"github.com/poiesic/verdant/enrich"
	"github.com/poiesic/verdant/entity"
	"github.com/poiesic/verdant/index"
	"github.com/poiesic/verdant/ingestion"
	"github.com/poiesic/verdant/query"
	"github.com/poiesic/verdant/search"
	"github.com/poiesic/verdant/storage"
	"github.com/poiesic/verdant/storage/badger"
	redisstore "github.com/poiesic/verdant/storage/redis"
	"github.com/poiesic/verdant/vector"
)

// Engine wires the whole search core together. Construct one per process
// and share it; all components are safe for concurrent use.
type Engine struct {
	backend  *badger.Backend
	repo     storage.DocumentRepository
	store    *vector.Store
	index    *index.Index
	enricher *enrich.Processor
	analyzer *query.Analyzer
	pipeline *ingestion.Pipeline
	searcher *search.Searcher
	logger   *slog.Logger

	indexPath string
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig       *ai.Config
	embedder       ai.Embedder
	dimension      int
	indexPath      string
	dictionaryFile string
	cacheTTL       time.Duration
	poolSize       int
	redisClient    *goredis.Client
	collectors     []search.SourceCollector
	monitor        search.SearchMonitor
	inMemory       bool
}

// WithAIConfig uses a real embedding model via an OpenAI-compatible API
// instead of the default hash-seeded embedder.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithEmbedder injects a custom embedder. Takes precedence over WithAIConfig.
func WithEmbedder(embedder ai.Embedder) EngineOption {
	return func(o *engineOptions) {
		o.embedder = embedder
	}
}

// WithDimension sets the embedding dimension for the default embedder and
// the vector store.
func WithDimension(dim int) EngineOption {
	return func(o *engineOptions) {
		o.dimension = dim
	}
}

// WithVectorIndexPath enables JSON persistence for the vector store. The
// store loads from this path at startup and saves on Close.
func WithVectorIndexPath(path string) EngineOption {
	return func(o *engineOptions) {
		o.indexPath = path
	}
}

// WithDictionaryFile merges a YAML entity dictionary over the built-ins.
func WithDictionaryFile(path string) EngineOption {
	return func(o *engineOptions) {
		o.dictionaryFile = path
	}
}

// WithCacheTTL overrides the ten-minute default for the query cache.
func WithCacheTTL(ttl time.Duration) EngineOption {
	return func(o *engineOptions) {
		o.cacheTTL = ttl
	}
}

// WithPoolSize sets the number of concurrent ingestion workers.
func WithPoolSize(size int) EngineOption {
	return func(o *engineOptions) {
		o.poolSize = size
	}
}

// WithRedisCache shares the query cache across processes via Redis.
func WithRedisCache(client *goredis.Client) EngineOption {
	return func(o *engineOptions) {
		o.redisClient = client
	}
}

// WithCollectors registers realtime document sources.
func WithCollectors(collectors ...search.SourceCollector) EngineOption {
	return func(o *engineOptions) {
		o.collectors = append(o.collectors, collectors...)
	}
}

// WithMonitor sets the search lifecycle monitor.
func WithMonitor(monitor search.SearchMonitor) EngineOption {
	return func(o *engineOptions) {
		o.monitor = monitor
	}
}

// WithInMemoryStorage keeps document storage in memory. Intended for tests
// and throwaway environments.
func WithInMemoryStorage() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// NewEngine builds the engine over a BadgerDB directory at filePath.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Dictionaries and the extraction-driven components
	dicts := entity.DefaultDictionaries()
	if options.dictionaryFile != "" {
		loaded, err := entity.LoadDictionaries(options.dictionaryFile)
		if err != nil {
			return nil, err
		}
		dicts.Merge(loaded)
	}
	extractor := entity.NewExtractor(dicts)

	enricher, err := enrich.NewProcessor(extractor)
	if err != nil {
		return nil, err
	}
	analyzer, err := query.NewAnalyzer(extractor)
	if err != nil {
		return nil, err
	}

	embedder := options.embedder
	if embedder == nil {
		if options.aiConfig != nil {
			embedder, err = openai.NewEmbedder(options.aiConfig)
			if err != nil {
				return nil, err
			}
		} else {
			var seededOpts []seeded.Option
			if options.dimension > 0 {
				seededOpts = append(seededOpts, seeded.WithDimension(options.dimension))
			}
			embedder = seeded.NewEmbedder(seededOpts...)
		}
	}

	var storeOpts []vector.Option
	if options.dimension > 0 {
		storeOpts = append(storeOpts, vector.WithDimension(options.dimension))
	}
	if options.indexPath != "" {
		storeOpts = append(storeOpts, vector.WithIndexPath(options.indexPath))
	}
	store, err := vector.NewStore(embedder, storeOpts...)
	if err != nil {
		return nil, err
	}
	if options.indexPath != "" {
		if err := store.Load(); err != nil {
			return nil, err
		}
	}

	ix, err := index.NewIndex(store)
	if err != nil {
		return nil, err
	}
	// Rebuild keyword postings for documents loaded from disk.
	for _, doc := range store.Documents() {
		if err := ix.Add(doc); err != nil {
			return nil, err
		}
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}
	repo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	var pipelineOpts []ingestion.Option
	if options.poolSize > 0 {
		pipelineOpts = append(pipelineOpts, ingestion.WithPoolSize(options.poolSize))
	}
	pipeline, err := ingestion.NewPipeline(enricher, repo, store, ix, pipelineOpts...)
	if err != nil {
		repo.Close()
		backend.Close()
		return nil, err
	}

	cache, err := newCache(options)
	if err != nil {
		pipeline.Release()
		repo.Close()
		backend.Close()
		return nil, err
	}

	searchOpts := []search.Option{
		search.WithCache(cache),
		search.WithEnricher(enricher),
	}
	if len(options.collectors) > 0 {
		searchOpts = append(searchOpts, search.WithCollectors(options.collectors...))
	}
	if options.monitor != nil {
		searchOpts = append(searchOpts, search.WithMonitor(options.monitor))
	}
	searcher, err := search.NewSearcher(ix, analyzer, searchOpts...)
	if err != nil {
		pipeline.Release()
		repo.Close()
		backend.Close()
		return nil, err
	}

	return &Engine{
		backend:   backend,
		repo:      repo,
		store:     store,
		index:     ix,
		enricher:  enricher,
		analyzer:  analyzer,
		pipeline:  pipeline,
		searcher:  searcher,
		logger:    slog.Default(),
		indexPath: options.indexPath,
	}, nil
}

func newCache(options *engineOptions) (search.Cache, error) {
	if options.redisClient != nil {
		var redisOpts []redisstore.Option
		if options.cacheTTL > 0 {
			redisOpts = append(redisOpts, redisstore.WithTTL(options.cacheTTL))
		}
		return redisstore.NewQueryCache(options.redisClient, redisOpts...)
	}

	var memOpts []search.MemoryCacheOption
	if options.cacheTTL > 0 {
		memOpts = append(memOpts, search.WithTTL(options.cacheTTL))
	}
	return search.NewMemoryCache(memOpts...)
}

// Ingest enriches and stores a batch of documents.
func (e *Engine) Ingest(ctx context.Context, docs ...*core.Document) (*ingestion.Report, error) {
	return e.pipeline.Ingest(ctx, docs...)
}

// Search runs one search through the orchestrator.
func (e *Engine) Search(ctx context.Context, req search.Request) (*core.Response, error) {
	return e.searcher.Search(ctx, req)
}

// SaveIndex persists the vector store when an index path is configured.
// Save failures indicate data-loss risk and are returned, not swallowed.
func (e *Engine) SaveIndex() error {
	if e.indexPath == "" {
		return nil
	}
	return e.store.Save()
}

// EngineStats combines storage and search counters.
type EngineStats struct {
	Documents  int
	Indexed    int
	Searches   int64
	LastSearch time.Time
}

// Stats returns a snapshot of engine counters.
func (e *Engine) Stats(ctx context.Context) (EngineStats, error) {
	count, err := e.repo.CountDocuments(ctx)
	if err != nil {
		return EngineStats{}, err
	}
	searchStats := e.searcher.Stats()
	return EngineStats{
		Documents:  count,
		Indexed:    e.index.Len(),
		Searches:   searchStats.Searches,
		LastSearch: searchStats.LastSearch,
	}, nil
}

// DocumentRepository exposes document storage.
func (e *Engine) DocumentRepository() storage.DocumentRepository {
	return e.repo
}

// VectorStore exposes the vector store.
func (e *Engine) VectorStore() *vector.Store {
	return e.store
}

// Searcher exposes the search orchestrator.
func (e *Engine) Searcher() *search.Searcher {
	return e.searcher
}

// Close saves the vector index, stops the ingestion workers and closes
// storage.
func (e *Engine) Close() error {
	e.pipeline.Release()

	if err := e.SaveIndex(); err != nil {
		e.logger.Error("error saving vector index", "err", err)
		return err
	}
	if err := e.repo.Close(); err != nil {
		e.logger.Error("error closing document repository", "err", err)
		return err
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
