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


// Package ingestion runs documents through enrichment and into storage, the
// vector store and the keyword index. Documents in a batch are processed
// concurrently; each document is independent.
package ingestion

import (
	"context"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/verdant/core"
	"github.com/poiesic/verdant/enrich"
	"github.com/poiesic/verdant/index"
	"github.com/poiesic/verdant/storage"
	"github.com/poiesic/verdant/vector"
)

const defaultPoolSize = 8

// Report summarizes one ingestion batch.
type Report struct {
	Ingested int
	Failed   int
	Errors   []error
}

// Pipeline ingests documents. Enrichment failure falls back to the raw
// document; storage or indexing failure fails that document only.
type Pipeline struct {
	enricher *enrich.Processor
	repo     storage.DocumentRepository
	store    *vector.Store
	index    *index.Index
	pool     *ants.Pool
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the number of concurrent ingestion workers.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return ErrInvalidPoolSize
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool.Release()
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an ingestion pipeline over the given sinks.
func NewPipeline(enricher *enrich.Processor, repo storage.DocumentRepository, store *vector.Store, ix *index.Index, opts ...Option) (*Pipeline, error) {
	if enricher == nil {
		return nil, ErrEnricherRequired
	}
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if store == nil {
		return nil, ErrVectorStoreRequired
	}
	if ix == nil {
		return nil, ErrIndexRequired
	}

	pool, err := ants.NewPool(defaultPoolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		enricher: enricher,
		repo:     repo,
		store:    store,
		index:    ix,
		pool:     pool,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.pool.Release()
			return nil, err
		}
	}

	return p, nil
}

// Ingest processes a batch of documents and blocks until every document has
// either landed in all sinks or failed. The report carries per-document
// failures; a partial batch is not rolled back.
func (p *Pipeline) Ingest(ctx context.Context, docs ...*core.Document) (*Report, error) {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		report Report
	)

	for _, doc := range docs {
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			err := p.ingestOne(ctx, doc)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed++
				report.Errors = append(report.Errors, err)
				return
			}
			report.Ingested++
		})
		if err != nil {
			wg.Done()
			mu.Lock()
			report.Failed++
			report.Errors = append(report.Errors, err)
			mu.Unlock()
		}
	}

	wg.Wait()
	return &report, nil
}

// ingestOne enriches one document and writes it to storage, the vector
// store and the keyword index.
func (p *Pipeline) ingestOne(ctx context.Context, doc *core.Document) error {
	if err := core.ValidateDocument(doc); err != nil {
		return err
	}

	enriched, err := p.enricher.Process(doc)
	if err != nil {
		p.logger.Warn("enrichment failed, ingesting raw document",
			"document_id", doc.Id,
			"title", doc.Title,
			"error", err)
		enriched = doc
	}

	if _, err := p.repo.AddDocuments(ctx, enriched); err != nil {
		return err
	}
	if err := p.store.Add(ctx, enriched); err != nil {
		return err
	}
	return p.index.Add(enriched)
}

// Release shuts down the worker pool. In-flight tasks finish first.
func (p *Pipeline) Release() {
	p.pool.Release()
}
