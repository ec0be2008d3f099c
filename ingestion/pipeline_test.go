package ingestion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/verdant/ai/mock"
	"github.com/poiesic/verdant/core"
	"github.com/poiesic/verdant/enrich"
	"github.com/poiesic/verdant/entity"
	"github.com/poiesic/verdant/index"
	"github.com/poiesic/verdant/storage"
	badgerstore "github.com/poiesic/verdant/storage/badger"
	"github.com/poiesic/verdant/vector"
)

type pipelineFixture struct {
	pipeline *Pipeline
	repo     storage.DocumentRepository
	store    *vector.Store
	index    *index.Index
}

func newPipelineFixture(t *testing.T, opts ...Option) *pipelineFixture {
	t.Helper()

	enricher, err := enrich.NewProcessor(entity.NewExtractor(nil))
	require.NoError(t, err)

	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close(); backend.Close() })

	store, err := vector.NewStore(mock.NewMockEmbedder(), vector.WithDimension(8))
	require.NoError(t, err)
	ix, err := index.NewIndex(store)
	require.NoError(t, err)

	pipeline, err := NewPipeline(enricher, repo, store, ix, opts...)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return &pipelineFixture{pipeline: pipeline, repo: repo, store: store, index: ix}
}

func TestNewPipeline(t *testing.T) {
	f := newPipelineFixture(t)
	enricher, err := enrich.NewProcessor(entity.NewExtractor(nil))
	require.NoError(t, err)

	t.Run("nil enricher", func(t *testing.T) {
		_, err := NewPipeline(nil, f.repo, f.store, f.index)
		assert.Equal(t, ErrEnricherRequired, err)
	})

	t.Run("nil repository", func(t *testing.T) {
		_, err := NewPipeline(enricher, nil, f.store, f.index)
		assert.Equal(t, ErrRepositoryRequired, err)
	})

	t.Run("nil store", func(t *testing.T) {
		_, err := NewPipeline(enricher, f.repo, nil, f.index)
		assert.Equal(t, ErrVectorStoreRequired, err)
	})

	t.Run("nil index", func(t *testing.T) {
		_, err := NewPipeline(enricher, f.repo, f.store, nil)
		assert.Equal(t, ErrIndexRequired, err)
	})

	t.Run("invalid pool size", func(t *testing.T) {
		_, err := NewPipeline(enricher, f.repo, f.store, f.index, WithPoolSize(0))
		assert.Equal(t, ErrInvalidPoolSize, err)
	})
}

func TestIngest(t *testing.T) {
	f := newPipelineFixture(t)
	ctx := context.Background()

	docs := []*core.Document{
		{Title: "Apple sustainability update", Content: "Apple cut carbon emissions to 500 tCO2e this year."},
		{Title: "Water usage study", Content: "Water usage fell across the sector."},
		{Title: "Grid expansion", Content: "Renewable energy capacity grew again."},
	}

	report, err := f.pipeline.Ingest(ctx, docs...)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Ingested)
	assert.Zero(t, report.Failed)
	assert.Empty(t, report.Errors)

	t.Run("documents land in every sink", func(t *testing.T) {
		count, err := f.repo.CountDocuments(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
		assert.Equal(t, 3, f.store.Len())
		assert.Equal(t, 3, f.index.Len())
	})

	// Enrichment works on a copy, so the stored ID is content-derived from
	// the raw fields rather than written back to the input.
	appleID := core.NewDocumentID(docs[0].Title, docs[0].URL, docs[0].Content)

	t.Run("documents are enriched on the way in", func(t *testing.T) {
		stored, err := f.repo.GetDocument(ctx, appleID)
		require.NoError(t, err)
		assert.NotEmpty(t, stored.Entities.Companies)
		assert.Positive(t, stored.Relevance.Score)
	})

	t.Run("ingested documents are searchable", func(t *testing.T) {
		results, err := f.index.Search(ctx, "carbon emissions", core.ModeKeyword, 10)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, appleID, results[0].Document.Id)
	})
}

func TestIngestPartialFailure(t *testing.T) {
	f := newPipelineFixture(t)

	report, err := f.pipeline.Ingest(context.Background(),
		&core.Document{Title: "Valid", Content: "real content"},
		&core.Document{Title: "No content"},
		&core.Document{},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Ingested)
	assert.Equal(t, 2, report.Failed)
	require.Len(t, report.Errors, 2)
	for _, e := range report.Errors {
		assert.ErrorIs(t, e, core.ErrInvalidDocument)
	}
}

func TestIngestEmptyBatch(t *testing.T) {
	f := newPipelineFixture(t)

	report, err := f.pipeline.Ingest(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Ingested)
	assert.Zero(t, report.Failed)
}

func TestIngestWithPoolSize(t *testing.T) {
	f := newPipelineFixture(t, WithPoolSize(2))

	docs := make([]*core.Document, 20)
	for i := range docs {
		docs[i] = &core.Document{
			Title:   "Doc " + string(rune('a'+i)),
			Content: "solar content " + string(rune('a'+i)),
		}
	}

	report, err := f.pipeline.Ingest(context.Background(), docs...)
	require.NoError(t, err)
	assert.Equal(t, 20, report.Ingested)
	assert.Equal(t, 20, f.store.Len())
}
