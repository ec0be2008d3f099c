package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/verdant/ai/mock"
	"github.com/poiesic/verdant/core"
	"github.com/poiesic/verdant/entity"
	"github.com/poiesic/verdant/index"
	"github.com/poiesic/verdant/query"
	"github.com/poiesic/verdant/vector"
)

type stubCollector struct {
	name string
	docs []*core.Document
	err  error
}

func (s *stubCollector) Name() string { return s.name }

func (s *stubCollector) Collect(context.Context, string) ([]*core.Document, error) {
	return s.docs, s.err
}

type recordingMonitor struct {
	mu        sync.Mutex
	started   int
	cacheHits int
	failures  []string
	completed int
}

func (m *recordingMonitor) SearchStarted(string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started++
}

func (m *recordingMonitor) CacheHit(string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits++
}

func (m *recordingMonitor) SourceFailed(source string, _ error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, source)
}

func (m *recordingMonitor) SearchCompleted(string, string, int, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completed++
}

type searchFixture struct {
	searcher *Searcher
	index    *index.Index
	store    *vector.Store
	cache    *MemoryCache
	now      *time.Time
	monitor  *recordingMonitor
}

func newFixture(t *testing.T, opts ...Option) *searchFixture {
	t.Helper()

	store, err := vector.NewStore(mock.NewMockEmbedder(), vector.WithDimension(8))
	require.NoError(t, err)
	ix, err := index.NewIndex(store)
	require.NoError(t, err)
	analyzer, err := query.NewAnalyzer(entity.NewExtractor(nil))
	require.NoError(t, err)

	cache, err := NewMemoryCache()
	require.NoError(t, err)
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	monitor := &recordingMonitor{}
	opts = append([]Option{WithCache(cache), WithMonitor(monitor)}, opts...)
	searcher, err := NewSearcher(ix, analyzer, opts...)
	require.NoError(t, err)

	return &searchFixture{
		searcher: searcher,
		index:    ix,
		store:    store,
		cache:    cache,
		now:      &now,
		monitor:  monitor,
	}
}

func (f *searchFixture) add(t *testing.T, docs ...*core.Document) {
	t.Helper()
	for _, doc := range docs {
		require.NoError(t, f.store.Add(context.Background(), doc))
		require.NoError(t, f.index.Add(doc))
	}
}

func TestNewSearcher(t *testing.T) {
	f := newFixture(t)

	t.Run("nil index", func(t *testing.T) {
		analyzer, err := query.NewAnalyzer(entity.NewExtractor(nil))
		require.NoError(t, err)
		_, err = NewSearcher(nil, analyzer)
		assert.Equal(t, ErrIndexRequired, err)
	})

	t.Run("nil analyzer", func(t *testing.T) {
		_, err := NewSearcher(f.index, nil)
		assert.Equal(t, ErrAnalyzerRequired, err)
	})
}

func TestSearch_FailFast(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("empty query", func(t *testing.T) {
		_, err := f.searcher.Search(ctx, Request{Query: "   "})
		assert.Equal(t, ErrEmptyQuery, err)
	})

	t.Run("unsupported mode", func(t *testing.T) {
		_, err := f.searcher.Search(ctx, Request{Query: "q", Mode: core.SearchMode(42)})
		assert.ErrorIs(t, err, core.ErrUnsupportedMode)
	})

	t.Run("malformed filter", func(t *testing.T) {
		_, err := f.searcher.Search(ctx, Request{
			Query:   "q",
			Filters: &Filters{DateRange: &DateRange{}},
		})
		assert.ErrorIs(t, err, core.ErrMalformedFilter)
	})
}

func TestSearch_Defaults(t *testing.T) {
	f := newFixture(t)
	f.add(t, &core.Document{Title: "Solar", Content: "solar power"})

	response, err := f.searcher.Search(context.Background(), Request{Query: "solar"})
	require.NoError(t, err)

	assert.Equal(t, core.ModeHybrid, response.Mode)
	assert.Equal(t, "hybrid", response.ModeName)
	assert.Equal(t, "solar", response.Query)
	assert.Equal(t, len(response.Results), response.ResultCount)
	require.NotNil(t, response.Analysis)
	assert.Equal(t, "solar", response.Analysis.Original)
}

func TestSearch_CacheRoundtrip(t *testing.T) {
	f := newFixture(t)
	f.add(t, &core.Document{Title: "Solar", Content: "solar power"})
	ctx := context.Background()

	req := Request{Query: "solar", Mode: core.ModeKeyword}

	first, err := f.searcher.Search(ctx, req)
	require.NoError(t, err)

	t.Run("hit within ttl returns payload verbatim", func(t *testing.T) {
		*f.now = f.now.Add(5 * time.Minute)
		second, err := f.searcher.Search(ctx, req)
		require.NoError(t, err)
		assert.Same(t, first, second)
		assert.Equal(t, first.SearchTime, second.SearchTime)
		assert.Equal(t, 1, f.monitor.cacheHits)
	})

	t.Run("expired entry triggers a fresh search", func(t *testing.T) {
		*f.now = f.now.Add(601 * time.Second)
		third, err := f.searcher.Search(ctx, req)
		require.NoError(t, err)
		assert.NotSame(t, first, third)
		assert.Equal(t, first.ResultCount, third.ResultCount)
	})

	t.Run("different mode misses", func(t *testing.T) {
		hits := f.monitor.cacheHits
		_, err := f.searcher.Search(ctx, Request{Query: "solar", Mode: core.ModeVector})
		require.NoError(t, err)
		assert.Equal(t, hits, f.monitor.cacheHits)
	})

	t.Run("skip cache stores nothing", func(t *testing.T) {
		before := f.cache.Len()
		_, err := f.searcher.Search(ctx, Request{Query: "never cached", Mode: core.ModeKeyword, SkipCache: true})
		require.NoError(t, err)
		assert.Equal(t, before, f.cache.Len())
	})
}

func TestSearch_FiltersNarrowResults(t *testing.T) {
	f := newFixture(t)
	docs := []*core.Document{
		{Title: "Plant emissions dropped", Content: "solar plant output", Category: "emissions"},
		{Title: "Water report", Content: "solar powered water pumps", Category: "water"},
		{Title: "Grid emissions study", Content: "solar grid data", Category: "emissions"},
	}
	f.add(t, docs...)
	ctx := context.Background()

	unfiltered, err := f.searcher.Search(ctx, Request{Query: "solar", Mode: core.ModeKeyword, SkipCache: true})
	require.NoError(t, err)
	require.Len(t, unfiltered.Results, 3)

	filtered, err := f.searcher.Search(ctx, Request{
		Query:     "solar",
		Mode:      core.ModeKeyword,
		Filters:   &Filters{Category: "emissions"},
		SkipCache: true,
	})
	require.NoError(t, err)
	require.Len(t, filtered.Results, 2)
	assert.Equal(t, 2, filtered.ResultCount)

	// The surviving results keep their relative ranking.
	var kept []core.ID
	for _, r := range unfiltered.Results {
		if r.Document.Category == "emissions" {
			kept = append(kept, r.Document.Id)
		}
	}
	require.Len(t, kept, 2)
	assert.Equal(t, kept[0], filtered.Results[0].Document.Id)
	assert.Equal(t, kept[1], filtered.Results[1].Document.Id)
}

func TestSearch_MaxResults(t *testing.T) {
	f := newFixture(t)
	for i := range 30 {
		f.add(t, &core.Document{
			Title:   "solar",
			Content: "solar doc " + string(rune('a'+i)),
		})
	}
	ctx := context.Background()

	response, err := f.searcher.Search(ctx, Request{Query: "solar", Mode: core.ModeKeyword, SkipCache: true})
	require.NoError(t, err)
	assert.Len(t, response.Results, DefaultMaxResults)

	response, err = f.searcher.Search(ctx, Request{Query: "solar", Mode: core.ModeKeyword, MaxResults: 5, SkipCache: true})
	require.NoError(t, err)
	assert.Len(t, response.Results, 5)
}

func TestSearch_Realtime(t *testing.T) {
	ctx := context.Background()

	good := &stubCollector{
		name: "newsfeed",
		docs: []*core.Document{
			{Title: "solar update", Content: "solar solar solar"},
			{Title: "water note", Content: "unrelated"},
		},
	}
	failing := &stubCollector{name: "scraper", err: errors.New("connection refused")}

	f := newFixture(t, WithCollectors(good, failing))

	response, err := f.searcher.Search(ctx, Request{Query: "solar", Mode: core.ModeRealtime, SkipCache: true})
	require.NoError(t, err)

	t.Run("failing source contributes zero docs and a diagnostic", func(t *testing.T) {
		require.Len(t, response.Diagnostics, 1)
		assert.Contains(t, response.Diagnostics[0], "scraper")
		assert.Equal(t, []string{"scraper"}, f.monitor.failures)
	})

	t.Run("surviving sources are ranked", func(t *testing.T) {
		require.Len(t, response.Results, 2)
		assert.Equal(t, "solar update", response.Results[0].Document.Title)
		assert.Greater(t, response.Results[0].Score, response.Results[1].Score)
	})

	t.Run("all sources failing yields empty well-formed response", func(t *testing.T) {
		bad := newFixture(t, WithCollectors(failing))
		response, err := bad.searcher.Search(ctx, Request{Query: "solar", Mode: core.ModeRealtime, SkipCache: true})
		require.NoError(t, err)
		assert.Zero(t, response.ResultCount)
		assert.Empty(t, response.Results)
		assert.Len(t, response.Diagnostics, 1)
	})
}

func TestSearch_Stats(t *testing.T) {
	f := newFixture(t)
	f.add(t, &core.Document{Title: "Solar", Content: "solar"})
	ctx := context.Background()

	assert.Zero(t, f.searcher.Stats().Searches)
	assert.True(t, f.searcher.Stats().LastSearch.IsZero())

	for range 3 {
		_, err := f.searcher.Search(ctx, Request{Query: "solar", SkipCache: true})
		require.NoError(t, err)
	}

	stats := f.searcher.Stats()
	assert.Equal(t, int64(3), stats.Searches)
	assert.False(t, stats.LastSearch.IsZero())
}
