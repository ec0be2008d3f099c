package enrich

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/verdant/core"
	"github.com/poiesic/verdant/entity"
)

func newTestProcessor(t *testing.T) *Processor {
	t.Helper()
	p, err := NewProcessor(entity.NewExtractor(nil))
	require.NoError(t, err)
	return p
}

func TestNewProcessor(t *testing.T) {
	t.Run("nil extractor", func(t *testing.T) {
		_, err := NewProcessor(nil)
		assert.Equal(t, ErrExtractorRequired, err)
	})

	t.Run("valid", func(t *testing.T) {
		p, err := NewProcessor(entity.NewExtractor(nil))
		require.NoError(t, err)
		assert.NotNil(t, p)
	})
}

func TestProcess_DoesNotMutateInput(t *testing.T) {
	p := newTestProcessor(t)

	doc := &core.Document{
		Title:   "Apple emissions update",
		Content: "Apple reduced carbon emissions by 500 tCO2e.",
	}

	enriched, err := p.Process(doc)
	require.NoError(t, err)

	assert.NotSame(t, doc, enriched)
	assert.Empty(t, doc.Summary)
	assert.Zero(t, doc.Entities.Count())
	assert.NotZero(t, enriched.Entities.Count())
	assert.NotEmpty(t, enriched.Summary)
}

func TestProcess_InvalidDocument(t *testing.T) {
	p := newTestProcessor(t)

	_, err := p.Process(&core.Document{})
	assert.ErrorIs(t, err, core.ErrInvalidDocument)

	_, err = p.Process(nil)
	assert.ErrorIs(t, err, core.ErrInvalidDocument)
}

func TestClassifyTopics(t *testing.T) {
	p := newTestProcessor(t)

	t.Run("confidence is ten per match capped at 100", func(t *testing.T) {
		doc := &core.Document{
			Title:   "t",
			Content: "carbon carbon emissions", // 3 emissions-bucket matches
		}
		enriched, err := p.Process(doc)
		require.NoError(t, err)

		require.NotEmpty(t, enriched.Topics)
		top := enriched.Topics[0]
		assert.Equal(t, "emissions", top.Name)
		assert.Equal(t, 3, top.Matches)
		assert.Equal(t, 30, top.Confidence)

		many := strings.Repeat("carbon ", 25)
		enriched, err = p.Process(&core.Document{Title: "t", Content: many})
		require.NoError(t, err)
		require.NotEmpty(t, enriched.Topics)
		assert.Equal(t, 100, enriched.Topics[0].Confidence)
		assert.Equal(t, 25, enriched.Topics[0].Matches)
	})

	t.Run("sorted by confidence then name", func(t *testing.T) {
		doc := &core.Document{
			Title:   "t",
			Content: "carbon emissions and water and wastewater and solar",
		}
		enriched, err := p.Process(doc)
		require.NoError(t, err)

		for i := 1; i < len(enriched.Topics); i++ {
			prev, cur := enriched.Topics[i-1], enriched.Topics[i]
			ordered := prev.Confidence > cur.Confidence ||
				(prev.Confidence == cur.Confidence && prev.Name < cur.Name)
			assert.True(t, ordered, "topics out of order at %d", i)
		}
	})

	t.Run("zero-match buckets omitted", func(t *testing.T) {
		enriched, err := p.Process(&core.Document{Title: "t", Content: "nothing relevant here"})
		require.NoError(t, err)
		assert.Empty(t, enriched.Topics)
	})
}

func TestSummarize(t *testing.T) {
	p := newTestProcessor(t)

	t.Run("keeps top sentences in original order", func(t *testing.T) {
		content := "The weather was fine. " +
			"Carbon emissions dropped by half. " +
			"Lunch was served at noon. " +
			"Renewable energy now powers the plant."
		enriched, err := p.Process(&core.Document{Title: "t", Content: content})
		require.NoError(t, err)

		assert.Contains(t, enriched.Summary, "Carbon emissions dropped")
		assert.Contains(t, enriched.Summary, "Renewable energy now powers")
		assert.NotContains(t, enriched.Summary, "Lunch")
		assert.Less(t,
			strings.Index(enriched.Summary, "Carbon"),
			strings.Index(enriched.Summary, "Renewable"))
	})

	t.Run("at most five sentences", func(t *testing.T) {
		var b strings.Builder
		for range 12 {
			b.WriteString("Carbon emissions fell again this year. ")
		}
		enriched, err := p.Process(&core.Document{Title: "t", Content: b.String()})
		require.NoError(t, err)
		assert.Equal(t, maxSummarySentences,
			strings.Count(enriched.Summary, "Carbon emissions fell"))
	})

	t.Run("fallback when nothing scores", func(t *testing.T) {
		enriched, err := p.Process(&core.Document{Title: "t", Content: "Cats sleep. Dogs bark."})
		require.NoError(t, err)
		assert.Equal(t, NoSummary, enriched.Summary)
	})
}

func TestScoreSentiment(t *testing.T) {
	p := newTestProcessor(t)

	tests := []struct {
		name    string
		content string
		label   core.SentimentLabel
	}{
		{"positive", "We achieved a milestone and exceeded targets, an award-winning success.", core.SentimentPositive},
		{"negative", "The lawsuit followed a violation, a fine and an oil spill.", core.SentimentNegative},
		{"neutral when empty", "The report covers fiscal year 2025.", core.SentimentNeutral},
		{"neutral when balanced", "The milestone success was offset by a lawsuit and a violation.", core.SentimentNeutral},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			enriched, err := p.Process(&core.Document{Title: "t", Content: tc.content})
			require.NoError(t, err)
			assert.Equal(t, tc.label, enriched.Sentiment.Label)
			assert.GreaterOrEqual(t, enriched.Sentiment.Score, -100)
			assert.LessOrEqual(t, enriched.Sentiment.Score, 100)
		})
	}
}

func TestScoreRelevance(t *testing.T) {
	p := newTestProcessor(t)

	t.Run("bounded 0 to 100", func(t *testing.T) {
		dense := "Apple Microsoft Tesla Shell Unilever Nestle report under csrd sfdr " +
			"gri sasb tcfd cdp with net zero and carbon neutral targets. " +
			"Carbon emissions fell to 500 tCO2e while water usage and recycling rate improved. " +
			strings.Repeat("carbon ", 20)
		enriched, err := p.Process(&core.Document{Title: "t", Content: dense})
		require.NoError(t, err)

		assert.LessOrEqual(t, enriched.Relevance.Score, 100.0)
		assert.Equal(t, core.RelevanceHigh, enriched.Relevance.Label)
		assert.True(t, enriched.Relevance.HasMetrics)
		assert.Equal(t, enriched.Entities.Count(), enriched.Relevance.EntityCount)
	})

	t.Run("irrelevant document scores low", func(t *testing.T) {
		enriched, err := p.Process(&core.Document{Title: "t", Content: "A story about cats."})
		require.NoError(t, err)
		assert.Zero(t, enriched.Relevance.Score)
		assert.Equal(t, core.RelevanceLow, enriched.Relevance.Label)
		assert.False(t, enriched.Relevance.HasMetrics)
	})

	t.Run("metric value adds twenty", func(t *testing.T) {
		without, err := p.Process(&core.Document{Title: "t", Content: "We track carbon emissions closely."})
		require.NoError(t, err)
		with, err := p.Process(&core.Document{Title: "t", Content: "We track carbon emissions of 500 tCO2e closely."})
		require.NoError(t, err)
		assert.InDelta(t, relevanceMetricValue, with.Relevance.Score-without.Relevance.Score, 0.001)
	})
}
