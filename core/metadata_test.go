package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataFromDocument(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	doc := &Document{
		Title:    "Apple sustainability report",
		Content:  "Carbon emissions fell.",
		Category: "news",
		Source:   "sec",
		Company:  "Apple",
		Industry: "Technology",
		Date:     date,
		Entities: EntityMap{
			Companies: []CompanyMention{
				{Name: "apple", Mentions: 2},
				{Name: "apple", Mentions: 1}, // duplicates collapse
				{Name: "tesla", Mentions: 1},
			},
			Metrics: []MetricMention{
				{Name: "carbon emissions", Category: "emissions"},
				{Name: "scope 1 emissions", Category: "emissions"},
				{Name: "water usage", Category: "water"},
			},
			Frameworks: []FrameworkMention{{Name: "gri"}},
		},
		Topics: []Topic{{Name: "climate", Matches: 3}, {Name: "reporting", Matches: 1}},
	}

	meta := MetadataFromDocument(doc)
	require.NotNil(t, meta)

	assert.Equal(t, "news", meta.Category)
	assert.Equal(t, "sec", meta.Source)
	assert.True(t, date.Equal(meta.Date))
	assert.Equal(t, []string{"emissions", "water"}, meta.SustainabilityCategories)
	assert.Equal(t, []string{"climate", "reporting"}, meta.ESGTopics)
	assert.Equal(t, []string{"apple", "tesla"}, meta.MentionedCompanies)
	assert.Equal(t, []string{"gri"}, meta.Frameworks)

	t.Run("pure and repeatable", func(t *testing.T) {
		assert.Equal(t, meta, MetadataFromDocument(doc))
	})

	t.Run("effective date falls back", func(t *testing.T) {
		scraped := &Document{Title: "t", Content: "c", ScrapedAt: date}
		assert.True(t, date.Equal(MetadataFromDocument(scraped).Date))
	})

	t.Run("zero document yields empty lists", func(t *testing.T) {
		meta := MetadataFromDocument(&Document{Title: "t", Content: "c"})
		assert.Empty(t, meta.SustainabilityCategories)
		assert.Empty(t, meta.MentionedCompanies)
	})
}
