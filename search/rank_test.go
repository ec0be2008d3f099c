package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poiesic/verdant/core"
)

func TestRealtimeScore(t *testing.T) {
	terms := queryTerms("Solar Power")
	assert.Equal(t, []string{"solar", "power"}, terms)

	t.Run("composite formula", func(t *testing.T) {
		doc := &core.Document{
			Title:     "Solar solar expansion",
			Content:   strings.Repeat("solar ", 12) + "power",
			Report:    true,
			Relevance: core.Relevance{Score: 50},
		}

		// base 1 + 10*2 title + 2*min(10, 13) content + 20 report + 0.5*50.
		got := realtimeScore(doc, []string{"solar", "power"})
		assert.InDelta(t, 1+20+20+20+25, got, 1e-9)
	})

	t.Run("title matches dominate content matches", func(t *testing.T) {
		title := &core.Document{Title: "solar", Content: "nothing"}
		content := &core.Document{Title: "nothing", Content: "solar"}
		assert.Greater(t,
			realtimeScore(title, []string{"solar"}),
			realtimeScore(content, []string{"solar"}))
	})

	t.Run("report bonus breaks ties", func(t *testing.T) {
		plain := &core.Document{Title: "solar", Content: "x"}
		report := &core.Document{Title: "solar", Content: "x", Report: true}
		assert.InDelta(t, realtimeReportBonus,
			realtimeScore(report, []string{"solar"})-realtimeScore(plain, []string{"solar"}), 1e-9)
	})

	t.Run("no matches scores base only", func(t *testing.T) {
		doc := &core.Document{Title: "water", Content: "water"}
		assert.InDelta(t, realtimeBaseScore, realtimeScore(doc, []string{"solar"}), 1e-9)
	})
}
