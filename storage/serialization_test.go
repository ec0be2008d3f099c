package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/verdant/core"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("carbon emissions")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.Len(t, data, 8)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestMarshalID_Ordering(t *testing.T) {
	// Big-endian encoding keeps numeric order under lexicographic comparison,
	// which the date index relies on.
	small := MarshalID(core.ID(1))
	large := MarshalID(core.ID(1 << 40))
	assert.Less(t, string(small), string(large))
}

func TestUnmarshalID_Truncated(t *testing.T) {
	for _, data := range [][]byte{nil, {}, {1, 2, 3}} {
		_, err := UnmarshalID(data)
		assert.ErrorIs(t, err, ErrTruncatedData)
	}
}

func TestMarshalUnmarshalDocument(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	doc := &core.Document{
		Id:       core.ID(7),
		Title:    "Apple sustainability report",
		Content:  "Carbon emissions fell to 500 tCO2e.",
		Source:   "sec",
		Category: "emissions",
		Company:  "Apple",
		Report:   true,
		Date:     now,
		Entities: core.EntityMap{
			Companies: []core.CompanyMention{{Name: "apple", Ticker: "AAPL", Sector: "Technology", Mentions: 2}},
			Metrics:   []core.MetricMention{{Name: "carbon emissions", Value: "500", Unit: "tCO2e", Category: "emissions", Mentions: 1}},
		},
		Topics:    []core.Topic{{Name: "climate", Confidence: 30, Matches: 3}},
		Summary:   "Carbon emissions fell to 500 tCO2e.",
		Sentiment: core.Sentiment{Score: 40, Label: core.SentimentPositive, Positive: 2},
		Relevance: core.Relevance{Score: 75, Label: core.RelevanceHigh, EntityCount: 2, HasMetrics: true},
	}

	data, err := MarshalDocument(doc)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalDocument(data)
	require.NoError(t, err)
	assert.Equal(t, doc.Id, decoded.Id)
	assert.Equal(t, doc.Title, decoded.Title)
	assert.Equal(t, doc.Entities, decoded.Entities)
	assert.Equal(t, doc.Topics, decoded.Topics)
	assert.Equal(t, doc.Sentiment, decoded.Sentiment)
	assert.Equal(t, doc.Relevance, decoded.Relevance)
	assert.True(t, doc.Date.Equal(decoded.Date))
}

func TestUnmarshalDocument_Invalid(t *testing.T) {
	_, err := UnmarshalDocument([]byte("not json"))
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
