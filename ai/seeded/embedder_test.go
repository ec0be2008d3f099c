package seeded

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedText_Deterministic(t *testing.T) {
	e := NewEmbedder()
	ctx := context.Background()

	first, err := e.EmbedText(ctx, "carbon emissions report")
	require.NoError(t, err)
	second, err := e.EmbedText(ctx, "carbon emissions report")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, DefaultDimension)
}

func TestEmbedText_DifferentTexts(t *testing.T) {
	e := NewEmbedder()
	ctx := context.Background()

	a, err := e.EmbedText(ctx, "solar power")
	require.NoError(t, err)
	b, err := e.EmbedText(ctx, "water usage")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestEmbedText_UnitLength(t *testing.T) {
	e := NewEmbedder(WithDimension(64))
	ctx := context.Background()

	for _, text := range []string{"a", "hello world", "a much longer piece of text about sustainability"} {
		vector, err := e.EmbedText(ctx, text)
		require.NoError(t, err)

		var sumSquares float64
		for _, v := range vector {
			sumSquares += float64(v) * float64(v)
		}
		assert.InDelta(t, 1.0, math.Sqrt(sumSquares), 1e-5, "norm for %q", text)
	}
}

func TestWithDimension(t *testing.T) {
	assert.Equal(t, 32, NewEmbedder(WithDimension(32)).Dimension())
	assert.Equal(t, DefaultDimension, NewEmbedder(WithDimension(0)).Dimension())
	assert.Equal(t, DefaultDimension, NewEmbedder().Dimension())
}

func TestEmbedTexts(t *testing.T) {
	e := NewEmbedder(WithDimension(16))
	ctx := context.Background()

	texts := []string{"one", "two", "three"}
	vectors, err := e.EmbedTexts(ctx, texts)
	require.NoError(t, err)
	require.Len(t, vectors, len(texts))

	// Batch results match single-text results element for element.
	for i, text := range texts {
		single, err := e.EmbedText(ctx, text)
		require.NoError(t, err)
		assert.Equal(t, single, vectors[i])
	}
}
