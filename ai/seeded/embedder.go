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


// Package seeded provides the default placeholder embedder: a deterministic
// pseudo-random vector seeded by a content hash. It is not a learned
// embedding; it exists so the vector store works end to end without an
// external model, and any real ai.Embedder can replace it.
package seeded

import (
	"context"
	"math"

	"github.com/poiesic/verdant/ai"
	"github.com/poiesic/verdant/core"
)

// DefaultDimension is the embedding dimension used when none is configured.
const DefaultDimension = 768

// LCG constants (Knuth MMIX).
const (
	lcgMultiplier = 6364136223846793005
	lcgIncrement  = 1442695040888963407
)

// Embedder generates deterministic unit vectors from text content.
// The same text always produces the identical vector.
type Embedder struct {
	dim int
}

var _ ai.Embedder = (*Embedder)(nil)

// Option configures an Embedder.
type Option func(*Embedder)

// WithDimension sets the embedding dimension.
// Values below 1 fall back to DefaultDimension.
func WithDimension(dim int) Option {
	return func(e *Embedder) {
		if dim >= 1 {
			e.dim = dim
		}
	}
}

// NewEmbedder creates a hash-seeded embedder.
func NewEmbedder(opts ...Option) *Embedder {
	e := &Embedder{dim: DefaultDimension}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dimension returns the embedding dimension.
func (e *Embedder) Dimension() int {
	return e.dim
}

// EmbedText generates a deterministic embedding seeded by the BLAKE2b hash of
// the text. The result is L2-normalized.
func (e *Embedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	state := uint64(core.IDFromContent(text))

	vector := make([]float32, e.dim)
	for i := range vector {
		state = state*lcgMultiplier + lcgIncrement
		// Top 53 bits give a uniform value in [0,1), mapped to [-1,1).
		vector[i] = float32(float64(state>>11)/float64(1<<53)*2 - 1)
	}

	normalize(vector)
	return vector, nil
}

// EmbedTexts generates deterministic embeddings for multiple texts.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector, err := e.EmbedText(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vector
	}
	return vectors, nil
}

// normalize scales the vector to unit length in place.
// A zero vector is left unchanged.
func normalize(vector []float32) {
	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares == 0 {
		return
	}
	inv := 1 / math.Sqrt(sumSquares)
	for i := range vector {
		vector[i] = float32(float64(vector[i]) * inv)
	}
}
