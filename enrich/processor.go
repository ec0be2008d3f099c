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


package enrich

import (
	"log/slog"
	"maps"
	"math"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/poiesic/verdant/core"
	"github.com/poiesic/verdant/entity"
)

// NoSummary is returned when no sentence scores above zero.
const NoSummary = "No significant sustainability content identified."

const maxSummarySentences = 5

// Sentiment score bands for labeling.
const (
	sentimentPositiveAbove = 30
	sentimentNegativeBelow = -30
)

// Relevance score formula weights.
const (
	relevanceEntityWeight    = 5.0
	relevanceEntityCap       = 50.0
	relevanceTopicWeight     = 0.3
	relevanceTopicCap        = 30.0
	relevanceMetricValue     = 20.0
	relevanceHighThreshold   = 70.0
	relevanceMediumThreshold = 40.0
)

type topicBucket struct {
	name     string
	patterns []*regexp.Regexp
}

// Processor enriches raw documents with entities, topics, an extractive
// summary, sentiment and a relevance score.
//
// Process returns an error instead of a partially-enriched document; callers
// decide explicitly whether to fall back to the raw document. Enrichment of
// independent documents may run concurrently: a Processor holds no mutable state.
type Processor struct {
	extractor *entity.Extractor
	buckets   []topicBucket
	logger    *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewProcessor creates a document processor using the given entity extractor.
func NewProcessor(extractor *entity.Extractor, opts ...Option) (*Processor, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}

	buckets := make([]topicBucket, 0, len(topicKeywords))
	for _, name := range slices.Sorted(maps.Keys(topicKeywords)) {
		bucket := topicBucket{name: name}
		for _, keyword := range topicKeywords[name] {
			bucket.patterns = append(bucket.patterns,
				regexp.MustCompile(`\b`+regexp.QuoteMeta(keyword)+`\b`))
		}
		buckets = append(buckets, bucket)
	}

	p := &Processor{
		extractor: extractor,
		buckets:   buckets,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Process enriches a document and returns the enriched copy.
// The input document is not modified. On error the caller should fall back to
// the raw document; enrichment failure is never fatal to ingestion.
func (p *Processor) Process(doc *core.Document) (*core.Document, error) {
	if err := core.ValidateDocument(doc); err != nil {
		return nil, err
	}

	enriched := *doc
	content := strings.ToLower(doc.Content)

	enriched.Entities = p.extractor.Extract(doc.Title, doc.Content)
	enriched.Topics = p.classifyTopics(content)
	enriched.Summary = p.summarize(doc.Content)
	enriched.Sentiment = p.scoreSentiment(content)
	enriched.Relevance = p.scoreRelevance(&enriched)

	return &enriched, nil
}

// classifyTopics counts whole-word keyword matches per bucket.
// Confidence is min(100, 10*matches); zero-match buckets are omitted and the
// result is sorted by confidence descending, name ascending on ties.
func (p *Processor) classifyTopics(content string) []core.Topic {
	var topics []core.Topic
	for _, bucket := range p.buckets {
		matches := 0
		for _, pattern := range bucket.patterns {
			matches += len(pattern.FindAllStringIndex(content, -1))
		}
		if matches == 0 {
			continue
		}
		confidence := matches * 10
		if confidence > 100 {
			confidence = 100
		}
		topics = append(topics, core.Topic{
			Name:       bucket.name,
			Confidence: confidence,
			Matches:    matches,
		})
	}

	sort.SliceStable(topics, func(i, j int) bool {
		if topics[i].Confidence != topics[j].Confidence {
			return topics[i].Confidence > topics[j].Confidence
		}
		return topics[i].Name < topics[j].Name
	})
	return topics
}

var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// summarize keeps the top sentences by sustainability keyword density,
// preserving their original order. Ties break by position.
func (p *Processor) summarize(content string) string {
	sentences := splitSentences(content)
	if len(sentences) == 0 {
		return NoSummary
	}

	type scored struct {
		index int
		score int
	}
	ranked := make([]scored, 0, len(sentences))
	for i, sentence := range sentences {
		lower := strings.ToLower(sentence)
		score := 0
		for _, bucket := range p.buckets {
			for _, pattern := range bucket.patterns {
				score += len(pattern.FindAllStringIndex(lower, -1))
			}
		}
		if score > 0 {
			ranked = append(ranked, scored{index: i, score: score})
		}
	}
	if len(ranked) == 0 {
		return NoSummary
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if len(ranked) > maxSummarySentences {
		ranked = ranked[:maxSummarySentences]
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].index < ranked[j].index
	})

	parts := make([]string, len(ranked))
	for i, s := range ranked {
		parts[i] = strings.TrimSpace(sentences[s.index])
	}
	return strings.Join(parts, " ")
}

// splitSentences splits on sentence punctuation followed by whitespace.
func splitSentences(content string) []string {
	raw := sentenceBoundary.Split(content, -1)
	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		if strings.TrimSpace(s) != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// scoreSentiment counts positive and negative term occurrences (substring
// matching) and normalizes the balance to -100..100.
func (p *Processor) scoreSentiment(content string) core.Sentiment {
	positive := 0
	for _, term := range positiveTerms {
		positive += strings.Count(content, term)
	}
	negative := 0
	for _, term := range negativeTerms {
		negative += strings.Count(content, term)
	}

	score := 0
	if positive+negative > 0 {
		score = int(math.Round(100 * float64(positive-negative) / float64(positive+negative)))
	}

	label := core.SentimentNeutral
	switch {
	case score > sentimentPositiveAbove:
		label = core.SentimentPositive
	case score < sentimentNegativeBelow:
		label = core.SentimentNegative
	}

	return core.Sentiment{
		Score:    score,
		Label:    label,
		Positive: positive,
		Negative: negative,
	}
}

// scoreRelevance combines entity count, top topic confidence and the presence
// of a measured metric value into a 0-100 score.
func (p *Processor) scoreRelevance(doc *core.Document) core.Relevance {
	entityCount := doc.Entities.Count()

	score := math.Min(relevanceEntityCap, float64(entityCount)*relevanceEntityWeight)
	if len(doc.Topics) > 0 {
		score += math.Min(relevanceTopicCap, float64(doc.Topics[0].Confidence)*relevanceTopicWeight)
	}
	hasMetrics := doc.Entities.HasMetricValue()
	if hasMetrics {
		score += relevanceMetricValue
	}

	label := core.RelevanceLow
	switch {
	case score >= relevanceHighThreshold:
		label = core.RelevanceHigh
	case score >= relevanceMediumThreshold:
		label = core.RelevanceMedium
	}

	return core.Relevance{
		Score:       score,
		Label:       label,
		EntityCount: entityCount,
		HasMetrics:  hasMetrics,
	}
}
