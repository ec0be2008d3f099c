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


// Package query turns a raw query string into structured query understanding:
// extracted entities, detected intents and an expanded query for broader
// keyword recall.
package query

import (
	"strings"

	"github.com/poiesic/verdant/core"
	"github.com/poiesic/verdant/entity"
)

// comparisonWords signal a comparison intent.
var comparisonWords = []string{"compare", "comparison", " vs ", " vs. ", "versus"}

// measurementWords signal a metrics-seeking intent.
var measurementWords = []string{
	"how much", "how many", "metric", "metrics", "value", "kpi",
	"measure", "measured", "target", "targets",
}

// Analyzer performs query understanding. It reuses the entity extractor over
// the query text itself, so query entities come from the same dictionaries as
// document entities.
type Analyzer struct {
	extractor *entity.Extractor
}

// NewAnalyzer creates a query analyzer.
func NewAnalyzer(extractor *entity.Extractor) (*Analyzer, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	return &Analyzer{extractor: extractor}, nil
}

// Analyze extracts entities and intents from the raw query and builds the
// expanded query: the original text followed by the distinct entity names
// found, deduplicated. Analysis is pure; a fresh QueryAnalysis is produced
// per call.
func (a *Analyzer) Analyze(raw string) *core.QueryAnalysis {
	entities := a.extractor.Extract(raw, raw)

	seen := make(map[string]bool)
	var names []string
	for _, name := range entities.Names() {
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	expanded := raw
	if len(names) > 0 {
		expanded = raw + " " + strings.Join(names, " ")
	}

	return &core.QueryAnalysis{
		Original: raw,
		Expanded: expanded,
		Entities: names,
		Intents:  detectIntents(raw),
	}
}

// detectIntents runs the fixed intent classifier. information_seeking is the
// default when nothing else matches.
func detectIntents(raw string) []core.Intent {
	lower := strings.ToLower(raw)

	var intents []core.Intent
	for _, word := range comparisonWords {
		if strings.Contains(lower, word) {
			intents = append(intents, core.IntentComparison)
			break
		}
	}
	for _, word := range measurementWords {
		if strings.Contains(lower, word) {
			intents = append(intents, core.IntentMetricsSeeking)
			break
		}
	}
	if len(intents) == 0 {
		intents = append(intents, core.IntentInformationSeeking)
	}
	return intents
}
