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


package search

import (
	"strings"

	"github.com/poiesic/verdant/core"
)

// Composite ranking weights for realtime results. Index-path results arrive
// pre-ranked; only live-collected documents are scored here.
const (
	realtimeBaseScore          = 1.0
	realtimeTitleMatchWeight   = 10.0
	realtimeContentMatchWeight = 2.0
	realtimeContentMatchCap    = 10
	realtimeReportBonus        = 20.0
	realtimeRelevanceWeight    = 0.5
)

// realtimeScore ranks a live-collected document against the query terms.
// Title hits dominate, content hits are capped so verbose documents cannot
// drown out precise ones, and sustainability reports get a flat bonus.
func realtimeScore(doc *core.Document, terms []string) float64 {
	title := strings.ToLower(doc.Title)
	content := strings.ToLower(doc.Content)

	titleMatches := 0
	contentMatches := 0
	for _, term := range terms {
		titleMatches += strings.Count(title, term)
		contentMatches += strings.Count(content, term)
	}
	if contentMatches > realtimeContentMatchCap {
		contentMatches = realtimeContentMatchCap
	}

	score := realtimeBaseScore +
		realtimeTitleMatchWeight*float64(titleMatches) +
		realtimeContentMatchWeight*float64(contentMatches) +
		realtimeRelevanceWeight*doc.Relevance.Score
	if doc.Report {
		score += realtimeReportBonus
	}
	return score
}

// queryTerms lowercases and splits a query for realtime match counting.
func queryTerms(queryText string) []string {
	return strings.Fields(strings.ToLower(queryText))
}
