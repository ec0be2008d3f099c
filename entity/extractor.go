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


package entity

import (
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/poiesic/verdant/core"
)

// Extractor scans raw text for sustainability domain entities using
// dictionary lookup and proximity regexes. Extraction is a pure function over
// the dictionaries the extractor was built with; an Extractor is safe for
// concurrent use.
type Extractor struct {
	dicts   *Dictionaries
	wordRe  map[string]*regexp.Regexp // whole-word mention counters, keyed by entity name
	valueRe map[string]*regexp.Regexp // metric value proximity matchers, keyed by metric name
}

// metricValuePattern matches a number (and optional unit) within the same
// sentence after a metric name. Group 1 is the value, group 2 the unit.
const metricValuePattern = `[^.!?\n]{0,60}?(\d[\d,.]*)\s*([A-Za-z%][A-Za-z0-9/%$]*)?`

// NewExtractor creates an extractor for the given dictionaries.
// Passing nil uses the built-in defaults. All match patterns are compiled once
// up front so Extract stays allocation-light.
func NewExtractor(dicts *Dictionaries) *Extractor {
	if dicts == nil {
		dicts = DefaultDictionaries()
	}

	e := &Extractor{
		dicts:   dicts,
		wordRe:  make(map[string]*regexp.Regexp),
		valueRe: make(map[string]*regexp.Regexp),
	}

	compile := func(name string) {
		if _, ok := e.wordRe[name]; !ok {
			e.wordRe[name] = regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
		}
	}
	for name := range dicts.Companies {
		compile(name)
	}
	for name := range dicts.Metrics {
		compile(name)
		e.valueRe[name] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name) + metricValuePattern)
	}
	for name := range dicts.Initiatives {
		compile(name)
	}
	for name := range dicts.Regulations {
		compile(name)
	}
	for name := range dicts.Frameworks {
		compile(name)
	}

	return e
}

// Extract scans title and content for dictionary entities.
// The title is weighted double in the haystack so title hits always register.
// Mention counts are whole-word, case-insensitive. Dictionary entries are
// visited in sorted name order so output is deterministic.
func (e *Extractor) Extract(title, content string) core.EntityMap {
	haystack := strings.ToLower(title) + " " + strings.ToLower(title) + " " + strings.ToLower(content)
	// Value extraction runs over the original text so units keep their casing.
	raw := title + " " + content

	var entities core.EntityMap

	for _, name := range slices.Sorted(maps.Keys(e.dicts.Companies)) {
		if !strings.Contains(haystack, name) {
			continue
		}
		mentions := e.countMentions(name, haystack)
		if mentions == 0 {
			// Substring pre-check hit inside a longer word, e.g. "pineapple".
			continue
		}
		attrs := e.dicts.Companies[name]
		entities.Companies = append(entities.Companies, core.CompanyMention{
			Name:     name,
			Ticker:   attrs.Ticker,
			Sector:   attrs.Sector,
			Mentions: mentions,
		})
	}

	for _, name := range slices.Sorted(maps.Keys(e.dicts.Metrics)) {
		if !strings.Contains(haystack, name) {
			continue
		}
		mentions := e.countMentions(name, haystack)
		if mentions == 0 {
			continue
		}
		attrs := e.dicts.Metrics[name]
		value, unit := e.extractMetricValue(name, raw)
		if unit == "" {
			unit = attrs.Unit
		}
		entities.Metrics = append(entities.Metrics, core.MetricMention{
			Name:     name,
			Value:    value,
			Unit:     unit,
			Category: attrs.Category,
			Mentions: mentions,
		})
	}

	for _, name := range slices.Sorted(maps.Keys(e.dicts.Initiatives)) {
		if !strings.Contains(haystack, name) {
			continue
		}
		mentions := e.countMentions(name, haystack)
		if mentions == 0 {
			continue
		}
		attrs := e.dicts.Initiatives[name]
		entities.Initiatives = append(entities.Initiatives, core.InitiativeMention{
			Name:     name,
			Kind:     attrs.Kind,
			Mentions: mentions,
		})
	}

	for _, name := range slices.Sorted(maps.Keys(e.dicts.Regulations)) {
		if !strings.Contains(haystack, name) {
			continue
		}
		mentions := e.countMentions(name, haystack)
		if mentions == 0 {
			continue
		}
		attrs := e.dicts.Regulations[name]
		entities.Regulations = append(entities.Regulations, core.RegulationMention{
			Name:         name,
			Jurisdiction: attrs.Jurisdiction,
			Mentions:     mentions,
		})
	}

	for _, name := range slices.Sorted(maps.Keys(e.dicts.Frameworks)) {
		if !strings.Contains(haystack, name) {
			continue
		}
		mentions := e.countMentions(name, haystack)
		if mentions == 0 {
			continue
		}
		attrs := e.dicts.Frameworks[name]
		entities.Frameworks = append(entities.Frameworks, core.FrameworkMention{
			Name:     name,
			FullName: attrs.FullName,
			Mentions: mentions,
		})
	}

	return entities
}

// countMentions counts whole-word occurrences of name in the haystack.
func (e *Extractor) countMentions(name, haystack string) int {
	re, ok := e.wordRe[name]
	if !ok {
		return 0
	}
	return len(re.FindAllStringIndex(haystack, -1))
}

// extractMetricValue looks for a numeric value (and unit) near the metric name.
// Returns empty strings when no value is present within the same sentence.
func (e *Extractor) extractMetricValue(name, raw string) (value, unit string) {
	re, ok := e.valueRe[name]
	if !ok {
		return "", ""
	}
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return "", ""
	}
	value = strings.TrimRight(m[1], ",.")
	if len(m) > 2 {
		unit = m[2]
	}
	return value, unit
}
