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
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/verdant/core"
)

// Filters narrows a result list after retrieval. All set fields must match
// (logical AND). The zero value matches every document.
type Filters struct {
	Category  string     `json:"category,omitempty"`
	Source    string     `json:"source,omitempty"`
	Company   string     `json:"company,omitempty"`
	DateRange *DateRange `json:"date_range,omitempty"`
}

// DateRange bounds a document's effective date, inclusive on both ends.
// A zero Start or End leaves that side unbounded.
type DateRange struct {
	Start time.Time `json:"start,omitzero"`
	End   time.Time `json:"end,omitzero"`
}

// Validate fails fast on filters that cannot match anything sensibly.
func (f *Filters) Validate() error {
	if f == nil {
		return nil
	}
	if f.DateRange != nil {
		r := f.DateRange
		if r.Start.IsZero() && r.End.IsZero() {
			return fmt.Errorf("%w: date_range has neither start nor end", core.ErrMalformedFilter)
		}
		if !r.Start.IsZero() && !r.End.IsZero() && r.Start.After(r.End) {
			return fmt.Errorf("%w: date_range start after end", core.ErrMalformedFilter)
		}
	}
	return nil
}

// IsZero reports whether no filter field is set.
func (f *Filters) IsZero() bool {
	return f == nil || (f.Category == "" && f.Source == "" && f.Company == "" && f.DateRange == nil)
}

// Apply returns the results whose documents match, preserving order.
func (f *Filters) Apply(results []*core.SearchResult) []*core.SearchResult {
	if f.IsZero() {
		return results
	}
	kept := make([]*core.SearchResult, 0, len(results))
	for _, r := range results {
		if f.Match(r.Document) {
			kept = append(kept, r)
		}
	}
	return kept
}

// Match reports whether a document passes every set filter field.
func (f *Filters) Match(doc *core.Document) bool {
	if doc == nil {
		return false
	}
	if f.Category != "" && !f.matchCategory(doc) {
		return false
	}
	if f.Source != "" && !strings.EqualFold(doc.Source, f.Source) {
		return false
	}
	if f.Company != "" && !f.matchCompany(doc) {
		return false
	}
	if f.DateRange != nil && !f.matchDate(doc) {
		return false
	}
	return true
}

// matchCategory accepts a match on the document's own category or on any
// extracted metric's category, so "emissions" finds documents that report
// emissions metrics even when filed under another heading.
func (f *Filters) matchCategory(doc *core.Document) bool {
	if strings.EqualFold(doc.Category, f.Category) {
		return true
	}
	for _, m := range doc.Entities.Metrics {
		if strings.EqualFold(m.Category, f.Category) {
			return true
		}
	}
	return false
}

// matchCompany accepts the company field, a title mention, or an extracted
// company entity.
func (f *Filters) matchCompany(doc *core.Document) bool {
	if strings.EqualFold(doc.Company, f.Company) {
		return true
	}
	if strings.Contains(strings.ToLower(doc.Title), strings.ToLower(f.Company)) {
		return true
	}
	for _, c := range doc.Entities.Companies {
		if strings.EqualFold(c.Name, f.Company) {
			return true
		}
	}
	return false
}

func (f *Filters) matchDate(doc *core.Document) bool {
	d := doc.EffectiveDate()
	if d.IsZero() {
		return false
	}
	r := f.DateRange
	if !r.Start.IsZero() && d.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && d.After(r.End) {
		return false
	}
	return true
}
