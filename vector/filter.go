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


package vector

import (
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/verdant/core"
)

// Filter restricts similarity search to documents whose metadata record
// matches every condition. Conditions are ANDed pure predicates.
//
// Supported keys are the metadata field names (category, source, author,
// company, industry, sustainability_categories, esg_topics,
// mentioned_companies, frameworks), plus:
//   - "<field>_any": value is a string list; matches when the field shares at
//     least one value with it
//   - "<field>_all": value is a string list; matches when the field contains
//     every value in it
//   - "date_range": value is a 2-element list of times or RFC 3339 / 2006-01-02
//     strings; matches when the metadata date falls inside it, inclusive
//
// A nil Filter matches everything.
type Filter map[string]any

const (
	anySuffix    = "_any"
	allSuffix    = "_all"
	dateRangeKey = "date_range"
)

// Validate checks the filter is well-formed: known field names, list values
// where a suffix demands one, and a parseable 2-element date range. Malformed
// filters are caller contract violations and fail fast.
func (f Filter) Validate() error {
	for key, value := range f {
		if key == dateRangeKey {
			if _, _, err := parseDateRange(value); err != nil {
				return err
			}
			continue
		}

		field := strings.TrimSuffix(strings.TrimSuffix(key, anySuffix), allSuffix)
		if !knownField(field) {
			return fmt.Errorf("%w: unknown field %q", core.ErrMalformedFilter, key)
		}
		if key != field {
			if _, err := stringList(key, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// matches reports whether a metadata record passes every condition.
// The filter must have been validated; malformed conditions never match.
func (f Filter) matches(meta *core.Metadata) bool {
	if len(f) == 0 {
		return true
	}
	if meta == nil {
		return false
	}

	for key, value := range f {
		if key == dateRangeKey {
			start, end, err := parseDateRange(value)
			if err != nil {
				return false
			}
			if meta.Date.IsZero() || meta.Date.Before(start) || meta.Date.After(end) {
				return false
			}
			continue
		}

		switch {
		case strings.HasSuffix(key, anySuffix):
			wanted, err := stringList(key, value)
			if err != nil {
				return false
			}
			if !matchAny(fieldValues(meta, strings.TrimSuffix(key, anySuffix)), wanted) {
				return false
			}
		case strings.HasSuffix(key, allSuffix):
			wanted, err := stringList(key, value)
			if err != nil {
				return false
			}
			if !matchAll(fieldValues(meta, strings.TrimSuffix(key, allSuffix)), wanted) {
				return false
			}
		default:
			wanted := fmt.Sprintf("%v", value)
			if !contains(fieldValues(meta, key), wanted) {
				return false
			}
		}
	}
	return true
}

// fieldValues returns the metadata values under a field name. Scalar fields
// come back as a single-element slice.
func fieldValues(meta *core.Metadata, field string) []string {
	switch field {
	case "category":
		return scalar(meta.Category)
	case "source":
		return scalar(meta.Source)
	case "author":
		return scalar(meta.Author)
	case "company":
		return scalar(meta.Company)
	case "industry":
		return scalar(meta.Industry)
	case "sustainability_categories":
		return meta.SustainabilityCategories
	case "esg_topics":
		return meta.ESGTopics
	case "mentioned_companies":
		return meta.MentionedCompanies
	case "frameworks":
		return meta.Frameworks
	default:
		return nil
	}
}

func knownField(field string) bool {
	switch field {
	case "category", "source", "author", "company", "industry",
		"sustainability_categories", "esg_topics", "mentioned_companies", "frameworks":
		return true
	}
	return false
}

func scalar(value string) []string {
	if value == "" {
		return nil
	}
	return []string{value}
}

func contains(values []string, wanted string) bool {
	for _, v := range values {
		if strings.EqualFold(v, wanted) {
			return true
		}
	}
	return false
}

func matchAny(values, wanted []string) bool {
	for _, w := range wanted {
		if contains(values, w) {
			return true
		}
	}
	return false
}

func matchAll(values, wanted []string) bool {
	for _, w := range wanted {
		if !contains(values, w) {
			return false
		}
	}
	return true
}

// stringList coerces a filter value into a string slice.
func stringList(key string, value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			out[i] = fmt.Sprintf("%v", item)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s expects a string list, got %T", core.ErrMalformedFilter, key, value)
	}
}

// parseDateRange coerces a filter value into an inclusive [start, end] pair.
func parseDateRange(value any) (start, end time.Time, err error) {
	var items []any
	switch v := value.(type) {
	case []any:
		items = v
	case []time.Time:
		for _, t := range v {
			items = append(items, t)
		}
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	default:
		return start, end, fmt.Errorf("%w: date_range expects a 2-element list, got %T", core.ErrMalformedFilter, value)
	}

	if len(items) != 2 {
		return start, end, fmt.Errorf("%w: date_range expects exactly 2 elements, got %d", core.ErrMalformedFilter, len(items))
	}

	start, err = parseTime(items[0])
	if err != nil {
		return start, end, err
	}
	end, err = parseTime(items[1])
	if err != nil {
		return start, end, err
	}
	if start.After(end) {
		return start, end, fmt.Errorf("%w: date_range start is after end", core.ErrMalformedFilter)
	}
	return start, end, nil
}

func parseTime(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, nil
		}
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("%w: cannot parse date %q", core.ErrMalformedFilter, v)
	default:
		return time.Time{}, fmt.Errorf("%w: cannot parse date of type %T", core.ErrMalformedFilter, value)
	}
}
