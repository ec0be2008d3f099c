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


package core

import (
	"fmt"
	"time"
)

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - at least one of Title and Content must be non-empty
//   - Date, when set, must not be in the future
//
// NOT validated (populated by processors):
//   - Entities, Topics, Summary, Sentiment, Relevance (empty until enriched)
//   - ID (derived from content when 0)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Title == "" && doc.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyContent)
	}

	if !IsValidTimestamp(doc.Date) {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateSearchMode validates that a SearchMode has a valid value.
func ValidateSearchMode(mode SearchMode) error {
	switch mode {
	case ModeHybrid, ModeKeyword, ModeVector, ModeRealtime:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedMode, int(mode))
	}
}

// IsValidTimestamp reports whether a timestamp is usable: zero (unset) or not
// in the future. A small skew allowance covers clock drift between hosts.
func IsValidTimestamp(ts time.Time) bool {
	if ts.IsZero() {
		return true
	}
	return !ts.After(time.Now().UTC().Add(5 * time.Minute))
}
