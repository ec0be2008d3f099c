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

import "errors"

// Domain validation errors
var (
	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyContent indicates both Title and Content are empty.
	ErrEmptyContent = errors.New("document has no title or content")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrUnsupportedMode indicates an unknown search mode name.
	// This is a caller contract violation, not a transient data issue.
	ErrUnsupportedMode = errors.New("unsupported search mode")

	// ErrMalformedFilter indicates a filter that cannot be evaluated,
	// e.g. a date range whose start is after its end.
	ErrMalformedFilter = errors.New("malformed filter")
)
