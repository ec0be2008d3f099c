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

import "time"

// SearchMonitor receives notifications about search lifecycle events.
// Implementations must be safe for concurrent use.
type SearchMonitor interface {
	// SearchStarted is called when a search begins executing.
	SearchStarted(query string, mode string)

	// CacheHit is called when a cached response short-circuits the search.
	CacheHit(query string, mode string)

	// SourceFailed is called when a realtime source returns an error.
	SourceFailed(source string, err error)

	// SearchCompleted is called after a search finishes, cached or not.
	SearchCompleted(query string, mode string, resultCount int, elapsed time.Duration)
}

// noopMonitor is the default monitor; it ignores every event.
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (noopMonitor) SearchStarted(string, string)                       {}
func (noopMonitor) CacheHit(string, string)                            {}
func (noopMonitor) SourceFailed(string, error)                         {}
func (noopMonitor) SearchCompleted(string, string, int, time.Duration) {}
