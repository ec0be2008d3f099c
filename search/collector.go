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
	"context"

	"github.com/poiesic/verdant/core"
)

// SourceCollector fetches fresh documents for realtime searches. The
// freshness policy lives entirely inside the collector; the orchestrator
// only ranks and filters whatever comes back.
//
// A collector error never fails the overall search. The orchestrator logs
// it, records a diagnostic, and treats the source as having returned zero
// documents.
type SourceCollector interface {
	// Name identifies the source in logs and diagnostics.
	Name() string

	// Collect returns raw documents for the given query. The context bounds
	// any I/O the collector performs.
	Collect(ctx context.Context, query string) ([]*core.Document, error)
}
