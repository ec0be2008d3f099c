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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/poiesic/verdant/core"
)

// On-disk layout: the index file holds documents and metadata records, the
// companion "<path minus extension>_vectors.json" file holds the raw vectors.
type indexFile struct {
	Metadata      indexMetadata              `json:"metadata"`
	Documents     map[core.ID]*core.Document `json:"documents"`
	MetadataStore map[core.ID]*core.Metadata `json:"metadata_store"`
}

type indexMetadata struct {
	Dimension     int       `json:"dimension"`
	DocumentCount int       `json:"document_count"`
	LastUpdated   time.Time `json:"last_updated"`
}

// VectorsPath returns the companion vectors file for an index path.
func VectorsPath(indexPath string) string {
	return strings.TrimSuffix(indexPath, filepath.Ext(indexPath)) + "_vectors.json"
}

// Save serializes documents, metadata and vectors to the configured index
// path and its companion vectors file. Unlike Load, failures here are
// surfaced to the caller: a failed save means data-loss risk.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.indexPath == "" {
		return ErrNoIndexPath
	}

	index := indexFile{
		Metadata: indexMetadata{
			Dimension:     s.dim,
			DocumentCount: len(s.docs),
			LastUpdated:   s.lastUpdated,
		},
		Documents:     s.docs,
		MetadataStore: s.meta,
	}

	indexData, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	vectorData, err := json.Marshal(s.vectors)
	if err != nil {
		return fmt.Errorf("encoding vectors: %w", err)
	}

	if err := os.WriteFile(s.indexPath, indexData, 0o644); err != nil {
		return fmt.Errorf("writing index file: %w", err)
	}
	if err := os.WriteFile(VectorsPath(s.indexPath), vectorData, 0o644); err != nil {
		return fmt.Errorf("writing vectors file: %w", err)
	}

	s.logger.Info("saved vector index",
		"path", s.indexPath, "documents", len(s.docs))
	return nil
}

// Load replaces the in-memory state with the persisted index.
// Missing or corrupt files are logged and leave the current state untouched;
// only a missing index path is an error, since that is a configuration bug.
func (s *Store) Load() error {
	if s.indexPath == "" {
		return ErrNoIndexPath
	}

	indexData, err := os.ReadFile(s.indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("no vector index on disk, starting empty", "path", s.indexPath)
		} else {
			s.logger.Error("reading vector index", "path", s.indexPath, "err", err)
		}
		return nil
	}

	var index indexFile
	if err := json.Unmarshal(indexData, &index); err != nil {
		s.logger.Error("decoding vector index, keeping in-memory state",
			"path", s.indexPath, "err", err)
		return nil
	}

	vectorData, err := os.ReadFile(VectorsPath(s.indexPath))
	if err != nil {
		s.logger.Error("reading vectors file, keeping in-memory state",
			"path", VectorsPath(s.indexPath), "err", err)
		return nil
	}

	vectors := make(map[core.ID][]float32)
	if err := json.Unmarshal(vectorData, &vectors); err != nil {
		s.logger.Error("decoding vectors file, keeping in-memory state",
			"path", VectorsPath(s.indexPath), "err", err)
		return nil
	}

	// Re-normalize on the way in so the unit-length invariant holds even for
	// files written by other tools.
	for _, vector := range vectors {
		normalize(vector)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if index.Metadata.Dimension > 0 {
		s.dim = index.Metadata.Dimension
	}
	if index.Documents != nil {
		s.docs = index.Documents
	} else {
		s.docs = make(map[core.ID]*core.Document)
	}
	if index.MetadataStore != nil {
		s.meta = index.MetadataStore
	} else {
		s.meta = make(map[core.ID]*core.Metadata)
	}
	s.vectors = vectors
	s.lastUpdated = index.Metadata.LastUpdated

	s.logger.Info("loaded vector index",
		"path", s.indexPath, "documents", len(s.docs), "dimension", s.dim)
	return nil
}
