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
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadDictionaries reads entity dictionaries from a YAML file.
// Names are normalized to lowercase; empty names are dropped. The result is
// typically merged over DefaultDictionaries to extend rather than replace them.
func LoadDictionaries(path string) (*Dictionaries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dictionary file: %w", err)
	}

	var dicts Dictionaries
	if err := yaml.Unmarshal(data, &dicts); err != nil {
		return nil, fmt.Errorf("parsing dictionary file %s: %w", path, err)
	}

	dicts.normalize()
	return &dicts, nil
}

// normalize lowercases and trims all dictionary keys, dropping empties.
func (d *Dictionaries) normalize() {
	d.Companies = normalizeTable(d.Companies)
	d.Metrics = normalizeTable(d.Metrics)
	d.Initiatives = normalizeTable(d.Initiatives)
	d.Regulations = normalizeTable(d.Regulations)
	d.Frameworks = normalizeTable(d.Frameworks)
}

func normalizeTable[A any](table map[string]A) map[string]A {
	if table == nil {
		return nil
	}
	out := make(map[string]A, len(table))
	for name, attrs := range table {
		canonical := strings.ToLower(strings.TrimSpace(name))
		if canonical == "" {
			continue
		}
		out[canonical] = attrs
	}
	return out
}
