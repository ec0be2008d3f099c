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

import "time"

// Metadata is the denormalized, filter-optimized projection of a Document.
// It is always regenerable via MetadataFromDocument and never mutated
// independently of its source document.
type Metadata struct {
	Category                 string    `json:"category,omitempty"`
	Source                   string    `json:"source,omitempty"`
	Date                     time.Time `json:"date,omitzero"`
	Author                   string    `json:"author,omitempty"`
	Company                  string    `json:"company,omitempty"`
	Industry                 string    `json:"industry,omitempty"`
	SustainabilityCategories []string  `json:"sustainability_categories,omitempty"`
	ESGTopics                []string  `json:"esg_topics,omitempty"`
	MentionedCompanies       []string  `json:"mentioned_companies,omitempty"`
	Frameworks               []string  `json:"frameworks,omitempty"`
}

// MetadataFromDocument derives the metadata record for a document.
// The function is pure: calling it twice on the same document yields equal records.
func MetadataFromDocument(doc *Document) *Metadata {
	meta := &Metadata{
		Category: doc.Category,
		Source:   doc.Source,
		Date:     doc.EffectiveDate(),
		Author:   doc.Author,
		Company:  doc.Company,
		Industry: doc.Industry,
	}

	for _, metric := range doc.Entities.Metrics {
		meta.SustainabilityCategories = appendUnique(meta.SustainabilityCategories, metric.Category)
	}
	for _, topic := range doc.Topics {
		meta.ESGTopics = appendUnique(meta.ESGTopics, topic.Name)
	}
	for _, company := range doc.Entities.Companies {
		meta.MentionedCompanies = appendUnique(meta.MentionedCompanies, company.Name)
	}
	for _, framework := range doc.Entities.Frameworks {
		meta.Frameworks = appendUnique(meta.Frameworks, framework.Name)
	}

	return meta
}

func appendUnique(list []string, value string) []string {
	if value == "" {
		return list
	}
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
