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


package enrich

// topicKeywords defines the topic classification buckets. Each bucket is a
// fixed keyword list; confidence is derived from whole-word match counts.
// The same keywords drive extractive summarization.
var topicKeywords = map[string][]string{
	"emissions": {
		"emission", "emissions", "carbon", "co2", "greenhouse", "ghg",
		"decarbonization", "scope 1", "scope 2", "scope 3", "offset",
	},
	"energy": {
		"energy", "renewable", "solar", "wind", "electricity", "fuel",
		"efficiency", "grid", "megawatt",
	},
	"water": {
		"water", "wastewater", "freshwater", "irrigation", "watershed",
		"discharge", "withdrawal",
	},
	"waste": {
		"waste", "recycling", "recycled", "landfill", "compost", "circular",
		"packaging", "plastic",
	},
	"biodiversity": {
		"biodiversity", "habitat", "species", "deforestation", "forest",
		"ecosystem", "conservation", "wildlife",
	},
	"social_diversity": {
		"diversity", "inclusion", "equity", "gender", "women", "minority",
		"representation",
	},
	"social_labor": {
		"labor", "workers", "wages", "safety", "working conditions", "union",
		"human rights", "supply chain",
	},
	"social_community": {
		"community", "philanthropy", "volunteer", "donation", "education",
		"local", "engagement",
	},
	"governance_ethics": {
		"ethics", "corruption", "bribery", "compliance", "transparency",
		"whistleblower", "audit",
	},
	"governance_board": {
		"board", "directors", "executive", "compensation", "shareholder",
		"governance", "oversight",
	},
}

// positiveTerms and negativeTerms drive the lightweight sentiment score.
// Counting is substring-based, not whole-word, so "improvements" counts for
// "improve".
var positiveTerms = []string{
	"improve", "achieve", "progress", "success", "reduce emissions", "exceed",
	"leading", "award", "milestone", "growth", "commit", "innovative",
	"sustainable", "positive", "advance",
}

var negativeTerms = []string{
	"fail", "violation", "fine", "penalty", "lawsuit", "greenwash", "decline",
	"risk", "concern", "controversy", "pollution", "spill", "negative",
	"shortfall", "missed",
}
