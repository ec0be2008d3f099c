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

// CompanyAttrs describes a company dictionary entry.
type CompanyAttrs struct {
	Ticker string `yaml:"ticker"`
	Sector string `yaml:"sector"`
}

// MetricAttrs describes a sustainability metric dictionary entry.
// Unit is the default unit reported when no unit is found next to a value.
type MetricAttrs struct {
	Unit     string `yaml:"unit"`
	Category string `yaml:"category"`
}

// InitiativeAttrs describes a sustainability initiative dictionary entry.
type InitiativeAttrs struct {
	Kind string `yaml:"kind"`
}

// RegulationAttrs describes a regulation dictionary entry.
type RegulationAttrs struct {
	Jurisdiction string `yaml:"jurisdiction"`
}

// FrameworkAttrs describes a reporting framework dictionary entry.
type FrameworkAttrs struct {
	FullName string `yaml:"full_name"`
}

// Dictionaries holds the lookup tables the extractor scans for.
// Keys are canonical lowercase entity names.
type Dictionaries struct {
	Companies   map[string]CompanyAttrs    `yaml:"companies"`
	Metrics     map[string]MetricAttrs     `yaml:"metrics"`
	Initiatives map[string]InitiativeAttrs `yaml:"initiatives"`
	Regulations map[string]RegulationAttrs `yaml:"regulations"`
	Frameworks  map[string]FrameworkAttrs  `yaml:"frameworks"`
}

// DefaultDictionaries returns the built-in sustainability dictionaries.
func DefaultDictionaries() *Dictionaries {
	return &Dictionaries{
		Companies: map[string]CompanyAttrs{
			"apple":      {Ticker: "AAPL", Sector: "Technology"},
			"microsoft":  {Ticker: "MSFT", Sector: "Technology"},
			"alphabet":   {Ticker: "GOOGL", Sector: "Technology"},
			"tesla":      {Ticker: "TSLA", Sector: "Automotive"},
			"unilever":   {Ticker: "UL", Sector: "Consumer Goods"},
			"nestle":     {Ticker: "NSRGY", Sector: "Consumer Goods"},
			"patagonia":  {Ticker: "", Sector: "Apparel"},
			"shell":      {Ticker: "SHEL", Sector: "Energy"},
			"totalenergies": {Ticker: "TTE", Sector: "Energy"},
			"maersk":     {Ticker: "AMKBY", Sector: "Logistics"},
		},
		Metrics: map[string]MetricAttrs{
			"carbon emissions":   {Unit: "tCO2e", Category: "emissions"},
			"ghg emissions":      {Unit: "tCO2e", Category: "emissions"},
			"carbon intensity":   {Unit: "tCO2e/M$", Category: "emissions"},
			"energy consumption": {Unit: "MWh", Category: "energy"},
			"renewable energy":   {Unit: "%", Category: "energy"},
			"water usage":        {Unit: "m3", Category: "water"},
			"water withdrawal":   {Unit: "m3", Category: "water"},
			"waste diverted":     {Unit: "%", Category: "waste"},
			"recycling rate":     {Unit: "%", Category: "waste"},
			"gender pay gap":     {Unit: "%", Category: "social"},
		},
		Initiatives: map[string]InitiativeAttrs{
			"net zero":              {Kind: "target"},
			"carbon neutral":        {Kind: "target"},
			"science based targets": {Kind: "program"},
			"circular economy":      {Kind: "program"},
			"reforestation":         {Kind: "project"},
			"renewable transition":  {Kind: "program"},
		},
		Regulations: map[string]RegulationAttrs{
			"csrd":                   {Jurisdiction: "EU"},
			"sfdr":                   {Jurisdiction: "EU"},
			"eu taxonomy":            {Jurisdiction: "EU"},
			"cbam":                   {Jurisdiction: "EU"},
			"sec climate disclosure": {Jurisdiction: "US"},
		},
		Frameworks: map[string]FrameworkAttrs{
			"gri":  {FullName: "Global Reporting Initiative"},
			"sasb": {FullName: "Sustainability Accounting Standards Board"},
			"tcfd": {FullName: "Task Force on Climate-related Financial Disclosures"},
			"cdp":  {FullName: "Carbon Disclosure Project"},
			"esrs": {FullName: "European Sustainability Reporting Standards"},
		},
	}
}

// Merge overlays non-empty tables from other onto d. Entries with the same
// name are overwritten, everything else is kept.
func (d *Dictionaries) Merge(other *Dictionaries) {
	if other == nil {
		return
	}
	for name, attrs := range other.Companies {
		if d.Companies == nil {
			d.Companies = map[string]CompanyAttrs{}
		}
		d.Companies[name] = attrs
	}
	for name, attrs := range other.Metrics {
		if d.Metrics == nil {
			d.Metrics = map[string]MetricAttrs{}
		}
		d.Metrics[name] = attrs
	}
	for name, attrs := range other.Initiatives {
		if d.Initiatives == nil {
			d.Initiatives = map[string]InitiativeAttrs{}
		}
		d.Initiatives[name] = attrs
	}
	for name, attrs := range other.Regulations {
		if d.Regulations == nil {
			d.Regulations = map[string]RegulationAttrs{}
		}
		d.Regulations[name] = attrs
	}
	for name, attrs := range other.Frameworks {
		if d.Frameworks == nil {
			d.Frameworks = map[string]FrameworkAttrs{}
		}
		d.Frameworks[name] = attrs
	}
}
