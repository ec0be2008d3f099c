package core

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so that re-ingesting the same
// document always lands on the same record.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// NewDocumentID derives a document ID from its identifying raw fields.
// The separator keeps ("ab","c") and ("a","bc") from colliding.
func NewDocumentID(title, url, content string) ID {
	return IDFromContent(title + "\x00" + url + "\x00" + content)
}

// SearchMode selects the retrieval strategy for a search call.
type SearchMode int

const (
	// ModeHybrid combines keyword and vector retrieval into one ranked list.
	ModeHybrid SearchMode = iota + 1
	// ModeKeyword uses the keyword index only.
	ModeKeyword
	// ModeVector uses vector similarity only.
	ModeVector
	// ModeRealtime bypasses the indexes and ranks freshly collected documents.
	ModeRealtime
)

// String returns the wire name of the mode.
func (m SearchMode) String() string {
	switch m {
	case ModeHybrid:
		return "hybrid"
	case ModeKeyword:
		return "keyword"
	case ModeVector:
		return "vector"
	case ModeRealtime:
		return "realtime"
	default:
		return fmt.Sprintf("SearchMode(%d)", int(m))
	}
}

// ParseSearchMode converts a wire name into a SearchMode.
// Unknown names are a caller contract violation and return ErrUnsupportedMode.
func ParseSearchMode(name string) (SearchMode, error) {
	switch name {
	case "hybrid":
		return ModeHybrid, nil
	case "keyword":
		return ModeKeyword, nil
	case "vector":
		return ModeVector, nil
	case "realtime":
		return ModeRealtime, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedMode, name)
	}
}

// Intent classifies what a query is trying to accomplish.
type Intent int

const (
	// IntentInformationSeeking is the default intent when nothing else matches.
	IntentInformationSeeking Intent = iota + 1
	// IntentComparison indicates the query compares entities.
	IntentComparison
	// IntentMetricsSeeking indicates the query asks for measured values.
	IntentMetricsSeeking
)

// String returns the wire name of the intent.
func (i Intent) String() string {
	switch i {
	case IntentInformationSeeking:
		return "information_seeking"
	case IntentComparison:
		return "comparison"
	case IntentMetricsSeeking:
		return "metrics_seeking"
	default:
		return fmt.Sprintf("Intent(%d)", int(i))
	}
}

// SentimentLabel buckets a sentiment score.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// RelevanceLabel buckets a relevance score.
type RelevanceLabel string

const (
	RelevanceHigh   RelevanceLabel = "high"
	RelevanceMedium RelevanceLabel = "medium"
	RelevanceLow    RelevanceLabel = "low"
)

// CompanyMention is a company entity found in a document.
type CompanyMention struct {
	Name     string `json:"name"`
	Ticker   string `json:"ticker"`
	Sector   string `json:"sector"`
	Mentions int    `json:"mentions"`
}

// MetricMention is a sustainability metric found in a document.
// Value is the numeric value extracted near the metric name, empty when no
// value could be located; Unit falls back to the dictionary default in that case.
type MetricMention struct {
	Name     string `json:"name"`
	Value    string `json:"value,omitempty"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
	Mentions int    `json:"mentions"`
}

// InitiativeMention is a sustainability initiative found in a document.
type InitiativeMention struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Mentions int    `json:"mentions"`
}

// RegulationMention is a regulation found in a document.
type RegulationMention struct {
	Name         string `json:"name"`
	Jurisdiction string `json:"jurisdiction"`
	Mentions     int    `json:"mentions"`
}

// FrameworkMention is a reporting framework found in a document.
type FrameworkMention struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Mentions int    `json:"mentions"`
}

// EntityMap holds all entities extracted from a document, one typed list per
// category. A zero EntityMap is valid and means nothing was extracted.
type EntityMap struct {
	Companies   []CompanyMention    `json:"companies,omitempty"`
	Metrics     []MetricMention     `json:"metrics,omitempty"`
	Initiatives []InitiativeMention `json:"initiatives,omitempty"`
	Regulations []RegulationMention `json:"regulations,omitempty"`
	Frameworks  []FrameworkMention  `json:"frameworks,omitempty"`
}

// Count returns the total number of entities across all categories.
func (m *EntityMap) Count() int {
	return len(m.Companies) + len(m.Metrics) + len(m.Initiatives) +
		len(m.Regulations) + len(m.Frameworks)
}

// Names returns the entity names across all categories, in category order.
// Names are lowercase since dictionary keys are canonical lowercase.
func (m *EntityMap) Names() []string {
	names := make([]string, 0, m.Count())
	for _, e := range m.Companies {
		names = append(names, e.Name)
	}
	for _, e := range m.Metrics {
		names = append(names, e.Name)
	}
	for _, e := range m.Initiatives {
		names = append(names, e.Name)
	}
	for _, e := range m.Regulations {
		names = append(names, e.Name)
	}
	for _, e := range m.Frameworks {
		names = append(names, e.Name)
	}
	return names
}

// HasMetricValue reports whether any metric carries an extracted numeric value.
func (m *EntityMap) HasMetricValue() bool {
	for _, metric := range m.Metrics {
		if metric.Value != "" {
			return true
		}
	}
	return false
}

// Topic is one topic-classification bucket hit.
type Topic struct {
	Name       string `json:"topic"`
	Confidence int    `json:"confidence"` // 0-100, min(100, 10*Matches)
	Matches    int    `json:"match_count"`
}

// Sentiment is the document-level sentiment summary.
type Sentiment struct {
	Score    int            `json:"score"` // -100..100
	Label    SentimentLabel `json:"label"`
	Positive int            `json:"positive_terms"`
	Negative int            `json:"negative_terms"`
}

// Relevance summarizes how strongly a document matches the sustainability domain.
type Relevance struct {
	Score       float64        `json:"score"` // 0-100
	Label       RelevanceLabel `json:"label"`
	EntityCount int            `json:"entity_count"`
	HasMetrics  bool           `json:"has_metrics"`
}

// Document is a unit of retrievable content.
// Entities, Topics, Summary, Sentiment and Relevance are populated by the
// enrichment processor; a document that failed enrichment carries their zero
// values and is still retrievable.
type Document struct {
	Id       ID     `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	URL      string `json:"url,omitempty"`
	Source   string `json:"source,omitempty"`
	Author   string `json:"author,omitempty"`
	Category string `json:"category,omitempty"`
	Company  string `json:"company,omitempty"`
	Industry string `json:"industry,omitempty"`
	Report   bool   `json:"report,omitempty"` // set for sustainability-report sources

	Date       time.Time `json:"date,omitzero"`
	FilingDate time.Time `json:"filing_date,omitzero"`
	ScrapedAt  time.Time `json:"scraped_at,omitzero"`
	InsertedAt time.Time `json:"inserted_at,omitzero"`
	UpdatedAt  time.Time `json:"updated_at,omitzero"`

	Entities  EntityMap `json:"entities"`
	Topics    []Topic   `json:"topics,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	Sentiment Sentiment `json:"sentiment"`
	Relevance Relevance `json:"relevance"`
}

// EffectiveDate returns the best available date for filtering, in priority
// order: publication date, filing date, scrape time.
func (d *Document) EffectiveDate() time.Time {
	if !d.Date.IsZero() {
		return d.Date
	}
	if !d.FilingDate.IsZero() {
		return d.FilingDate
	}
	return d.ScrapedAt
}

// QueryAnalysis is the output of query understanding for a single search call.
type QueryAnalysis struct {
	Original string   `json:"original_query"`
	Expanded string   `json:"expanded_query"`
	Entities []string `json:"entities,omitempty"`
	Intents  []Intent `json:"intents,omitempty"`
}

// SearchResult is one ranked hit. KeywordScore and Similarity record the
// per-strategy contributions when the mode used more than one.
type SearchResult struct {
	Document     *Document `json:"document"`
	Score        float64   `json:"score"`
	KeywordScore float64   `json:"keyword_score,omitempty"`
	Similarity   float64   `json:"similarity,omitempty"`
}

// Response is the caller-facing result of a search call.
// A Response is always well-formed; retrieval-side failures show up as
// diagnostics and a shorter result list, never as a panic or a nil Response.
type Response struct {
	Query       string          `json:"query"`
	Analysis    *QueryAnalysis  `json:"query_analysis,omitempty"`
	Mode        SearchMode      `json:"-"`
	ModeName    string          `json:"mode"`
	ResultCount int             `json:"result_count"`
	Results     []*SearchResult `json:"results"`
	SearchTime  time.Duration   `json:"search_time"`
	Diagnostics []string        `json:"diagnostics,omitempty"`
}
