// Package core defines the domain model for the verdant search engine:
// documents, extracted entities, enrichment results, metadata projections,
// query analysis and search responses.
package core
