package search

import "errors"

var (
	// ErrIndexRequired is returned when no keyword index is provided.
	ErrIndexRequired = errors.New("index required")
	// ErrAnalyzerRequired is returned when no query analyzer is provided.
	ErrAnalyzerRequired = errors.New("query analyzer required")
	// ErrEmptyQuery is returned for a blank query string.
	ErrEmptyQuery = errors.New("empty query")
)
