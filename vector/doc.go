// Package vector implements the similarity-search side of retrieval: an
// in-memory store of unit-length embedding vectors with metadata filtering
// and flat-file JSON persistence.
package vector
