// Package storage defines the document repository contract and its
// serialization codecs. The BadgerDB implementation lives in storage/badger,
// the redis-backed query cache in storage/redis.
package storage
