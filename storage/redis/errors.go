package redis

import "errors"

var (
	// ErrClientRequired is returned when no Redis client is provided.
	ErrClientRequired = errors.New("redis client required")
)
