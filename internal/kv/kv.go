// Package kv is the persistent key-value layer behind the job and
// application collections. Each key holds one JSON document that is
// rewritten whole on every change.
package kv

import (
	"context"
	"fmt"
	"strings"
)

type Store interface {
	// Get returns the stored bytes; ok is false when the key is absent.
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	Set(ctx context.Context, key string, val []byte) error
	Del(ctx context.Context, keys ...string) error
}

const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// NormalizeBackend lower-cases name and applies the file default.
func NormalizeBackend(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "":
		return BackendFile, nil
	case BackendFile, BackendMemory, BackendRedis, BackendPostgres:
		return name, nil
	default:
		return "", fmt.Errorf("unknown KV_BACKEND %q", name)
	}
}
