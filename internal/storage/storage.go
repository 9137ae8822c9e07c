package storage

import (
	"context"
	"errors"
)

// ErrNotFound indicates a requested key has no stored value.
var ErrNotFound = errors.New("key not found")

// Well-known keys used by the session engine's collaborators.
const (
	KeyActiveTeams  = "active_teams"
	KeyMatchHistory = "match_history"
)

// KV is an opaque durable mapping from string keys to JSON payloads.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
