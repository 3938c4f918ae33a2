package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Cache stores text responses keyed by a request fingerprint. Lookups and
// writes are best effort; a cache must never fail a request.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

// HashKey creates a cache key from a request payload.
func HashKey(payload string) string {
	h := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(h[:])
}
