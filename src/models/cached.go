package models

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/recapd/recapd/src/cache"
)

// CachedBackend wraps a Backend and caches Summarize calls. Identical
// payloads within the cache TTL return the stored digest without another
// backend round-trip.
type CachedBackend struct {
	Backend Backend
	Cache   cache.Cache
}

// NewCachedBackend wraps backend with the given cache.
func NewCachedBackend(backend Backend, c cache.Cache) *CachedBackend {
	return &CachedBackend{Backend: backend, Cache: c}
}

// Summarize checks the cache before calling the underlying backend.
func (c *CachedBackend) Summarize(ctx context.Context, lines []string, opts *Options) (string, error) {
	key := summarizeKey(lines, opts)
	if val, ok := c.Cache.Get(ctx, key); ok {
		return val, nil
	}

	res, err := c.Backend.Summarize(ctx, lines, opts)
	if err != nil {
		return "", err
	}

	c.Cache.Set(ctx, key, res)
	return res, nil
}

// MaxContextTokens reports the wrapped backend's context size.
func (c *CachedBackend) MaxContextTokens() int {
	return c.Backend.MaxContextTokens()
}

// summarizeKey fingerprints the full request: every line plus the options
// that change what the model would answer.
func summarizeKey(lines []string, opts *Options) string {
	h := sha256.New()
	for _, line := range lines {
		h.Write([]byte(line))
		h.Write([]byte{0})
	}
	if opts != nil {
		fmt.Fprintf(h, "%d|%g", opts.MaxTokens, opts.Temperature)
	}
	return hex.EncodeToString(h.Sum(nil))
}

var _ Backend = (*CachedBackend)(nil)
