package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/charmbracelet/log"
)

// Manager wraps a Store with content-derived keys, JSON serialization,
// and fail-soft error handling. A Manager with a nil Store is valid
// and behaves as an always-empty cache.
type Manager struct {
	store  Store
	logger *log.Logger
}

// NewManager creates a Manager over the given backend. store may be
// nil to disable caching entirely.
func NewManager(store Store, logger *log.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// Key derives a stable cache key from the semantic input parts.
// Identical inputs always produce the same key; distinct inputs
// collide only with negligible probability.
func Key(prefix string, parts ...string) string {
	h := sha256.New()
	for _, part := range parts {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// Get reads the entry under key into out and reports whether it was
// found. Backend and deserialization failures read as misses and are
// logged, never surfaced.
func (m *Manager) Get(ctx context.Context, key string, out any) bool {
	if m.store == nil {
		return false
	}

	data, err := m.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			m.logger.Warn("cache get failed", "key", key, "err", err)
		}
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		m.logger.Warn("cache entry corrupted", "key", key, "err", err)
		return false
	}
	return true
}

// Set stores value under key with the given TTL. Serialization and
// backend failures are logged and absorbed; Set never fails the
// caller.
func (m *Manager) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if m.store == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		m.logger.Warn("cache serialization failed", "key", key, "err", err)
		return
	}

	if err := m.store.Set(ctx, key, data, ttl); err != nil {
		m.logger.Warn("cache set failed", "key", key, "err", err)
	}
}
