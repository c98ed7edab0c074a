package token

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// IssueFunc issues a fresh token from the broker. The returned token must
// carry its effective expiry (advertised lifetime minus ExpiryBuffer).
type IssueFunc func(ctx context.Context) (Token, error)

// Cache returns valid cached tokens and refreshes expired ones. A per-key
// mutex keeps the check-then-issue sequence single-flight, so concurrent
// callers sharing a credential cannot race into duplicate issuance.
type Cache struct {
	store Store
	now   func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewCache creates a token cache backed by the given store.
func NewCache(store Store) *Cache {
	return &Cache{
		store: store,
		now:   time.Now,
		locks: make(map[string]*sync.Mutex),
	}
}

// GetToken returns a valid token for the cache key, issuing a new one when
// the cached entry is absent or expired. Issuance is retried once.
func (c *Cache) GetToken(ctx context.Context, key string, issue IssueFunc) (string, error) {
	lock := c.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	if tok, ok := c.store.Get(key); ok && tok.Valid(c.now()) {
		slog.Debug("reusing cached token", "key", key, "expiresAt", tok.ExpiresAt)
		return tok.Value, nil
	}

	slog.Info("issuing new token", "key", key)
	tok, err := issue(ctx)
	if err != nil {
		slog.Warn("token issuance failed, retrying once", "key", key, "error", err)
		tok, err = issue(ctx)
		if err != nil {
			return "", err
		}
	}

	if err := c.store.Set(key, tok); err != nil {
		// A store failure only costs a re-issue next time.
		slog.Warn("failed to persist token", "key", key, "error", err)
	}
	return tok.Value, nil
}

func (c *Cache) keyLock(key string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[key] = lock
	}
	return lock
}
