package cache

import (
	"context"
	"sync"
	"time"

	"session-hub/app/domain"
	"session-hub/app/port"
)

// cacheEntry is one session binding with an optional expiry.
type cacheEntry struct {
	userID    string
	expiresAt time.Time // zero means no expiry
}

// SessionCache is a thread-safe in-process session cache.
// Implements port.SessionCache. A TTL of zero keeps entries until
// overwritten or deleted, matching the session lifecycle where cookie
// expiry is the only client-visible TTL; a positive TTL bounds memory
// in long-running processes.
type SessionCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	ttl     time.Duration
}

// NewSessionCache creates a new session cache with the specified TTL.
func NewSessionCache(ttl time.Duration) *SessionCache {
	c := &SessionCache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
	}
	if ttl > 0 {
		go c.cleanupLoop()
	}
	return c
}

var _ port.SessionCache = (*SessionCache)(nil)

// Get retrieves the user ID bound to sessionID. Absence is reported
// as domain.ErrSessionNotFound, never as an empty value.
func (c *SessionCache) Get(_ context.Context, sessionID string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[sessionID]
	if !found || entry.expired(time.Now()) {
		return "", domain.ErrSessionNotFound
	}
	return entry.userID, nil
}

// Set binds sessionID to userID, overwriting any previous binding.
func (c *SessionCache) Set(_ context.Context, sessionID, userID string) error {
	entry := &cacheEntry{userID: userID}
	if c.ttl > 0 {
		entry.expiresAt = time.Now().Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[sessionID] = entry
	return nil
}

// Delete removes the binding. Absent keys are a no-op.
func (c *SessionCache) Delete(_ context.Context, sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, sessionID)
	return nil
}

func (e *cacheEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// cleanup removes expired entries.
func (c *SessionCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for id, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, id)
		}
	}
}

// cleanupLoop runs periodic cleanup of expired entries.
func (c *SessionCache) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}
