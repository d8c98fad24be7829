// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"sync"
	"sync/atomic"
	"time"
)

// DocumentCache is a process-local, time-bounded cache of the whole
// document. It holds a single entry: the document is cached as one unit, so
// a write through any section repository invalidates everything.
//
// Each server instance has its own cache and there is no cross-process
// invalidation; after a write on another instance, reads here may be stale
// for up to the TTL. That window is an accepted property of the design.
type DocumentCache struct {
	mu       sync.Mutex
	doc      *Document
	loadedAt time.Time
	ttl      time.Duration
	now      func() time.Time

	// Stats
	hits   atomic.Int64
	misses atomic.Int64
}

// NewDocumentCache creates a cache with the given TTL.
func NewDocumentCache(ttl time.Duration) *DocumentCache {
	return &DocumentCache{
		ttl: ttl,
		now: time.Now,
	}
}

// NewDocumentCacheWithClock creates a cache with an injectable clock, used
// by tests to step through TTL expiry without sleeping.
func NewDocumentCacheWithClock(ttl time.Duration, now func() time.Time) *DocumentCache {
	return &DocumentCache{
		ttl: ttl,
		now: now,
	}
}

// Get returns the cached document if present and within the TTL.
func (c *DocumentCache) Get() (*Document, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.doc == nil || c.now().Sub(c.loadedAt) >= c.ttl {
		c.doc = nil
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return c.doc, true
}

// Set stores a document with a fresh timestamp.
func (c *DocumentCache) Set(doc *Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc = doc
	c.loadedAt = c.now()
}

// Invalidate unconditionally removes the entry. Callers must invalidate
// after every successful write; TTL expiry alone is not the coherency
// mechanism.
func (c *DocumentCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc = nil
}

// Stats reports cache hit/miss counters.
func (c *DocumentCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
