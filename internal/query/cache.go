// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package query implements the client query cache: a mapping from a
// structured [Key] to the last fetched result and its fetch time.
//
// A result is served from the cache while it is younger than the stale time.
// Mutations invalidate keys or whole tags; the next access refetches.
//
// Every fetch takes a ticket holding a per-key sequence number and the
// invalidation epochs current at its start. The result is written only if
//   - the caller's context is still live (abandoned queries never write),
//   - no invalidation of its key, its tag, or the whole cache happened since
//     the ticket was taken,
//   - no fetch with a higher sequence number has already been written.
package query

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/metrics"
	"github.com/coocood/freecache"
)

// Reasons a fetched result is not written, used as metric labels.
const (
	discardAbandoned   = "abandoned"
	discardInvalidated = "invalidated"
	discardSuperseded  = "superseded"
	discardUnstorable  = "unstorable"
)

// Cache is safe for concurrent use.
type Cache struct {
	store     *freecache.Cache
	staleTime time.Duration
	gcSeconds int
	now       func() time.Time

	metrics *metrics.Manager
	logger  *logger.Logger

	mu         sync.Mutex
	generation uint64
	tagEpochs  map[Tag]uint64
	keyEpochs  map[Key]uint64
	issued     map[Key]uint64
	stored     map[Key]uint64
	inflight   map[Key]int
}

// Option tunes a Cache.
type Option func(*Cache)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

type entry struct {
	Data      json.RawMessage `json:"data"`
	FetchedAt int64           `json:"fetched_at"`
}

type ticket struct {
	seq        uint64
	generation uint64
	tagEpoch   uint64
	keyEpoch   uint64
}

// NewCache creates a cache sized by cfg.SizeBytes. Entries are considered
// fresh for cfg.StaleTime and are dropped from memory after cfg.GCTime
// (never earlier than the stale time).
func NewCache(cfg config.ClientCache, m *metrics.Manager, log *logger.Logger, opts ...Option) *Cache {
	c := &Cache{
		staleTime: cfg.StaleTime,
		now:       time.Now,
		metrics:   m,
		logger:    log,
		tagEpochs: make(map[Tag]uint64),
		keyEpochs: make(map[Key]uint64),
		issued:    make(map[Key]uint64),
		stored:    make(map[Key]uint64),
		inflight:  make(map[Key]int),
	}
	for _, opt := range opts {
		opt(c)
	}

	gc := max(cfg.GCTime, cfg.StaleTime)
	c.gcSeconds = int(math.Ceil(gc.Seconds()))
	c.store = freecache.NewCacheCustomTimer(cfg.SizeBytes, clockTimer{now: c.now})

	return c
}

// Fetch returns the fresh cached result for key or calls fetch and caches
// its result. Errors from fetch are returned as-is and never cached.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if v, ok := lookup[T](c, key); ok {
		c.metrics.CounterCacheHits.WithLabelValues(string(key.Tag)).Inc()
		return v, nil
	}
	c.metrics.CounterCacheMisses.WithLabelValues(string(key.Tag)).Inc()

	t := c.begin(key)
	defer c.end(key)

	v, err := fetch(ctx)
	if err != nil {
		return zero, err
	}

	if ctx.Err() != nil {
		c.discard(key, discardAbandoned)
		return v, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		c.discard(key, discardUnstorable)
		return v, nil
	}
	c.commit(key, t, data)

	return v, nil
}

// Invalidate marks the given keys stale. Invalidating a key that is absent
// or already stale is a no-op apart from cancelling in-flight writes.
func (c *Cache) Invalidate(keys ...Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range keys {
		c.keyEpochs[k]++
		c.drop(k)
		c.metrics.CounterCacheInvalidations.WithLabelValues(string(k.Tag)).Inc()
	}
}

// InvalidateTag marks every key with one of the given tags stale.
func (c *Cache) InvalidateTag(tags ...Tag) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, tag := range tags {
		c.tagEpochs[tag]++
		for k := range c.stored {
			if k.Tag == tag {
				c.drop(k)
			}
		}
		c.metrics.CounterCacheInvalidations.WithLabelValues(string(tag)).Inc()
	}
}

// Clear drops every entry and cancels every in-flight write, e.g. after the
// user signs out.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.store.Clear()
	clear(c.stored)
	clear(c.issued)
	clear(c.keyEpochs)
	clear(c.tagEpochs)
}

// Fresh reports whether key currently has a fresh entry.
func (c *Cache) Fresh(key Key) bool {
	_, ok := c.freshEntry(key)
	return ok
}

func lookup[T any](c *Cache, key Key) (T, bool) {
	var v T
	e, ok := c.freshEntry(key)
	if !ok {
		return v, false
	}

	if err := json.Unmarshal(e.Data, &v); err != nil {
		c.logger.Warn().Err(err).Str("key", key.String()).Msg("dropping undecodable cache entry")
		c.Invalidate(key)
		return v, false
	}

	return v, true
}

func (c *Cache) freshEntry(key Key) (entry, bool) {
	raw, err := c.store.Get(key.storeKey())
	if err != nil {
		return entry{}, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return entry{}, false
	}

	age := c.now().Sub(time.Unix(0, e.FetchedAt))
	if age >= c.staleTime {
		return entry{}, false
	}

	return e, true
}

func (c *Cache) begin(key Key) ticket {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.issued[key]++
	c.inflight[key]++
	return ticket{
		seq:        c.issued[key],
		generation: c.generation,
		tagEpoch:   c.tagEpochs[key.Tag],
		keyEpoch:   c.keyEpochs[key],
	}
}

func (c *Cache) commit(key Key, t ticket, data json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case t.generation != c.generation,
		t.tagEpoch != c.tagEpochs[key.Tag],
		t.keyEpoch != c.keyEpochs[key]:
		c.discardLocked(key, discardInvalidated)
		return
	case t.seq < c.stored[key]:
		c.discardLocked(key, discardSuperseded)
		return
	}

	raw, err := json.Marshal(entry{Data: data, FetchedAt: c.now().UnixNano()})
	if err == nil {
		err = c.store.Set(key.storeKey(), raw, c.gcSeconds)
	}
	if err != nil {
		if !errors.Is(err, freecache.ErrLargeEntry) {
			c.logger.Warn().Err(err).Str("key", key.String()).Msg("cache write failed")
		}
		c.discardLocked(key, discardUnstorable)
		return
	}

	c.stored[key] = t.seq
}

func (c *Cache) discard(key Key, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.discardLocked(key, reason)
}

func (c *Cache) discardLocked(key Key, reason string) {
	c.logger.Debug().Str("key", key.String()).Str("reason", reason).Msg("query result not cached")
	c.metrics.CounterCacheDiscarded.WithLabelValues(reason).Inc()
}

// end releases the fetch slot taken by begin. Once the last fetch of a key
// is done and nothing was written for it, its bookkeeping is forgotten.
func (c *Cache) end(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inflight[key] > 1 {
		c.inflight[key]--
		return
	}
	delete(c.inflight, key)
	if _, ok := c.stored[key]; !ok {
		c.forget(key)
	}
}

// drop removes key from the store. Callers hold c.mu.
func (c *Cache) drop(key Key) {
	c.store.Del(key.storeKey())
	if c.inflight[key] == 0 {
		c.forget(key)
	}
}

// forget deletes the per-key sequence and epoch state. Only safe while no
// ticket for key is outstanding: new tickets restart from zero.
func (c *Cache) forget(key Key) {
	delete(c.stored, key)
	delete(c.issued, key)
	delete(c.keyEpochs, key)
}

// clockTimer feeds the cache clock to freecache's expiry.
type clockTimer struct {
	now func() time.Time
}

func (t clockTimer) Now() uint32 {
	return uint32(t.now().Unix())
}
