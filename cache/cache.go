// Package cache implements the LRU graph cache: built graphs keyed by
// (root, granularity, include_external, resolve_calls), evicted oldest-first
// beyond a capacity, and kept fresh via a content signature over every
// in-scope file's (relpath, mtime, size).
package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/viant/codegraph/discover"
	"github.com/viant/codegraph/graph"
)

// Key identifies one cached build.
type Key struct {
	Root            string
	Granularity     string
	IncludeExternal bool
	ResolveCalls    string
}

// Entry is one cached graph build.
type Entry struct {
	GraphID         string
	Root            string
	Granularity     string
	IncludeExternal bool
	ResolveCalls    string
	Signature       []discover.Stamp
	Graph           *graph.Graph
}

// Builder constructs a fresh graph for a cache key. It is supplied by the
// caller (normally codegraph.Service) rather than owned by the cache, so the
// cache package itself has no dependency on the pyast analyzer.
type Builder func(ctx context.Context, key Key) (*graph.Graph, error)

// Signer computes a cache key's content signature. discover.Walker satisfies
// this directly.
type Signer interface {
	Signature(ctx context.Context, root string) ([]discover.Stamp, error)
}

// Cache holds up to maxEntries graph builds, evicting the least-recently-used
// entry once that capacity is exceeded. All operations are serialized by a
// single mutex: a build in progress is never observed half-finished, and the
// signature/graph pair of a refreshed entry always changes together.
type Cache struct {
	mu         sync.Mutex
	maxEntries int
	signer     Signer

	byID  map[string]*Entry
	byKey map[Key]string
	lru   []string
}

// DefaultMaxEntries matches the reference implementation's default capacity.
const DefaultMaxEntries = 8

// New returns an empty Cache with the given signer and capacity. A
// non-positive maxEntries falls back to DefaultMaxEntries.
func New(signer Signer, maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Cache{
		maxEntries: maxEntries,
		signer:     signer,
		byID:       map[string]*Entry{},
		byKey:      map[Key]string{},
	}
}

func stampsEqual(a, b []discover.Stamp) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (c *Cache) touch(id string) {
	for i, x := range c.lru {
		if x == id {
			c.lru = append(c.lru[:i], c.lru[i+1:]...)
			break
		}
	}
	c.lru = append([]string{id}, c.lru...)
	for len(c.lru) > c.maxEntries {
		evictID := c.lru[len(c.lru)-1]
		c.lru = c.lru[:len(c.lru)-1]
		c.evictLocked(evictID)
	}
}

func (c *Cache) evictLocked(id string) {
	entry, ok := c.byID[id]
	if !ok {
		return
	}
	delete(c.byID, id)
	key := Key{Root: entry.Root, Granularity: entry.Granularity, IncludeExternal: entry.IncludeExternal, ResolveCalls: entry.ResolveCalls}
	delete(c.byKey, key)
}

// Get returns the entry for a graph id, touching its LRU position.
func (c *Cache) Get(graphID string) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.byID[graphID]
	if ok {
		c.touch(graphID)
	}
	return entry, ok
}

// BuildOrGet returns the cached entry for key unless forceRebuild is set or
// no entry exists yet, in which case builder runs and the result is cached.
// The bool result reports whether an existing entry was reused. The mutex is
// held across the cache check, the signature computation, and the builder
// call itself, so two concurrent calls for the same key never both miss the
// cache: the second call blocks until the first has inserted its entry, then
// observes the cache hit.
func (c *Cache) BuildOrGet(ctx context.Context, key Key, builder Builder, forceRebuild bool) (*Entry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !forceRebuild {
		if id, ok := c.byKey[key]; ok {
			entry := c.byID[id]
			c.touch(id)
			return entry, true, nil
		}
	}

	sig, err := c.signer.Signature(ctx, key.Root)
	if err != nil {
		return nil, false, fmt.Errorf("cache: signature: %w", err)
	}
	g, err := builder(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("cache: build: %w", err)
	}

	entry := &Entry{
		GraphID:         uuid.NewString(),
		Root:            key.Root,
		Granularity:     key.Granularity,
		IncludeExternal: key.IncludeExternal,
		ResolveCalls:    key.ResolveCalls,
		Signature:       sig,
		Graph:           g,
	}
	c.byID[entry.GraphID] = entry
	c.byKey[key] = entry.GraphID
	c.touch(entry.GraphID)
	return entry, false, nil
}

// RefreshIfStale recomputes the entry's signature and, if it has changed,
// rebuilds the graph and replaces the signature and graph together. Returns
// the (possibly updated) entry and whether a rebuild happened.
func (c *Cache) RefreshIfStale(ctx context.Context, graphID string, builder Builder) (*Entry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.byID[graphID]
	if !ok {
		return nil, false, fmt.Errorf("cache: unknown graph_id %q", graphID)
	}

	sig, err := c.signer.Signature(ctx, entry.Root)
	if err != nil {
		return nil, false, fmt.Errorf("cache: signature: %w", err)
	}
	if stampsEqual(sig, entry.Signature) {
		return entry, false, nil
	}

	key := Key{Root: entry.Root, Granularity: entry.Granularity, IncludeExternal: entry.IncludeExternal, ResolveCalls: entry.ResolveCalls}
	g, err := builder(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("cache: rebuild: %w", err)
	}

	entry.Signature = sig
	entry.Graph = g
	c.touch(graphID)
	return entry, true, nil
}

// Listing is one row of Cache.List.
type Listing struct {
	GraphID         string
	Root            string
	Granularity     string
	IncludeExternal bool
	ResolveCalls    string
	Nodes           int
	Edges           int
}

// List returns every cached entry, most-recently-used first.
func (c *Cache) List() []Listing {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Listing, 0, len(c.lru))
	for _, id := range c.lru {
		e := c.byID[id]
		out = append(out, Listing{
			GraphID:         e.GraphID,
			Root:            e.Root,
			Granularity:     e.Granularity,
			IncludeExternal: e.IncludeExternal,
			ResolveCalls:    e.ResolveCalls,
			Nodes:           len(e.Graph.Nodes()),
			Edges:           len(e.Graph.Edges()),
		})
	}
	return out
}

// Clear evicts one entry (graphID != "") or every entry (graphID == ""),
// returning how many were removed.
func (c *Cache) Clear(graphID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if graphID == "" {
		n := len(c.byID)
		c.byID = map[string]*Entry{}
		c.byKey = map[Key]string{}
		c.lru = nil
		return n
	}
	if _, ok := c.byID[graphID]; !ok {
		return 0
	}
	c.evictLocked(graphID)
	for i, x := range c.lru {
		if x == graphID {
			c.lru = append(c.lru[:i], c.lru[i+1:]...)
			break
		}
	}
	return 1
}
