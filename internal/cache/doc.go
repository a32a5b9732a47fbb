// Package cache provides the generic LRU cache behind pathfx.Engine's
// measure memoization.
//
//	c := cache.New[uint64, *Measure](128)
//	c.Set(id, m)
//	m, ok := c.Get(id)
//
// # Eviction
//
// Entries are kept in recency order in a doubly-linked list. When the cache
// grows past its soft limit, least recently used entries are dropped until
// it is back to three quarters of the limit, so a burst of new paths does
// not evict on every insert.
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation
// (it contains a mutex).
package cache
