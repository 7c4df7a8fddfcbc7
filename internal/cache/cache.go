package cache

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Stats reports cache performance counters.
type Stats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// Cache stores analysis results by key.
type Cache interface {
	Get(key string) (string, bool)
	Add(key, value string)
	Len() int
	Stats() Stats
}

type implCache struct {
	lru    *expirable.LRU[string, string]
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a least-recently-used cache bounded by capacity whose entries expire after ttl.
func New(capacity int, ttl time.Duration) Cache {
	return &implCache{
		lru: expirable.NewLRU[string, string](capacity, nil, ttl),
	}
}

func (c *implCache) Get(key string) (string, bool) {
	v, ok := c.lru.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

func (c *implCache) Add(key, value string) {
	c.lru.Add(key, value)
}

func (c *implCache) Len() int {
	return c.lru.Len()
}

func (c *implCache) Stats() Stats {
	return Stats{
		Entries: c.lru.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}
