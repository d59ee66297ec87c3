package search

import (
	"context"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"suggest/internal/domain"
)

// Cached remembers successful results of another Searcher. Failures are never
// cached.
type Cached struct {
	next  Searcher
	cache *expirable.LRU[string, []domain.Suggestion]
}

// NewCached wraps next with an LRU of size entries that expire after ttl.
// A ttl of zero keeps entries until they are evicted.
func NewCached(next Searcher, size int, ttl time.Duration) *Cached {
	if size <= 0 {
		size = 256
	}
	return &Cached{
		next:  next,
		cache: expirable.NewLRU[string, []domain.Suggestion](size, nil, ttl),
	}
}

// Search implements Searcher.
func (c *Cached) Search(ctx context.Context, query string, limit int) ([]domain.Suggestion, error) {
	key := strconv.Itoa(limit) + "\x00" + query
	if results, ok := c.cache.Get(key); ok {
		return results, nil
	}

	results, err := c.next.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, results)
	return results, nil
}

// Len returns the number of cached queries.
func (c *Cached) Len() int {
	return c.cache.Len()
}

// Purge drops every cached result, e.g. after the index changed.
func (c *Cached) Purge() {
	c.cache.Purge()
}
