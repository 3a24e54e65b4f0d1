package gateway

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/naka-gawa/github-wrapped/internal/domain"
)

// cacheItem is a fetched value with its expiry.
type cacheItem struct {
	value     any
	expiresAt time.Time
}

// CachedFetcher decorates a Fetcher with a time-bounded response cache.
// Errors are never cached. Cached values are shared and must not be mutated.
type CachedFetcher struct {
	next  Fetcher
	ttl   time.Duration
	now   func() time.Time
	mu    sync.Mutex
	items map[string]cacheItem
}

// NewCachedFetcher wraps next; a ttl <= 0 disables caching.
func NewCachedFetcher(next Fetcher, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{
		next:  next,
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]cacheItem),
	}
}

func (c *CachedFetcher) get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(item.expiresAt) {
		delete(c.items, key)
		return nil, false
	}
	return item.value, true
}

func (c *CachedFetcher) set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheItem{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Purge drops every expired entry and returns how many were removed.
func (c *CachedFetcher) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	removed := 0
	for key, item := range c.items {
		if !now.Before(item.expiresAt) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

// TTL returns the configured expiry.
func (c *CachedFetcher) TTL() time.Duration {
	return c.ttl
}

// Len returns the number of entries currently held, expired or not.
func (c *CachedFetcher) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// cacheKey is case-insensitive in the login, as GitHub is.
func cacheKey(kind, user string) string {
	return kind + ":" + strings.ToLower(user)
}

func cached[T any](c *CachedFetcher, key string, fetch func() (T, error)) (T, error) {
	if c.ttl <= 0 {
		return fetch()
	}
	if v, ok := c.get(key); ok {
		return v.(T), nil
	}
	v, err := fetch()
	if err != nil {
		return v, err
	}
	c.set(key, v)
	return v, nil
}

func (c *CachedFetcher) FetchProfile(ctx context.Context, user string) (domain.CommunityStats, error) {
	return cached(c, cacheKey("profile", user), func() (domain.CommunityStats, error) {
		return c.next.FetchProfile(ctx, user)
	})
}

func (c *CachedFetcher) FetchRepositories(ctx context.Context, user string) ([]domain.RepositoryRecord, error) {
	return cached(c, cacheKey("repos", user), func() ([]domain.RepositoryRecord, error) {
		return c.next.FetchRepositories(ctx, user)
	})
}

func (c *CachedFetcher) FetchContributions(ctx context.Context, user string, year int) (*Contributions, error) {
	return cached(c, fmt.Sprintf("%s:%d", cacheKey("contributions", user), year), func() (*Contributions, error) {
		return c.next.FetchContributions(ctx, user, year)
	})
}

func (c *CachedFetcher) FetchEventTimes(ctx context.Context, user string) ([]time.Time, error) {
	return cached(c, cacheKey("events", user), func() ([]time.Time, error) {
		return c.next.FetchEventTimes(ctx, user)
	})
}
