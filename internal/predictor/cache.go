package predictor

import (
	"context"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/pennant-path/internal/metrics"
)

// PairSource is anything that answers pairwise win probabilities.
type PairSource interface {
	WinProbability(ctx context.Context, team, opponent string) (float64, error)
}

// CachedSource memoizes a PairSource. Errors are never cached.
type CachedSource struct {
	source    PairSource
	cache     *cache.Cache
	mu        sync.Mutex
	hitCount  uint64
	missCount uint64
}

// NewCachedSource wraps source with an in-memory cache. A non-positive ttl
// keeps entries until Clear.
func NewCachedSource(source PairSource, ttl time.Duration) *CachedSource {
	expiration := cache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		expiration = ttl
		cleanup = ttl * 2
	}
	return &CachedSource{
		source: source,
		cache:  cache.New(expiration, cleanup),
	}
}

func pairKey(team, opponent string) string {
	return team + "\x00" + opponent
}

// WinProbability returns the cached probability or asks the wrapped source.
func (c *CachedSource) WinProbability(ctx context.Context, team, opponent string) (float64, error) {
	key := pairKey(team, opponent)
	if v, found := c.cache.Get(key); found {
		c.record(true)
		return v.(float64), nil
	}
	c.record(false)

	p, err := c.source.WinProbability(ctx, team, opponent)
	if err != nil {
		return 0, err
	}
	c.cache.SetDefault(key, p)
	return p, nil
}

func (c *CachedSource) record(hit bool) {
	c.mu.Lock()
	if hit {
		c.hitCount++
	} else {
		c.missCount++
	}
	ratio := float64(c.hitCount) / float64(c.hitCount+c.missCount)
	c.mu.Unlock()
	metrics.UpdateCacheHitRatio(ratio)
}

// Stats returns cache statistics
func (c *CachedSource) Stats() (hits, misses uint64, ratio float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	hits = c.hitCount
	misses = c.missCount
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of cached pairs.
func (c *CachedSource) ItemCount() int {
	return c.cache.ItemCount()
}
