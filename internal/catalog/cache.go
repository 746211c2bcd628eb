package catalog

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"cinequiz/internal/domain"
)

// DetailLoader fetches a full movie record; *Client satisfies it.
type DetailLoader interface {
	GetDetails(ctx context.Context, movieID string) (domain.MovieDetails, error)
}

// DetailCache caches movie details with TTL to avoid re-fetching the same
// record while a user bounces between views.
type DetailCache struct {
	loader DetailLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedDetails
}

type cachedDetails struct {
	details   domain.MovieDetails
	expiresAt time.Time
}

func NewDetailCache(loader DetailLoader, ttl time.Duration) *DetailCache {
	return &DetailCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedDetails),
	}
}

func (c *DetailCache) GetDetails(ctx context.Context, movieID string) (domain.MovieDetails, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[movieID]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.details, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(movieID, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[movieID]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.details, nil
		}
		c.mu.RUnlock()

		details, err := c.loader.GetDetails(ctx, movieID)
		if err != nil {
			return domain.MovieDetails{}, err
		}

		c.mu.Lock()
		c.cache[movieID] = cachedDetails{
			details:   details,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return details, nil
	})
	if err != nil {
		return domain.MovieDetails{}, err
	}
	return result.(domain.MovieDetails), nil
}

func (c *DetailCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
