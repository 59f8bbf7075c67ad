package backend

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"wedding-trivia/internal/domain"
)

// LeaderboardFetcher fetches backend-ordered standings.
type LeaderboardFetcher interface {
	Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error)
}

// CachedLeaderboard caches standings with TTL so a refresh poll does not
// hammer the backend. Concurrent misses collapse into one fetch.
type CachedLeaderboard struct {
	fetcher LeaderboardFetcher
	ttl     time.Duration
	clock   func() time.Time
	sf      singleflight.Group
	rnd     *rand.Rand

	mu        sync.RWMutex
	entries   []domain.LeaderboardEntry
	expiresAt time.Time
}

func NewCachedLeaderboard(fetcher LeaderboardFetcher, ttl time.Duration) *CachedLeaderboard {
	return &CachedLeaderboard{
		fetcher: fetcher,
		ttl:     ttl,
		clock:   time.Now,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CachedLeaderboard) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	now := c.clock()

	c.mu.RLock()
	if c.entries != nil && c.expiresAt.After(now) {
		entries := c.entries
		c.mu.RUnlock()
		return entries, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("leaderboard", func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if c.entries != nil && c.expiresAt.After(now) {
			entries := c.entries
			c.mu.RUnlock()
			return entries, nil
		}
		c.mu.RUnlock()

		entries, err := c.fetcher.Leaderboard(ctx)
		if err != nil {
			return nil, err
		}
		if entries == nil {
			entries = []domain.LeaderboardEntry{}
		}

		c.mu.Lock()
		c.entries = entries
		c.expiresAt = now.Add(c.ttlWithJitter())
		c.mu.Unlock()
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.LeaderboardEntry), nil
}

func (c *CachedLeaderboard) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
