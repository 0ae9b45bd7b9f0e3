package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/application/usecase/portfolio"
)

// PortfolioCacheTTL is short on purpose: the cache mostly covers the burst
// of views right after a portfolio is shared.
const PortfolioCacheTTL = 5 * time.Minute

type redisPortfolioCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisPortfolioCache(rdb *redis.Client) portfolio.ViewCache {
	return &redisPortfolioCache{rdb: rdb, ttl: PortfolioCacheTTL}
}

func portfolioKey(username string) string {
	return "portfolio:view:" + username
}

func (c *redisPortfolioCache) Get(ctx context.Context, username string) (*portfolio.View, bool, error) {
	raw, err := c.rdb.Get(ctx, portfolioKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	view := &portfolio.View{}
	if err := json.Unmarshal(raw, view); err != nil {
		return nil, false, err
	}
	return view, true, nil
}

func (c *redisPortfolioCache) Set(ctx context.Context, username string, view *portfolio.View) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, portfolioKey(username), raw, c.ttl).Err()
}
