package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/vision2030/site-server/internal/model"
)

var sectionsListKey = cacheKey("sections", "all")

// SectionsCache is a cache-aside store for the public sections listing.
// Cache failures never fail a request: a miss or a redis error just falls
// through to the database.
type SectionsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSectionsCache(client *Client, ttl time.Duration) *SectionsCache {
	return &SectionsCache{client: client.Client, ttl: ttl}
}

func (c *SectionsCache) GetAll(ctx context.Context) ([]model.Section, bool) {
	payload, err := c.client.Get(ctx, sectionsListKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("sections cache read failed")
		}
		return nil, false
	}

	var sections []model.Section
	if err := json.Unmarshal(payload, &sections); err != nil {
		log.Warn().Err(err).Msg("sections cache payload corrupt, dropping")
		c.Invalidate(ctx)
		return nil, false
	}
	return sections, true
}

func (c *SectionsCache) SetAll(ctx context.Context, sections []model.Section) {
	payload, err := json.Marshal(sections)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, sectionsListKey, payload, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("sections cache write failed")
	}
}

// Invalidate drops the cached listing. Called after every section mutation.
func (c *SectionsCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, sectionsListKey).Err(); err != nil {
		log.Warn().Err(err).Msg("sections cache invalidation failed")
	}
}
