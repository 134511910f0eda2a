// Package redis wraps the shared client and the one cache the site keeps:
// the public sections listing.
package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces every key the site writes so a scoped SCAN or
// deletion never touches other tenants of a shared redis.
const keyPrefix = "vision"

func cacheKey(parts ...string) string {
	return keyPrefix + ":" + strings.Join(parts, ":")
}

type Client struct {
	*redis.Client
}

func NewClient(redisURL string) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Client{client}, nil
}

// SectionsCache binds the sections listing cache to this client.
func (c *Client) SectionsCache(ttl time.Duration) *SectionsCache {
	return NewSectionsCache(c, ttl)
}

func (c *Client) Close() error {
	return c.Client.Close()
}
