package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const publicMembersKey = "public:members"

// PublicCache holds the rendered public member listing. Any member or member
// photo mutation invalidates it.
type PublicCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPublicCache(client *redis.Client, ttl time.Duration) *PublicCache {
	return &PublicCache{client: client, ttl: ttl}
}

// Members returns the cached payload and whether it was present.
func (c *PublicCache) Members(ctx context.Context) ([]byte, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}
	payload, err := c.client.Get(ctx, publicMembersKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (c *PublicCache) StoreMembers(ctx context.Context, payload []byte) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, publicMembersKey, payload, c.ttl).Err()
}

func (c *PublicCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, publicMembersKey).Err()
}
