package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rafaelleal24/storefront/internal/adapters/http/middleware"
)

// rateLimitScript returns {count, remaining window in ms}.
var rateLimitScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
return {count, ttl}
`)

type RateLimiter struct {
	client *Client
}

func NewRateLimiter(client *Client) *RateLimiter {
	return &RateLimiter{client: client}
}

var _ middleware.RateLimiter = (*RateLimiter)(nil)

func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (middleware.RateLimitResult, error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)
	values, err := rateLimitScript.Run(ctx, r.client.rdb, []string{redisKey}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return middleware.RateLimitResult{}, err
	}
	if len(values) != 2 {
		return middleware.RateLimitResult{}, fmt.Errorf("unexpected rate limit reply: %v", values)
	}

	count, ttl := int(values[0]), values[1]
	resetIn := window
	if ttl > 0 {
		resetIn = time.Duration(ttl) * time.Millisecond
	}

	return middleware.RateLimitResult{
		Allowed:   count <= limit,
		Remaining: max(limit-count, 0),
		ResetIn:   resetIn,
	}, nil
}
