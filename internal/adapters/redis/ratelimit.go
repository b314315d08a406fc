package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rafaelleal24/smartpantry/internal/adapters/http/middleware"
)

// Fixed window counter. Returns the count after this request and the
// window's remaining lifetime in milliseconds.
var rateLimitScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return {count, redis.call('PTTL', KEYS[1])}
`)

type RateLimiter struct {
	client *Client
}

func NewRateLimiter(client *Client) middleware.RateLimiter {
	return &RateLimiter{client: client}
}

func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (middleware.RateLimitDecision, error) {
	window = max(window, time.Second)

	values, err := rateLimitScript.Run(ctx, r.client.rdb, []string{r.client.key(fmt.Sprintf("ratelimit:%s", key))}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return middleware.RateLimitDecision{}, err
	}
	if len(values) != 2 {
		return middleware.RateLimitDecision{}, fmt.Errorf("unexpected rate limit reply: %v", values)
	}

	count := int(values[0])
	return middleware.RateLimitDecision{
		Allowed:   count <= limit,
		Remaining: limit - count,
		ResetIn:   time.Duration(max(values[1], 0)) * time.Millisecond,
	}, nil
}
