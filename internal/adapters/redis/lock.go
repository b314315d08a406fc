package redis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rafaelleal24/smartpantry/internal/core/port"
)

// Lock is a best-effort distributed lock. The TTL bounds how long a key stays
// held when the owner never releases it.
type Lock struct {
	client *Client
	owner  string
}

func NewLock(client *Client) port.LockPort {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return &Lock{client: client, owner: fmt.Sprintf("%s:%d", host, os.Getpid())}
}

func (l *Lock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, lockKey(key), l.owner, ttl)
}

// Release frees key if this process still owns it. A lock taken over by
// someone else after expiry is left alone.
func (l *Lock) Release(ctx context.Context, key string) error {
	_, err := l.client.DelIfEqual(ctx, lockKey(key), l.owner)
	return err
}

func lockKey(key string) string {
	return fmt.Sprintf("lock:%s", key)
}
