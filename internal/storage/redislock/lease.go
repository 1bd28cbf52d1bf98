// Package redislock provides short-lived leases so only one bookingd
// instance runs a given sweep per tick.
package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrNotAcquired means another holder owns the lease.
var ErrNotAcquired = errors.New("lease held elsewhere")

const keyPrefix = "bookingd:lease:"

// releaseScript deletes the key only if it still carries our token, so a
// lease that expired and was taken over is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

type Locker struct {
	client *redis.Client
}

func New(client *redis.Client) *Locker {
	return &Locker{client: client}
}

// Connect parses a redis:// URL or a bare host:port address and pings it.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{Addr: addr}
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return client, nil
}

// Acquire takes the named lease for ttl. The returned release func is safe
// to call after the lease expired.
func (l *Locker) Acquire(ctx context.Context, name string, ttl time.Duration) (func(context.Context) error, error) {
	key := keyPrefix + name
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lease %s: %w", name, err)
	}
	if !ok {
		return nil, ErrNotAcquired
	}

	release := func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("release lease %s: %w", name, err)
		}
		return nil
	}
	return release, nil
}
