package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/oxoxo-backend/internal/apperror"
)

const lockKeyPrefix = "oxoxo:lock:"

// Both scripts act only while the key still holds the caller's token, so an
// expired holder cannot touch a lock someone else took over.
var (
	releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

	extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`)
)

type Lock interface {
	// Extend keeps the lock alive. It only talks to Redis once half the TTL
	// has passed, so it is cheap to call after every ply.
	Extend(ctx context.Context) error
	Release(ctx context.Context) error
}

type redisLock struct {
	client    *redis.Client
	key       string
	token     string
	ttl       time.Duration
	renewedAt time.Time
}

func (that *dbGame) Lock(ctx context.Context, id string) (Lock, error) {
	lock := &redisLock{
		client: that.client,
		key:    lockKeyPrefix + id,
		token:  uuid.NewString(),
		ttl:    that.lockTTL,
	}

	acquired, err := that.client.SetNX(ctx, lock.key, lock.token, lock.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to lock game: %w", err)
	}

	if !acquired {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameBusy, id)
	}
	lock.renewedAt = time.Now()

	return lock, nil
}

func (that *redisLock) Extend(ctx context.Context) error {
	if time.Since(that.renewedAt) < that.ttl/2 {
		return nil
	}

	extended, err := extendScript.Run(ctx, that.client, []string{that.key}, that.token, that.ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("failed to extend game lock: %w", err)
	}

	if extended == 0 {
		return fmt.Errorf("%w: lock %s expired", apperror.ErrGameBusy, that.key)
	}
	that.renewedAt = time.Now()

	return nil
}

func (that *redisLock) Release(ctx context.Context) error {
	if err := releaseScript.Run(ctx, that.client, []string{that.key}, that.token).Err(); err != nil {
		return fmt.Errorf("failed to release game lock: %w", err)
	}

	return nil
}
