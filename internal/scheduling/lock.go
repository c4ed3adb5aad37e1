package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSlotLockBusy is returned when another booking request currently holds
// the lock for the same doctor and instant.
var ErrSlotLockBusy = errors.New("slot is currently being booked, please retry")

// SlotLocker guards the conflict-check-then-insert critical section of a
// booking per (doctor, instant) pair.
type SlotLocker interface {
	WithSlotLock(ctx context.Context, doctorID string, at time.Time, fn func(ctx context.Context) error) error
}

type redisSlotLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSlotLocker creates a locker that uses a per-slot Redis key.
func NewRedisSlotLocker(client *redis.Client, ttl time.Duration) SlotLocker {
	return &redisSlotLocker{
		client: client,
		ttl:    ttl,
	}
}

func (l *redisSlotLocker) WithSlotLock(ctx context.Context, doctorID string, at time.Time, fn func(ctx context.Context) error) error {
	key := fmt.Sprintf("lock:slot:%s:%d", doctorID, at.Unix())
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire slot lock: %w", err)
	}
	if !ok {
		return ErrSlotLockBusy
	}

	defer func() {
		_ = l.release(ctx, key, token)
	}()

	ctxWithTimeout, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(ctxWithTimeout)
}

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *redisSlotLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release slot lock: %w", err)
	}
	return nil
}

type noopSlotLocker struct{}

// NewNoopSlotLocker returns a locker that runs the critical section without
// coordination. Used when Redis is not configured; the database uniqueness
// guard still prevents double booking.
func NewNoopSlotLocker() SlotLocker {
	return noopSlotLocker{}
}

func (noopSlotLocker) WithSlotLock(ctx context.Context, _ string, _ time.Time, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
