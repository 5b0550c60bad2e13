package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrBusy is returned when a distributed lock could not be taken within the retry budget.
var ErrBusy = errors.New("system busy, please try again later (lock)")

const defaultLockTTL = 5 * time.Second

// LockStore holds token-guarded keys with an expiry. *cache.RedisClient implements it.
type LockStore interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	RefreshLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}

// RedisLocker takes a SET NX lock per key, for deployments running several replicas.
// While a lock is held its expiry is pushed forward every ttl/2.
type RedisLocker struct {
	client   LockStore
	ttl      time.Duration
	attempts int
	backoff  time.Duration
	prefix   string
}

func NewRedisLocker(client LockStore, ttl time.Duration, attempts int) *RedisLocker {
	if attempts < 1 {
		attempts = 1
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &RedisLocker{
		client:   client,
		ttl:      ttl,
		attempts: attempts,
		backoff:  100 * time.Millisecond,
		prefix:   "lock:agritrace:",
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	lockKey := l.prefix + key
	token := uuid.New().String()

	var lastErr error
	for i := 0; i < l.attempts; i++ {
		ok, err := l.client.AcquireLock(ctx, lockKey, token, l.ttl)
		if err != nil {
			lastErr = err
		}
		if ok {
			return l.hold(lockKey, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.backoff):
		}
	}

	if lastErr != nil {
		return nil, errors.Join(ErrBusy, lastErr)
	}
	return nil, ErrBusy
}

// hold starts the lease renewal and returns the idempotent release func.
func (l *RedisLocker) hold(lockKey, token string) func() {
	stop := make(chan struct{})
	done := make(chan struct{})
	go l.keepAlive(lockKey, token, stop, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
			// release with a fresh context so a cancelled request still frees the key
			ctx, cancel := context.WithTimeout(context.Background(), l.ttl)
			defer cancel()
			_ = l.client.ReleaseLock(ctx, lockKey, token)
		})
	}
}

func (l *RedisLocker) keepAlive(lockKey, token string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(l.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), l.ttl/2)
			ok, err := l.client.RefreshLock(ctx, lockKey, token, l.ttl)
			cancel()
			if err != nil || !ok {
				// the key expired or was taken over; release stays token-guarded
				return
			}
		}
	}
}
