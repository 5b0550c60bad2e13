package lock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu        sync.Mutex
	held      map[string]string
	refreshes int
	err       error
}

func newFakeStore() *fakeStore {
	return &fakeStore{held: map[string]string{}}
}

func (s *fakeStore) AcquireLock(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	if _, ok := s.held[key]; ok {
		return false, nil
	}
	s.held[key] = value
	return true, nil
}

func (s *fakeStore) RefreshLock(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshes++
	return s.held[key] == value, nil
}

func (s *fakeStore) ReleaseLock(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held[key] == value {
		delete(s.held, key)
	}
	return nil
}

func (s *fakeStore) owner(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.held[key]
}

func (s *fakeStore) setOwner(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held[key] = value
}

func (s *fakeStore) refreshCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshes
}

func newTestLocker(store LockStore, ttl time.Duration, attempts int) *RedisLocker {
	l := NewRedisLocker(store, ttl, attempts)
	l.backoff = 5 * time.Millisecond
	return l
}

func TestRedisLocker_MutualExclusion(t *testing.T) {
	store := newFakeStore()
	a := newTestLocker(store, time.Second, 3)
	b := newTestLocker(store, time.Second, 3)
	ctx := context.Background()

	unlock, err := a.Lock(ctx, "batch:B1")
	require.NoError(t, err)

	_, err = b.Lock(ctx, "batch:B1")
	assert.ErrorIs(t, err, ErrBusy)

	other, err := b.Lock(ctx, "batch:B2")
	require.NoError(t, err)
	other()

	unlock()
	unlock()
	assert.Empty(t, store.owner("lock:agritrace:batch:B1"))

	again, err := b.Lock(ctx, "batch:B1")
	require.NoError(t, err)
	again()
}

func TestRedisLocker_ReleaseKeepsForeignToken(t *testing.T) {
	store := newFakeStore()
	l := newTestLocker(store, time.Second, 1)

	unlock, err := l.Lock(context.Background(), "batch:B1")
	require.NoError(t, err)

	// the lease expired and another replica took the key
	store.setOwner("lock:agritrace:batch:B1", "other-replica")
	unlock()

	assert.Equal(t, "other-replica", store.owner("lock:agritrace:batch:B1"))
}

func TestRedisLocker_RenewsWhileHeld(t *testing.T) {
	store := newFakeStore()
	l := newTestLocker(store, 20*time.Millisecond, 1)

	unlock, err := l.Lock(context.Background(), "journey:B1")
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return store.refreshCount() >= 3 }, time.Second, 5*time.Millisecond)
	unlock()

	n := store.refreshCount()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, n, store.refreshCount(), "renewal must stop after release")
}

func TestRedisLocker_StoreError(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("connection refused")
	l := newTestLocker(store, time.Second, 2)

	_, err := l.Lock(context.Background(), "batch:B1")
	assert.ErrorIs(t, err, ErrBusy)
	assert.ErrorContains(t, err, "connection refused")
}

func TestRedisLocker_CancelledWhileWaiting(t *testing.T) {
	store := newFakeStore()
	store.setOwner("lock:agritrace:batch:B1", "other-replica")
	l := NewRedisLocker(store, time.Second, 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.Lock(ctx, "batch:B1")
	assert.ErrorIs(t, err, context.Canceled)
}
