package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeExpirer struct {
	mu    sync.Mutex
	calls int
	ttl   time.Duration
	ids   []string
}

func (f *fakeExpirer) ExpireIdle(ttl time.Duration) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.ttl = ttl
	ids := f.ids
	f.ids = nil
	return ids
}

func (f *fakeExpirer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestExpireIdleSessionsPassesTTL(t *testing.T) {
	store := &fakeExpirer{ids: []string{"a", "b"}}
	w := NewSessionExpirationWorker(store, 30*time.Minute, nil)

	assert.Equal(t, 2, w.expireIdleSessions())
	assert.Equal(t, 30*time.Minute, store.ttl)
	assert.Equal(t, 0, w.expireIdleSessions())
}

func TestTickIntervalFollowsShortTTL(t *testing.T) {
	w := NewSessionExpirationWorker(&fakeExpirer{}, 10*time.Second, nil)
	assert.Equal(t, 5*time.Second, w.tickInterval)

	w = NewSessionExpirationWorker(&fakeExpirer{}, time.Hour, nil)
	assert.Equal(t, time.Minute, w.tickInterval)
}

func TestStartSweepsUntilCancelled(t *testing.T) {
	store := &fakeExpirer{}
	w := NewSessionExpirationWorker(store, 20*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return store.callCount() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker não encerrou após cancelamento")
	}
}
