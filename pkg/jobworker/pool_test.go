package jobworker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test 1: TryDispatch no debe bloquear al caller
func TestPool_DispatchNonBlocking(t *testing.T) {
	pool := NewPool(2, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool.Start(ctx)
	defer pool.Stop()

	start := time.Now()
	accepted := pool.TryDispatch(Job{
		UserID: "user-1",
		NoteID: "note-1",
		Handler: func(ctx context.Context) error {
			time.Sleep(100 * time.Millisecond)
			return nil
		},
	})
	elapsed := time.Since(start)

	require.True(t, accepted)
	assert.Less(t, elapsed, 10*time.Millisecond, "TryDispatch debe ser no bloqueante")
}

// Test 2: Jobs del mismo usuario deben procesarse en orden
func TestPool_SameUserSequentialProcessing(t *testing.T) {
	pool := NewPool(4, 100)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool.Start(ctx)
	defer pool.Stop()

	var mu sync.Mutex
	var results []int
	done := make(chan struct{})

	for i := 1; i <= 5; i++ {
		val := i
		pool.TryDispatch(Job{
			UserID: "user-1",
			NoteID: "note",
			Handler: func(ctx context.Context) error {
				time.Sleep(5 * time.Millisecond)
				mu.Lock()
				results = append(results, val)
				if len(results) == 5 {
					close(done)
				}
				mu.Unlock()
				return nil
			},
		})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for jobs")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2, 3, 4, 5}, results, "jobs del mismo usuario deben mantener el orden")
}

// Test 3: Cola llena aplica backpressure en vez de bloquear
func TestPool_BackpressureWhenQueueFull(t *testing.T) {
	pool := NewPool(1, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool.Start(ctx)
	defer pool.Stop()

	block := make(chan struct{})
	slow := func(ctx context.Context) error {
		<-block
		return nil
	}

	// Primer job ocupa el worker, el segundo llena la cola.
	require.True(t, pool.TryDispatch(Job{UserID: "u", NoteID: "a", Handler: slow}))
	time.Sleep(20 * time.Millisecond)
	require.True(t, pool.TryDispatch(Job{UserID: "u", NoteID: "b", Handler: slow}))

	accepted := pool.TryDispatch(Job{UserID: "u", NoteID: "c", Handler: slow})
	assert.False(t, accepted, "con la cola llena TryDispatch debe rechazar")

	stats := pool.GetStats()
	assert.GreaterOrEqual(t, stats.TotalDropped, int64(1))

	close(block)
}

// Test 4: Stop espera a los jobs en vuelo
func TestPool_GracefulStop(t *testing.T) {
	pool := NewPool(2, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool.Start(ctx)

	var processed int64
	for i := 0; i < 4; i++ {
		pool.TryDispatch(Job{
			UserID: "user-1",
			NoteID: "note",
			Handler: func(ctx context.Context) error {
				time.Sleep(10 * time.Millisecond)
				atomic.AddInt64(&processed, 1)
				return nil
			},
		})
	}

	pool.Stop()
	assert.Equal(t, int64(4), atomic.LoadInt64(&processed), "Stop debe drenar los jobs encolados")

	// Después del Stop todo dispatch se rechaza.
	assert.False(t, pool.TryDispatch(Job{UserID: "u", NoteID: "n", Handler: func(ctx context.Context) error { return nil }}))
}

// Test 5: Un panic en un handler no tumba al worker
func TestPool_PanicRecovery(t *testing.T) {
	pool := NewPool(1, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool.Start(ctx)
	defer pool.Stop()

	pool.TryDispatch(Job{
		UserID:  "user-1",
		NoteID:  "bad",
		Handler: func(ctx context.Context) error { panic("boom") },
	})

	done := make(chan struct{})
	pool.TryDispatch(Job{
		UserID: "user-1",
		NoteID: "good",
		Handler: func(ctx context.Context) error {
			close(done)
			return nil
		},
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker died after panic")
	}

	stats := pool.GetStats()
	assert.GreaterOrEqual(t, stats.TotalErrors, int64(1))
}
