//go:build linux

package vring

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSubmitSyncSideEffect(t *testing.T) {
	q := newLoopbackQueue(t, 8)
	p := newTestPoller(t, q)
	require.NoError(t, p.Start())

	// Callbacks run in admission order on the one poller goroutine, so
	// by the time SubmitSync returns, the side effect of the earlier
	// async task's callback must be visible.
	flag := false
	require.NoError(t, p.Submit(&Task{}, func(*Task, interface{}) { flag = true }, nil))
	require.NoError(t, p.SubmitSync(&Task{}))
	require.True(t, flag)
	require.NoError(t, p.Stop())
}

func TestSubmitSyncConcurrent(t *testing.T) {
	q := newLoopbackQueue(t, 16)
	p := newTestPoller(t, q)
	require.NoError(t, p.Start())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 8; j++ {
				if err := p.SubmitSync(&Task{}); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
	require.NoError(t, p.Stop())
}

func TestSubmitSyncQueueFull(t *testing.T) {
	q := newLoopbackQueue(t, 8)
	p := newTestPoller(t, q, WithQueueCapacity(1))

	// Not started and already occupied: the enqueue fails immediately
	// and SubmitSync never blocks.
	require.NoError(t, p.Submit(&Task{}, nil, nil))
	require.Equal(t, ErrQueueFull, p.SubmitSync(&Task{}))
}

func TestSubmitSyncContextCancel(t *testing.T) {
	// Unstarted poller: the task is accepted but never completes, so
	// only the context bounds the wait. The late callback, if the
	// poller were started afterwards, lands on the closure-owned
	// channel and is harmless.
	q := newLoopbackQueue(t, 8)
	p := newTestPoller(t, q)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := p.SubmitSyncContext(ctx, &Task{})
	require.Equal(t, context.DeadlineExceeded, err)
}
