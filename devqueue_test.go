//go:build linux

package vring

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// loopbackQueue is a DeviceQueue for tests: every task it accepts is
// observable as completed, in FIFO order. rejects forces the next n
// TryEnqueue calls to report the device full. Tests may also push
// externally-completed tasks straight into inflight.
type loopbackQueue struct {
	inflight chan *Task
	wakeFd   int
	rejects  int32
}

func newLoopbackQueue(tb testing.TB, depth int) *loopbackQueue {
	tb.Helper()
	fd, err := NewEventFd()
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = unix.Close(fd) })
	return &loopbackQueue{
		inflight: make(chan *Task, depth),
		wakeFd:   fd,
	}
}

func (q *loopbackQueue) TryTakeCompleted() *Task {
	select {
	case t := <-q.inflight:
		return t
	default:
		return nil
	}
}

func (q *loopbackQueue) TryEnqueue(t *Task) error {
	if atomic.LoadInt32(&q.rejects) > 0 {
		atomic.AddInt32(&q.rejects, -1)
		return ErrDeviceFull
	}
	select {
	case q.inflight <- t:
		return nil
	default:
		return ErrDeviceFull
	}
}

func (q *loopbackQueue) WakeFd() int { return q.wakeFd }
