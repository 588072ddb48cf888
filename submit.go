//go:build linux

package vring

// Submit attaches the completion callback to the task and queues it
// for dispatch. It never blocks: when the submission queue is at
// capacity it returns ErrQueueFull and the caller owns retry policy.
// Safe for concurrent use from any number of goroutines; a single
// submission enqueues the task at most once.
//
// cb runs inline on the poller goroutine once the device queue reports
// the task complete, with arg passed through untouched. arg must stay
// valid until the callback has fired; the poller releases its
// references to both as the callback returns.
//
// Submitting to a stopped poller is allowed; the task waits in the
// submission queue until a future Start.
func (p *Poller) Submit(t *Task, cb CompletionFunc, arg interface{}) error {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return ErrClosed
	}

	t.cb = cb
	t.arg = arg

	select {
	case p.inq <- t:
	default:
		return ErrQueueFull
	}

	// The task is admitted at this point, so a failed kick is not a
	// submission failure: it only costs latency, since the event-driven
	// wait re-checks the queue after waitTimeout regardless.
	if p.pollInterval == 0 {
		if err := Notify(p.dq.WakeFd()); err != nil {
			p.log.WithError(err).Warn("wake kick failed")
		}
	}
	return nil
}
