//go:build linux

package vring

import "context"

// SubmitSync submits the task and blocks until its completion callback
// has run, so any side effect the device performed on the payload is
// visible when it returns. Each call owns a private wait channel;
// concurrent synchronous submitters never contend with one another.
func (p *Poller) SubmitSync(t *Task) error {
	return p.SubmitSyncContext(context.Background(), t)
}

// SubmitSyncContext is SubmitSync with a caller-controlled bound on the
// wait. When ctx expires first the task is not cancelled: it stays
// queued and its callback may still fire later. The wait channel is
// owned by the completion closure rather than this call frame, so a
// late completion is harmless; the caller merely cannot observe it
// through this call.
func (p *Poller) SubmitSyncContext(ctx context.Context, t *Task) error {
	completed := make(chan struct{})
	if err := p.Submit(t, func(*Task, interface{}) { close(completed) }, nil); err != nil {
		return err
	}
	select {
	case <-completed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
