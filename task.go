//go:build linux

package vring

// CompletionFunc is invoked on the poller goroutine when the device
// queue reports a task complete. It runs inline in the dispatch loop:
// it must be fast and must not block, or it stalls completion
// processing and admission for the whole poller.
type CompletionFunc func(t *Task, arg interface{})

// Task is a unit of work handed to a Poller. The payload is owned by
// the caller for the task's entire lifetime; the poller only threads
// the task through the device queue and fires the completion callback
// exactly once per submission.
type Task struct {
	// Payload is an opaque reference to whatever the device queue
	// understands. The poller never inspects it.
	Payload interface{}

	cb  CompletionFunc
	arg interface{}
}

// complete fires the completion callback, if any. Poller goroutine
// only.
func (t *Task) complete() {
	if t.cb != nil {
		t.cb(t, t.arg)
	}
}
