//go:build linux

package vring

// DeviceQueue is the vring being driven. Implementations expose
// non-blocking take/enqueue operations plus an eventfd used as a
// counting, level-triggered wake signal.
//
// A DeviceQueue must only ever be driven by one goroutine at a time.
// The Poller enforces this by construction: TryTakeCompleted and
// TryEnqueue are called exclusively from its loop goroutine, and the
// poller never exposes its queue reference. The wake fd is written by
// submitters and by Stop, and read only by the loop goroutine.
//
// The poller borrows the queue; Close never tears it down.
type DeviceQueue interface {
	// TryTakeCompleted returns the next completed task, or nil.
	TryTakeCompleted() *Task

	// TryEnqueue places a task on the device queue, returning
	// ErrDeviceFull when no descriptor slot is free.
	TryEnqueue(t *Task) error

	// WakeFd returns the eventfd submitters kick to wake the poller.
	WakeFd() int
}
