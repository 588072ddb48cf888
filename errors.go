//go:build linux

package vring

import "github.com/pkg/errors"

var (
	// ErrQueueFull is returned by Submit when the submission queue is at
	// capacity. It is a pure backpressure signal; the poller never
	// retries admission on the caller's behalf.
	ErrQueueFull = errors.New("submission queue full")

	// ErrDeviceFull is returned by DeviceQueue implementations when no
	// descriptor slot is free. The poller parks the task in its pending
	// slot and retries as completions drain; submitters never see it.
	ErrDeviceFull = errors.New("device queue full")

	// ErrClosed is returned by operations on a closed poller.
	ErrClosed = errors.New("poller closed")
)
