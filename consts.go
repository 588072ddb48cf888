//go:build linux

package vring

import "time"

const (
	// DefaultQueueCapacity is the submission queue capacity used when
	// WithQueueCapacity is not given. It should track the depth of the
	// device queue being driven.
	DefaultQueueCapacity = 1024

	// DefaultWaitTimeout bounds how long an event-driven poller blocks
	// on the wake descriptor before re-checking for termination.
	DefaultWaitTimeout = time.Second

	// DefaultPollInterval is the sleep between idle iterations of a
	// busy-poll poller.
	DefaultPollInterval = 50 * time.Microsecond
)
