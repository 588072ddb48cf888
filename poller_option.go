//go:build linux

package vring

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// PollerOption is an option for configuring a Poller.
type PollerOption func(*Poller) error

// WithQueueCapacity sets the submission queue capacity. The default is
// DefaultQueueCapacity; size it to the depth of the device queue being
// driven.
func WithQueueCapacity(n int) PollerOption {
	return func(p *Poller) error {
		if n <= 0 {
			return errors.Errorf("queue capacity must be positive, got %d", n)
		}
		p.capacity = n
		return nil
	}
}

// WithBusyPoll switches the poller to busy-poll mode: instead of
// blocking on the wake descriptor it sleeps for interval between idle
// iterations, trading a mostly-busy core for lower dispatch latency.
// Submissions skip the wake kick entirely in this mode.
func WithBusyPoll(interval time.Duration) PollerOption {
	return func(p *Poller) error {
		if interval <= 0 {
			return errors.Errorf("busy-poll interval must be positive, got %v", interval)
		}
		p.pollInterval = interval
		return nil
	}
}

// WithWaitTimeout bounds how long an event-driven poller blocks on the
// wake descriptor before re-checking for termination. The default is
// DefaultWaitTimeout. Ignored in busy-poll mode.
func WithWaitTimeout(d time.Duration) PollerOption {
	return func(p *Poller) error {
		if d <= 0 {
			return errors.Errorf("wait timeout must be positive, got %v", d)
		}
		p.waitTimeout = d
		return nil
	}
}

// WithLogger sets the logger used for lifecycle and failure reporting.
// The default is the standard logrus logger.
func WithLogger(l logrus.FieldLogger) PollerOption {
	return func(p *Poller) error {
		if l == nil {
			return errors.New("nil logger")
		}
		p.log = l
		return nil
	}
}
