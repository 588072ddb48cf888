//go:build linux

package vring

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Poller drives a DeviceQueue from a single goroutine, admitting tasks
// submitted by any number of goroutines through a bounded submission
// queue.
type Poller struct {
	dq       DeviceQueue
	inq      chan *Task
	capacity int
	log      logrus.FieldLogger

	// Wake strategy, fixed at construction. Busy-poll when pollInterval
	// is nonzero, otherwise event-driven with waitTimeout bounding each
	// block on the wake fd.
	waitTimeout  time.Duration
	pollInterval time.Duration

	// pending is the one-deep backpressure slot holding a task the
	// device queue refused while full. Only the loop goroutine reads or
	// writes it, so it needs no synchronization. A task parked here
	// when the loop exits survives into the next Start cycle, where its
	// retry remains completion-gated: it goes back to the device only
	// once the next completion frees a descriptor.
	pending *Task

	// mu serializes lifecycle calls. Stop holds it across the join, so
	// a Start racing a Stop blocks until the loop has fully exited and
	// then performs a real restart.
	mu      sync.Mutex
	quit    chan struct{}
	done    chan struct{}
	running bool
	closed  bool

	// errMu guards loopErr separately: the loop goroutine records its
	// terminal error while Stop may be holding mu across the join.
	errMu   sync.Mutex
	loopErr error
}

// New creates a stopped Poller for the given device queue. The queue's
// lifetime is the caller's responsibility; the poller only borrows it.
func New(dq DeviceQueue, opts ...PollerOption) (*Poller, error) {
	if dq == nil {
		return nil, errors.New("nil device queue")
	}
	p := &Poller{
		dq:          dq,
		capacity:    DefaultQueueCapacity,
		waitTimeout: DefaultWaitTimeout,
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	if p.log == nil {
		p.log = logrus.StandardLogger()
	}
	p.log = p.log.WithField("poller", uuid.NewString())
	p.inq = make(chan *Task, p.capacity)
	return p, nil
}

// Start launches the dispatch loop. Starting a running poller is a
// no-op; a Start racing a concurrent Stop blocks until that Stop has
// joined the loop, then restarts it. If a previous loop died on a wake
// descriptor failure, Start returns that error; Stop acknowledges it
// and permits a restart.
func (p *Poller) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if p.running {
		select {
		case <-p.done:
			return p.terminalErr()
		default:
			return nil
		}
	}
	p.quit = make(chan struct{})
	p.done = make(chan struct{})
	p.setTerminalErr(nil)
	p.running = true
	p.log.Debug("poller started")
	go p.loop(p.quit, p.done)
	return nil
}

// stopLocked terminates the loop and joins it. Caller holds mu.
func (p *Poller) stopLocked() {
	if !p.running {
		return
	}
	close(p.quit)
	if p.pollInterval == 0 {
		// Unblock a loop parked on the wake fd.
		if err := Notify(p.dq.WakeFd()); err != nil {
			p.log.WithError(err).Warn("stop wake kick failed")
		}
	}
	<-p.done
	p.running = false
	p.log.Debug("poller stopped")
}

// Stop terminates the dispatch loop and blocks until it has exited,
// which can take up to one in-flight callback plus scheduling latency.
// Stopping a stopped poller is a no-op. Tasks still resident in the
// submission queue are abandoned in place; a task in the pending slot
// is retained for the next Start. Stop returns the loop's terminal
// error, if it died on its own.
func (p *Poller) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	return p.terminalErr()
}

// Close stops the poller if needed and marks it unusable. The device
// queue is never touched. Close returns the loop's terminal error, if
// any.
func (p *Poller) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.closed = true
	return p.terminalErr()
}

// Status is a point-in-time snapshot of a poller.
type Status struct {
	// Running reports whether the dispatch loop goroutine is alive.
	Running bool
	// Queued is the number of tasks waiting in the submission queue.
	Queued int
	// Err is the terminal error that killed the loop, if any.
	Err error
}

// Status reports whether the loop is alive, how many tasks await
// admission, and the terminal error of a dead loop. A poller whose
// loop died on a wake failure reports Running false before Stop is
// ever called, so a stalled owner can tell a dead poller from a slow
// one.
func (p *Poller) Status() Status {
	p.mu.Lock()
	s := Status{Queued: len(p.inq)}
	if p.running {
		select {
		case <-p.done:
		default:
			s.Running = true
		}
	}
	p.mu.Unlock()
	s.Err = p.terminalErr()
	return s
}

// loop dispatches new tasks and completions until quit closes or the
// wake descriptor fails. Completions are serviced before admissions so
// a device recovering from full drains its backlog first, bounding
// in-flight work to the device depth plus the one pending slot.
func (p *Poller) loop(quit, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-quit:
			return
		default:
		}

		worked := false

		if t := p.dq.TryTakeCompleted(); t != nil {
			t.complete()
			if p.pending != nil {
				if p.dq.TryEnqueue(p.pending) == nil {
					p.pending = nil
				}
			}
			worked = true
		}

		if p.pending == nil {
			select {
			case t := <-p.inq:
				if p.dq.TryEnqueue(t) != nil {
					p.pending = t
				}
				worked = true
			default:
			}
		}

		if worked {
			continue
		}
		if p.pollInterval > 0 {
			time.Sleep(p.pollInterval)
			continue
		}
		if err := waitWake(p.dq.WakeFd(), p.waitTimeout); err != nil {
			p.fail(err)
			return
		}
	}
}

// fail records a terminal loop error so Status and Stop report a dead
// poller instead of leaving submitters to starve silently.
func (p *Poller) fail(err error) {
	p.setTerminalErr(err)
	p.log.WithError(err).Error("poller dead: wake descriptor failure")
}

func (p *Poller) terminalErr() error {
	p.errMu.Lock()
	defer p.errMu.Unlock()
	return p.loopErr
}

func (p *Poller) setTerminalErr(err error) {
	p.errMu.Lock()
	p.loopErr = err
	p.errMu.Unlock()
}
