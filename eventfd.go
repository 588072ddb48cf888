//go:build linux

package vring

import (
	"encoding/binary"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// NewEventFd creates a nonblocking eventfd suitable as a DeviceQueue
// wake descriptor.
func NewEventFd() (int, error) {
	fd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		return -1, errors.Wrap(err, "eventfd")
	}
	return fd, nil
}

// Notify increments the eventfd counter, waking a poller blocked on it.
// Notifications coalesce: many calls may be observed as a single wake.
// EAGAIN means the counter is saturated, which still leaves the fd
// readable, so it is not an error.
func Notify(fd int) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], 1)
	for {
		_, err := unix.Write(fd, buf[:])
		switch err {
		case nil, unix.EAGAIN:
			return nil
		case unix.EINTR:
			continue
		default:
			return errors.Wrap(err, "write wake eventfd")
		}
	}
}

// waitWake blocks on the wake fd until it becomes readable or the
// timeout elapses, then drains the counter. A timeout is not an error;
// it exists so the loop re-checks termination even without a wake.
func waitWake(fd int, timeout time.Duration) error {
	// Round up: poll(2) takes whole milliseconds, and truncating a
	// sub-millisecond timeout to zero would turn the wait into a hot
	// spin.
	ms := int((timeout + time.Millisecond - 1) / time.Millisecond)
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, ms)
	if err != nil {
		if err == unix.EINTR {
			return nil
		}
		return errors.Wrap(err, "poll wake eventfd")
	}
	if n == 0 {
		return nil
	}
	if fds[0].Revents&(unix.POLLERR|unix.POLLNVAL) != 0 {
		return errors.Errorf("wake eventfd unusable: revents %#x", fds[0].Revents)
	}
	if fds[0].Revents&unix.POLLIN == 0 {
		return nil
	}
	return drainWake(fd)
}

// drainWake resets the eventfd counter after a wake. EAGAIN means the
// count was already consumed, which is fine.
func drainWake(fd int) error {
	var buf [8]byte
	for {
		_, err := unix.Read(fd, buf[:])
		switch err {
		case nil, unix.EAGAIN:
			return nil
		case unix.EINTR:
			continue
		default:
			return errors.Wrap(err, "read wake eventfd")
		}
	}
}
