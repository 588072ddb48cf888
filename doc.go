// Package vring implements the dispatch core of a virtio-style I/O
// backend: a per-queue poller bridging producer goroutines to a single
// virtual device queue that must be driven by exactly one goroutine.
//
// Producers hand tasks to a Poller through a bounded submission queue;
// the poller's loop goroutine moves them into the DeviceQueue, watches
// for completions, and fires each task's completion callback inline.
// A device queue reporting full parks the task in a one-deep pending
// slot and retries it as completions free descriptors, so in-flight
// work is bounded by the device queue depth plus one.
//
// The loop goroutine is the only caller into the DeviceQueue; the
// poller never exposes the queue reference, so the single-writer
// requirement holds by construction.
package vring
