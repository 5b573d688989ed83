// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package amq

import (
	"errors"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
)

// FIFO is an unbounded multi-producer multi-consumer queue with a timed
// dequeue that reports how long the caller actually waited.
//
// FIFO is the delivery fabric underneath every named queue in the runtime.
// Enqueue never blocks and never drops; DequeueWait parks the caller until
// an element arrives, the timeout expires, or the queue is closed. Delivery
// is one-to-one: an element taken by one waiter is not visible to any other.
// When multiple consumers wait on the same FIFO, exactly one is woken per
// element; selection fairness is unspecified.
//
// Ordering: with a single producer, FIFO order is preserved. With multiple
// producers, the relative order of elements from different producers is
// unspecified.
//
// Unlike the bounded lock-free rings this package's ecosystem is known for,
// FIFO trades raw throughput for an unbounded buffer and a blocking wait
// with wait-duration reporting, which the worker statistics need. The depth
// counter is still atomic so Len never takes the lock.
type FIFO[T any] struct {
	mu     sync.Mutex
	items  []T
	head   int
	closed bool
	length atomix.Int64
	notify chan struct{} // 1-slot wakeup token for waiters
	done   chan struct{} // closed by Close
}

// NewFIFO creates an empty unbounded FIFO.
func NewFIFO[T any]() *FIFO[T] {
	return &FIFO[T]{
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Enqueue adds an element to the tail of the queue (non-blocking).
// The queue grows without bound; Enqueue never drops an element.
// Returns ErrClosed if the queue has been closed.
func (q *FIFO[T]) Enqueue(elem T) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.items = append(q.items, elem)
	q.length.Add(1)
	q.mu.Unlock()

	q.wake()
	return nil
}

// Dequeue removes and returns the head element (non-blocking).
// Returns ErrWouldBlock when the queue is empty, ErrClosed after Close.
func (q *FIFO[T]) Dequeue() (T, error) {
	var zero T

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return zero, ErrClosed
	}
	if q.head >= len(q.items) {
		q.mu.Unlock()
		return zero, ErrWouldBlock
	}

	elem := q.items[q.head]
	q.items[q.head] = zero // release the slot for GC
	q.head++
	q.length.Add(-1)

	// Reclaim the consumed prefix once it dominates the backing array.
	if q.head > 32 && q.head*2 >= len(q.items) {
		q.items = append(q.items[:0], q.items[q.head:]...)
		q.head = 0
	}
	remaining := len(q.items) - q.head
	q.mu.Unlock()

	// Pass the wakeup token on so another waiter can claim the next element.
	if remaining > 0 {
		q.wake()
	}
	return elem, nil
}

// DequeueWait blocks up to timeout for an element.
//
// On success it returns the element and the duration the call actually
// waited; the worker runtime feeds that duration into consumer statistics.
// On timeout it returns ErrWouldBlock, after Close it returns ErrClosed;
// in both cases the reported duration is still the time spent waiting.
func (q *FIFO[T]) DequeueWait(timeout time.Duration) (T, time.Duration, error) {
	var zero T
	start := time.Now()
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		elem, err := q.Dequeue()
		if err == nil {
			return elem, time.Since(start), nil
		}
		if errors.Is(err, ErrClosed) {
			return zero, time.Since(start), ErrClosed
		}

		select {
		case <-q.notify:
		case <-q.done:
			return zero, time.Since(start), ErrClosed
		case <-timer.C:
			return zero, time.Since(start), ErrWouldBlock
		}
	}
}

// Len reports the current depth. Intended for progress reporting and
// observability only; the value may be stale by the time it is read.
func (q *FIFO[T]) Len() int {
	return int(q.length.Load())
}

// Close marks the queue closed, wakes every waiter, and discards any
// undelivered elements, returning how many were discarded.
//
// Discarded elements are not released: a payload posted and never consumed
// is lost. A well-behaved program drains its queues before closing them;
// the runtime logs the discard count when it destroys a queue.
func (q *FIFO[T]) Close() int {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return 0
	}
	q.closed = true
	discarded := len(q.items) - q.head
	q.items = nil
	q.head = 0
	q.length.Store(0)
	q.mu.Unlock()

	close(q.done)
	return discarded
}

// wake hands a single wakeup token to at most one parked waiter.
func (q *FIFO[T]) wake() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}
