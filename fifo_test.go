// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package amq_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/amq"
	"code.hybscloud.com/atomix"
)

// =============================================================================
// FIFO - Basic Operations
// =============================================================================

func TestFIFOBasic(t *testing.T) {
	q := amq.NewFIFO[int]()

	if q.Len() != 0 {
		t.Fatalf("Len: got %d, want 0", q.Len())
	}

	for i := range 5 {
		if err := q.Enqueue(i + 100); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	if q.Len() != 5 {
		t.Fatalf("Len: got %d, want 5", q.Len())
	}

	// Dequeue in FIFO order
	for i := range 5 {
		v, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if v != i+100 {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, v, i+100)
		}
	}

	// Empty queue returns ErrWouldBlock
	if _, err := q.Dequeue(); !errors.Is(err, amq.ErrWouldBlock) {
		t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
	}
}

func TestFIFOUnbounded(t *testing.T) {
	q := amq.NewFIFO[int]()

	const n = 100000
	for i := range n {
		if err := q.Enqueue(i); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	if q.Len() != n {
		t.Fatalf("Len: got %d, want %d", q.Len(), n)
	}
	for i := range n {
		v, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if v != i {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, v, i)
		}
	}
}

// =============================================================================
// FIFO - Timed Wait
// =============================================================================

func TestFIFODequeueWaitTimeout(t *testing.T) {
	q := amq.NewFIFO[string]()

	start := time.Now()
	_, waited, err := q.DequeueWait(50 * time.Millisecond)
	elapsed := time.Since(start)

	if !errors.Is(err, amq.ErrWouldBlock) {
		t.Fatalf("DequeueWait on empty: got %v, want ErrWouldBlock", err)
	}
	if elapsed < 50*time.Millisecond {
		t.Fatalf("DequeueWait returned after %v, want >= 50ms", elapsed)
	}
	if waited < 50*time.Millisecond {
		t.Fatalf("reported wait %v, want >= 50ms", waited)
	}
}

func TestFIFODequeueWaitDelivery(t *testing.T) {
	q := amq.NewFIFO[string]()

	go func() {
		time.Sleep(30 * time.Millisecond)
		q.Enqueue("hello")
	}()

	v, waited, err := q.DequeueWait(5 * time.Second)
	if err != nil {
		t.Fatalf("DequeueWait: %v", err)
	}
	if v != "hello" {
		t.Fatalf("DequeueWait: got %q, want %q", v, "hello")
	}
	if waited <= 0 {
		t.Fatalf("reported wait %v, want > 0", waited)
	}
	if waited > 4*time.Second {
		t.Fatalf("reported wait %v, want well under the timeout", waited)
	}
}

func TestFIFODequeueWaitImmediate(t *testing.T) {
	q := amq.NewFIFO[int]()
	q.Enqueue(7)

	v, _, err := q.DequeueWait(time.Second)
	if err != nil {
		t.Fatalf("DequeueWait: %v", err)
	}
	if v != 7 {
		t.Fatalf("DequeueWait: got %d, want 7", v)
	}
}

// =============================================================================
// FIFO - Exactly-Once Delivery
// =============================================================================

// TestFIFOExactlyOnce runs several waiters against one stream of elements
// and verifies each element is delivered to exactly one waiter.
func TestFIFOExactlyOnce(t *testing.T) {
	q := amq.NewFIFO[int]()

	n := 10000
	if amq.RaceEnabled {
		n = 1000
	}
	const waiters = 6

	var mu sync.Mutex
	seen := make(map[int]int, n)
	var received atomix.Int64

	var wg sync.WaitGroup
	for range waiters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for received.Load() < int64(n) {
				v, _, err := q.DequeueWait(20 * time.Millisecond)
				if err != nil {
					continue
				}
				mu.Lock()
				seen[v]++
				mu.Unlock()
				received.Add(1)
			}
		}()
	}

	for i := range n {
		q.Enqueue(i)
	}
	wg.Wait()

	if len(seen) != n {
		t.Fatalf("distinct elements: got %d, want %d", len(seen), n)
	}
	for v, count := range seen {
		if count != 1 {
			t.Fatalf("element %d delivered %d times, want exactly once", v, count)
		}
	}
}

// =============================================================================
// FIFO - Close
// =============================================================================

func TestFIFOClose(t *testing.T) {
	q := amq.NewFIFO[int]()

	for i := range 3 {
		q.Enqueue(i)
	}

	if discarded := q.Close(); discarded != 3 {
		t.Fatalf("Close: discarded %d, want 3", discarded)
	}
	if q.Len() != 0 {
		t.Fatalf("Len after Close: got %d, want 0", q.Len())
	}

	if err := q.Enqueue(9); !errors.Is(err, amq.ErrClosed) {
		t.Fatalf("Enqueue after Close: got %v, want ErrClosed", err)
	}
	if _, err := q.Dequeue(); !errors.Is(err, amq.ErrClosed) {
		t.Fatalf("Dequeue after Close: got %v, want ErrClosed", err)
	}
	if _, _, err := q.DequeueWait(time.Second); !errors.Is(err, amq.ErrClosed) {
		t.Fatalf("DequeueWait after Close: got %v, want ErrClosed", err)
	}

	// Second Close is a no-op
	if discarded := q.Close(); discarded != 0 {
		t.Fatalf("second Close: discarded %d, want 0", discarded)
	}
}

func TestFIFOCloseWakesWaiter(t *testing.T) {
	q := amq.NewFIFO[int]()

	errc := make(chan error, 1)
	go func() {
		_, _, err := q.DequeueWait(time.Minute)
		errc <- err
	}()

	time.Sleep(20 * time.Millisecond)
	q.Close()

	select {
	case err := <-errc:
		if !errors.Is(err, amq.ErrClosed) {
			t.Fatalf("DequeueWait after Close: got %v, want ErrClosed", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("waiter not woken by Close")
	}
}
