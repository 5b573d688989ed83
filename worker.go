// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package amq

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
	"github.com/google/uuid"
)

type workerType uint8

const (
	workerProducer workerType = iota + 1
	workerConsumer
)

// Worker is a long-lived producer or consumer attached to the runtime.
//
// A worker runs its dispatch loop on its own goroutine from successful
// creation until it observes SignalTerminate or its function returns Stop.
// A consumer whose listen queue is closed underneath it does not exit: it
// stays registered and idles at poll granularity until terminated. On exit
// it removes its own
// name from the worker registry and closes its completion channel, so
// teardown code can enumerate and join workers without double-release
// concerns: a worker that already exited simply has no registry entry.
//
// The *Worker passed to worker functions exposes the worker's identity and
// statistics; worker functions must not retain it past their own return.
type Worker struct {
	id    uuid.UUID
	name  string
	typ   workerType
	cdata any

	listen     *FIFO[Message] // consumers only
	producerFn ProducerFunc
	consumerFn ConsumerFunc

	// flags is the 64-bit signal mask. CAS loops keep read-modify-write
	// updates atomic without a lock; see sigSet and sigClr.
	flags atomix.Uint64
	wake  chan struct{} // nudged on signal changes
	done  chan struct{} // closed when the dispatch loop has exited

	statsMu sync.Mutex
	stats   Stats
}

// ID returns the worker's unique identifier.
func (w *Worker) ID() uuid.UUID { return w.id }

// Name returns the name the worker is registered under. For workers
// created with an empty name this is the generated 16-hex-character name.
func (w *Worker) Name() string { return w.name }

// Signals returns a snapshot of the worker's signal mask.
func (w *Worker) Signals() Signal {
	return Signal(w.flags.LoadAcquire())
}

// Stats returns a snapshot of the worker's dispatch statistics.
func (w *Worker) Stats() Stats {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	return w.stats
}

// sigSet ORs mask into the signal flags and nudges the worker awake.
func (w *Worker) sigSet(mask Signal) {
	sw := spin.Wait{}
	for {
		old := w.flags.LoadAcquire()
		if w.flags.CompareAndSwapAcqRel(old, old|uint64(mask)) {
			break
		}
		sw.Once()
	}
	w.nudge()
}

// sigClr ANDs the complement of mask into the signal flags.
func (w *Worker) sigClr(mask Signal) {
	sw := spin.Wait{}
	for {
		old := w.flags.LoadAcquire()
		if w.flags.CompareAndSwapAcqRel(old, old&^uint64(mask)) {
			break
		}
		sw.Once()
	}
	w.nudge()
}

// nudge wakes the dispatch loop from a suspend sleep so a signal change is
// observed promptly instead of at the next poll tick.
func (w *Worker) nudge() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *Worker) recordSample(ms float64) {
	w.statsMu.Lock()
	w.stats.update(ms)
	w.statsMu.Unlock()
}

// run is the dispatch loop. It owns the worker for its whole lifetime and
// performs the exit protocol (deregister, then close done) itself.
func (w *Worker) run(a *AMQ) {
	a.log.Debug().Str("worker", w.name).Msg("worker started")

	result := Continue
	for result != Stop {
		flags := Signal(w.flags.LoadAcquire())
		if flags&SignalTerminate != 0 {
			break
		}
		if flags&SignalSuspend != 0 {
			w.park(a.pollInterval)
			continue
		}

		switch w.typ {
		case workerProducer:
			result = w.producerFn(w, w.cdata)

		case workerConsumer:
			msg, waited, err := w.listen.DequeueWait(a.pollInterval)
			if errors.Is(err, ErrClosed) {
				// Queue destroyed underneath us; keep checking for
				// terminate at poll granularity.
				w.park(a.pollInterval)
				continue
			}
			if err != nil {
				continue // timeout: re-check flags
			}
			w.recordSample(float64(waited) / float64(time.Millisecond))
			result = w.consumerFn(w, msg, w.cdata)
		}
	}

	a.workers.Remove(w.name)
	close(w.done)
	a.log.Debug().Str("worker", w.name).Msg("worker stopped")
}

// park sleeps up to d, waking early on a signal change.
func (w *Worker) park(d time.Duration) {
	select {
	case <-w.wake:
	case <-time.After(d):
	}
}

// randomWorkerName generates a 16-hex-character name from 8 random bytes,
// used when a worker is created with an empty name.
func randomWorkerName() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
