// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package amq

// Message is the unit of delivery between producers and consumers.
//
// Body is opaque to the runtime: it is never inspected, copied, or released.
// Ownership passes from the poster to whichever consumer receives the
// message.
//
// Len is advisory. A Len of zero is permitted and means the body is a
// sentinel or record whose structure is known to both sides.
type Message struct {
	Body any
	Len  int
}

// Result is returned by worker functions to steer the dispatch loop.
type Result int

const (
	// Continue keeps the worker's dispatch loop running.
	Continue Result = iota
	// Stop ends the dispatch loop; the worker deregisters and exits.
	Stop
)

// Signal is a bitmask of control flags attached to a worker.
//
// Signals are distinct from OS signals. Only SignalTerminate and
// SignalSuspend have runtime meaning; the remaining bits are reserved
// and must not be interpreted by workers.
type Signal uint64

const (
	// SignalTerminate requests the worker exit its dispatch loop at the
	// next check. Observation latency is bounded by the poll interval.
	SignalTerminate Signal = 1 << iota
	// SignalSuspend parks the worker: the dispatch loop sleeps instead of
	// invoking the worker function, re-checking once per poll interval.
	SignalSuspend
	SignalRFU2
	SignalRFU3
	SignalRFU4
	SignalRFU5
	SignalRFU6
	SignalRFU7
	SignalRFU8
	SignalRFU9
	SignalRFU10
	SignalRFU11
	SignalRFU12
	SignalRFU13
	SignalRFU14
	SignalRFU15
)

// ProducerFunc is invoked repeatedly by a producer worker's dispatch loop.
//
// The function is expected to post messages somewhere and return Continue,
// or Stop to end the worker. A producer that blocks internally delays its
// own observation of signals.
type ProducerFunc func(w *Worker, cdata any) Result

// ConsumerFunc is invoked once per message received from the worker's
// listen queue. The consumer owns msg.Body on entry and is responsible
// for whatever release the payload needs.
//
// The runtime cannot preempt a running function; return promptly or honor
// cancellation internally.
type ConsumerFunc func(w *Worker, msg Message, cdata any) Result
