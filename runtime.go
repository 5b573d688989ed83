// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package amq

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// queue binds a registered name to its delivery fabric.
type queue struct {
	name string
	fifo *FIFO[Message]
}

// AMQ is the runtime handle: the queue registry, the worker registry, and
// the error queue, created together by Build and torn down together by
// Close.
//
// All methods except Close are safe for concurrent use between Build and
// Close. Build must be the first call and must not run concurrently with
// anything else; Close must be the last. Calling other methods before
// Build returns or after Close begins is undefined and not checked.
type AMQ struct {
	queues  *Container[*queue]
	workers *Container[*Worker]

	log          zerolog.Logger
	pollInterval time.Duration
}

// Builder configures and creates a runtime.
//
// Example:
//
//	a, err := amq.New().PollInterval(250 * time.Millisecond).Build()
//	if err != nil {
//	    // cannot proceed
//	}
//	defer a.Close()
type Builder struct {
	log    zerolog.Logger
	logSet bool
	poll   time.Duration
}

// New creates a runtime builder with default configuration: logging to
// stderr and a 1-second poll interval.
func New() *Builder {
	return &Builder{poll: time.Second}
}

// Logger replaces the runtime's logger. Pass zerolog.Nop() to silence the
// runtime entirely.
func (b *Builder) Logger(l zerolog.Logger) *Builder {
	b.log = l
	b.logSet = true
	return b
}

// PollInterval sets the worker poll granularity: the consumer queue-wait
// timeout and the suspend sleep. It bounds how long a worker can take to
// observe a signal. Values below 1ms are raised to 1ms.
func (b *Builder) PollInterval(d time.Duration) *Builder {
	if d < time.Millisecond {
		d = time.Millisecond
	}
	b.poll = d
	return b
}

// Build creates the runtime: both registries and the error queue.
//
// Build must be the first runtime call and must not be concurrent with any
// other call. On error the partially built state has already been torn
// down and the runtime must not be used.
func (b *Builder) Build() (*AMQ, error) {
	log := b.log
	if !b.logSet {
		log = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	a := &AMQ{
		queues:       NewContainer[*queue](),
		workers:      NewContainer[*Worker](),
		log:          log,
		pollInterval: b.poll,
	}

	if err := a.CreateQueue(ErrorQueue); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// Close tears the runtime down: it signals TERMINATE to every registered
// worker, joins them all, then destroys the error queue and every
// remaining queue, logging each queue's discarded-message count.
//
// Close must be the last runtime call. It blocks until every worker has
// exited; a worker wedged inside its function blocks Close forever.
func (a *AMQ) Close() {
	names := a.workers.Names()
	for _, name := range names {
		a.SignalSet(name, SignalTerminate)
	}

	// Joins are independent, so run them concurrently.
	var g errgroup.Group
	for _, name := range names {
		g.Go(func() error {
			a.WorkerWait(name)
			return nil
		})
	}
	_ = g.Wait()

	if q, ok := a.queues.Remove(ErrorQueue); ok {
		a.destroyQueue(q)
	}
	a.queues.Close(a.destroyQueue)
	a.workers.Close(nil)
}

// CreateQueue registers a new named message queue. Returns ErrQueueExists
// if the name is taken; the existing queue is left untouched.
func (a *AMQ) CreateQueue(name string) error {
	q := &queue{name: name, fifo: NewFIFO[Message]()}
	if !a.queues.Add(name, q) {
		return ErrQueueExists
	}
	a.log.Debug().Str("queue", name).Msg("queue created")
	return nil
}

// RemoveQueue destroys a user queue before teardown, discarding whatever
// it still holds. Returns false for unknown names and for the error
// queue, which lives until Close.
//
// Consumers bound to the removed queue stay registered and idle until
// terminated; make sure its consumers are finished first.
func (a *AMQ) RemoveQueue(name string) bool {
	if name == ErrorQueue {
		return false
	}
	q, ok := a.queues.Remove(name)
	if !ok {
		return false
	}
	a.destroyQueue(q)
	return true
}

func (a *AMQ) destroyQueue(q *queue) {
	discarded := q.fifo.Close()
	a.log.Info().Str("queue", q.name).Int("discarded", discarded).
		Msg("destroying queue")
}

// Post enqueues msg on the named queue. It reports whether the message
// was accepted: false means the queue does not exist (or is mid-teardown)
// and the caller still owns the payload.
func (a *AMQ) Post(name string, msg Message) bool {
	q, ok := a.queues.Find(name)
	if !ok {
		return false
	}
	return q.fifo.Enqueue(msg) == nil
}

// Count reports the depth of the named queue, or 0 if it does not exist.
// Intended for progress reporting and observability only.
func (a *AMQ) Count(name string) int {
	q, ok := a.queues.Find(name)
	if !ok {
		return 0
	}
	return q.fifo.Len()
}

// CreateProducer registers and starts a producer worker.
//
// An empty name registers the worker under a generated 16-hex-character
// name. The returned string is the registration name, needed for
// signalling and joining. cdata is passed through to every fn invocation.
//
// Creation is atomic: on error no registry entry and no goroutine remain.
func (a *AMQ) CreateProducer(name string, fn ProducerFunc, cdata any) (string, error) {
	if fn == nil {
		return "", ErrNilWorkerFunc
	}
	return a.createWorker(name, nil, workerProducer, fn, nil, cdata)
}

// CreateConsumer registers and starts a consumer worker bound to the
// named supply queue. The queue must already exist.
//
// An empty name registers the worker under a generated 16-hex-character
// name. The returned string is the registration name. cdata is passed
// through to every fn invocation.
func (a *AMQ) CreateConsumer(queueName, name string, fn ConsumerFunc, cdata any) (string, error) {
	if fn == nil {
		return "", ErrNilWorkerFunc
	}
	q, ok := a.queues.Find(queueName)
	if !ok {
		return "", ErrQueueNotFound
	}
	return a.createWorker(name, q.fifo, workerConsumer, nil, fn, cdata)
}

func (a *AMQ) createWorker(name string, listen *FIFO[Message], typ workerType,
	pfn ProducerFunc, cfn ConsumerFunc, cdata any) (string, error) {

	if name == "" {
		name = randomWorkerName()
	}

	w := &Worker{
		id:         uuid.New(),
		name:       name,
		typ:        typ,
		cdata:      cdata,
		listen:     listen,
		producerFn: pfn,
		consumerFn: cfn,
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
		stats:      newStats(),
	}

	if !a.workers.Add(name, w) {
		return "", ErrWorkerExists
	}
	go w.run(a)
	return name, nil
}

// SignalSet ORs mask into the named worker's signal flags. Unknown names
// are a no-op.
func (a *AMQ) SignalSet(name string, mask Signal) {
	if w, ok := a.workers.Find(name); ok {
		w.sigSet(mask)
	}
}

// SignalClear clears mask from the named worker's signal flags. Unknown
// names are a no-op.
func (a *AMQ) SignalClear(name string, mask Signal) {
	if w, ok := a.workers.Find(name); ok {
		w.sigClr(mask)
	}
}

// SignalGet returns a snapshot of the named worker's signal flags, or 0
// for unknown names.
func (a *AMQ) SignalGet(name string) Signal {
	if w, ok := a.workers.Find(name); ok {
		return w.Signals()
	}
	return 0
}

// WorkerWait blocks until the named worker has exited. It returns
// immediately for unknown names, including workers that have already
// exited and deregistered themselves.
//
// A worker that is never terminated never exits; set SignalTerminate
// first.
func (a *AMQ) WorkerWait(name string) {
	if w, ok := a.workers.Find(name); ok {
		<-w.done
	}
}

// WorkerStats returns a snapshot of the named worker's statistics.
func (a *AMQ) WorkerStats(name string) (Stats, bool) {
	if w, ok := a.workers.Find(name); ok {
		return w.Stats(), true
	}
	return Stats{}, false
}
