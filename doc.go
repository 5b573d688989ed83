// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package amq provides an in-process application message queue runtime.
//
// The runtime lets an application create named message queues, attach
// long-lived producer and consumer workers to them, signal workers to
// suspend or terminate, group workers for bulk control, and observe
// per-worker wait statistics. A built-in error queue receives structured
// error records emitted anywhere in the process.
//
// # Quick Start
//
//	a, err := amq.New().Build()
//	if err != nil {
//	    // cannot proceed
//	}
//	defer a.Close()
//
//	a.CreateQueue("APP:EVENTS")
//
//	a.CreateConsumer("APP:EVENTS", "handler", func(w *amq.Worker, msg amq.Message, cdata any) amq.Result {
//	    process(msg.Body)
//	    return amq.Continue
//	}, nil)
//
//	a.CreateProducer("generator", func(w *amq.Worker, cdata any) amq.Result {
//	    a.Post("APP:EVENTS", amq.Message{Body: nextEvent()})
//	    return amq.Continue
//	}, nil)
//
// # Messages
//
// A Message is an opaque body plus an advisory length. The runtime never
// interprets or copies the body; ownership passes from the poster to the
// one consumer that receives it. Post reports delivery: a false return
// means the named queue does not exist and the caller still owns the
// payload.
//
// Each queued message is dispatched to exactly one consumer on that
// queue. With a single producer, per-queue delivery is FIFO; with
// multiple producers, cross-producer order is unspecified, as is the
// distribution of messages between multiple consumers.
//
// # Workers
//
// Workers run on their own goroutines. A producer's function is invoked
// repeatedly; a consumer's function is invoked once per message received
// from its supply queue. Either returns Stop to end the worker.
//
// Workers are controlled through a 64-bit signal mask, distinct from OS
// signals. SignalTerminate makes the dispatch loop exit at its next
// check; SignalSuspend parks the loop without invoking the function.
// Signal observation latency is bounded by the runtime's poll interval
// (default one second):
//
//	name, _ := a.CreateProducer("", generate, nil) // "" → generated name
//	a.SignalSet(name, amq.SignalSuspend)           // park
//	a.SignalClear(name, amq.SignalSuspend)         // resume
//	a.SignalSet(name, amq.SignalTerminate)
//	a.WorkerWait(name)                             // join
//
// Cancellation is cooperative: the runtime cannot preempt a worker
// function, and a function that never returns blocks Close forever.
//
// On exit a worker removes itself from the worker registry and closes its
// completion channel, so teardown can enumerate and join workers without
// lifetime hazards.
//
// # Worker Groups
//
// A Group fans signal and join operations out to a list of worker names:
//
//	g, _ := a.NewGroup("ingest")
//	g.AddWorker("parser-1")
//	g.AddWorker("parser-2")
//	g.SignalSet(amq.SignalTerminate)
//	g.Wait()
//
// # Error Queue
//
// Build creates the reserved queue "AMQ:ERROR". PostError formats a
// structured record, prefixes it with the caller's source location, and
// posts it there; any worker may consume the queue:
//
//	a.CreateConsumer(amq.ErrorQueue, "errlog", logErrors, nil)
//	a.PostError(42, "scan failed on %q", path)
//
// # Statistics
//
// Consumers accrue per-dispatch statistics from the duration their queue
// wait actually blocked, in milliseconds. The Average and Deviation
// fields are running estimators meant for coarse monitoring; see Stats.
//
// # Lifecycle
//
// Build must be the first call, Close the last; neither may run
// concurrently with anything else. Close signals TERMINATE to every
// worker, joins them all, then destroys the queues. Messages still queued
// at that point are discarded, not released — the discard count is
// logged, and a well-behaved program drains its queues before closing.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives
// with explicit memory ordering, [code.hybscloud.com/spin] for CPU pause
// instructions in CAS retry loops, [code.hybscloud.com/iox] for semantic
// errors, and [github.com/rs/zerolog] for runtime logging.
package amq
