// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package amq

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For Dequeue and DequeueWait: the queue is empty (or the wait timed out).
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry the operation later rather than propagating the error.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrClosed indicates the queue has been closed and will deliver no
// further messages.
var ErrClosed = errors.New("amq: queue closed")

// ErrQueueExists is returned by CreateQueue when a queue with the given
// name is already registered. The existing queue is left untouched.
var ErrQueueExists = errors.New("amq: queue already exists")

// ErrQueueNotFound is returned by CreateConsumer when the named supply
// queue does not exist.
var ErrQueueNotFound = errors.New("amq: no such queue")

// ErrWorkerExists is returned by CreateProducer and CreateConsumer when a
// worker with the given name is already registered.
var ErrWorkerExists = errors.New("amq: worker already exists")

// ErrNilWorkerFunc is returned by CreateProducer and CreateConsumer when
// no worker function is supplied.
var ErrNilWorkerFunc = errors.New("amq: nil worker function")

// ErrGroupName is returned by NewGroup when the group name is empty.
var ErrGroupName = errors.New("amq: empty group name")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
