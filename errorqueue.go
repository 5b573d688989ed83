// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package amq

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// ErrorQueue is the reserved name of the built-in error queue. It is
// created by Build and exists until Close; any worker may consume it.
const ErrorQueue = "AMQ:ERROR"

// ErrorRecord is a structured error posted to the error queue.
//
// Records travel through the queue fabric like any other message; a
// consumer of the error queue receives records and owns them on receipt.
// Code semantics are application policy — the runtime assigns no meaning
// to any code value.
type ErrorRecord struct {
	Code    int
	Message string
}

// NewErrorRecord builds a record whose message is prefixed with the
// originating source location and code:
//
//	[file:line] [code:<code>] <formatted message>
//
// Most callers want PostError, which captures the location itself and
// posts the record in one step.
func NewErrorRecord(file string, line, code int, format string, args ...any) *ErrorRecord {
	return &ErrorRecord{
		Code: code,
		Message: fmt.Sprintf("[%s:%d] [code:%d] %s",
			file, line, code, fmt.Sprintf(format, args...)),
	}
}

// Error implements the error interface, so records can flow through
// ordinary error handling outside the queue fabric too.
func (e *ErrorRecord) Error() string {
	return e.Message
}

// PostError builds an ErrorRecord at the caller's source location and
// posts it to the error queue. If the record cannot be delivered (only
// possible once teardown has begun) it is written to the runtime's logger
// instead, so the report is never silently lost.
func (a *AMQ) PostError(code int, format string, args ...any) {
	file := "???"
	line := 0
	if _, f, l, ok := runtime.Caller(1); ok {
		file = filepath.Base(f)
		line = l
	}

	rec := NewErrorRecord(file, line, code, format, args...)
	if !a.Post(ErrorQueue, Message{Body: rec}) {
		a.log.Error().Int("code", code).Msg(rec.Message)
	}
}
