// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partialio

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrInvalidArgument reports a forwarded call the wrapped stream cannot
// serve, e.g. Write through a duplex wrapper whose underlying stream is not
// writable.
var ErrInvalidArgument = errors.New("partialio: invalid argument")

// These are provided as package-level aliases so callers can reference the
// semantic control-flow errors without importing iox directly.
var (
	// ErrWouldBlock means “no further progress without waiting”.
	//
	// It is an expected, non-failure control-flow signal for non-blocking I/O.
	// Scripting Fault(ErrWouldBlock) is the one fault kind the nonblock
	// wrappers treat specially: the injected wake capability is signaled so
	// the caller gets re-polled. Every other fault kind is terminal for that
	// call and surfaces as-is.
	ErrWouldBlock = iox.ErrWouldBlock

	// ErrMore means “this completion is usable and more completions will follow”.
	//
	// It is not io.EOF and not “try later”. A scripted Fault(ErrMore) is
	// surfaced verbatim, like any fault other than would-block.
	ErrMore = iox.ErrMore
)
