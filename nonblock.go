// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partialio

import (
	"io"
	"iter"
	"time"
)

// NonblockReader is the cooperative (non-blocking) source wrapper. The data
// path is identical to Reader, with one addition: a scripted
// Fault(ErrWouldBlock) signals the injected wake capability before the
// error is surfaced, so an event-loop caller parked on readiness re-polls
// and observes the next scripted outcome. The wake is a capability received
// from the host runtime via WithWake; the wrapper never schedules anything
// itself.
//
// For duplex streams, NonblockReader also forwards Write, Flush, and Close
// to the underlying stream unscripted: those calls bypass the script
// entirely and consume no op.
type NonblockReader[R io.Reader] struct {
	inner R
	ops   *script
	delay time.Duration
	wake  func()
}

// NewNonblockReader wraps rd with the given script. A nil ops source
// scripts nothing: every call passes through. Construction never fails.
func NewNonblockReader[R io.Reader](rd R, ops iter.Seq[Op], opts ...Option) *NonblockReader[R] {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	return &NonblockReader[R]{inner: rd, ops: newScript(ops, &o), delay: o.RetryDelay, wake: o.Wake}
}

// Read consumes one scripted op, like Reader.Read, and applies the
// would-block wake rule.
func (r *NonblockReader[R]) Read(p []byte) (int, error) {
	return scriptedRead(r.inner, r.ops, r.delay, r.wake, p)
}

// Write forwards to the underlying stream unscripted when it is writable;
// otherwise it returns ErrInvalidArgument, because silently discarding the
// bytes would corrupt the test.
func (r *NonblockReader[R]) Write(p []byte) (int, error) {
	if w, ok := any(r.inner).(io.Writer); ok {
		return w.Write(p)
	}
	return 0, ErrInvalidArgument
}

// Flush forwards to the underlying stream unscripted. Absent the
// capability, nothing is buffered below the wrapper and Flush is a no-op.
func (r *NonblockReader[R]) Flush() error {
	if f, ok := any(r.inner).(Flusher); ok {
		return f.Flush()
	}
	return nil
}

// Close forwards to the underlying stream unscripted. Absent the
// capability, Close is a no-op.
func (r *NonblockReader[R]) Close() error {
	if c, ok := any(r.inner).(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// SetOps discards any unconsumed scripted ops and installs a new source,
// effective from the next call. It returns the receiver for chaining.
func (r *NonblockReader[R]) SetOps(ops iter.Seq[Op]) *NonblockReader[R] {
	r.ops.replace(ops)
	return r
}

// Inner returns the underlying stream for direct access between scripted
// calls.
func (r *NonblockReader[R]) Inner() R { return r.inner }

// Unwrap releases the script and returns the underlying stream. The
// wrapper must not be used afterwards.
func (r *NonblockReader[R]) Unwrap() R {
	r.ops.stop()
	return r.inner
}

// NonblockWriter is the cooperative (non-blocking) sink wrapper: scripted
// Write, Flush, and Close with the would-block wake rule, symmetric to
// NonblockReader. Flush and Close honor the wake rule the same way Write
// does: in the iox model any operation of a non-blocking stream may report
// ErrWouldBlock, and a parked caller must be re-armed regardless of which
// call parked it.
//
// For duplex streams, NonblockWriter forwards Read to the underlying stream
// unscripted: those calls bypass the script entirely and consume no op.
type NonblockWriter[W io.Writer] struct {
	inner W
	ops   *script
	delay time.Duration
	wake  func()
}

// NewNonblockWriter wraps wr with the given script. A nil ops source
// scripts nothing: every call passes through. Construction never fails.
func NewNonblockWriter[W io.Writer](wr W, ops iter.Seq[Op], opts ...Option) *NonblockWriter[W] {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	return &NonblockWriter[W]{inner: wr, ops: newScript(ops, &o), delay: o.RetryDelay, wake: o.Wake}
}

// Write consumes one scripted op, like Writer.Write, and applies the
// would-block wake rule.
func (w *NonblockWriter[W]) Write(p []byte) (int, error) {
	return scriptedWrite(w.inner, w.ops, w.delay, w.wake, p)
}

// Flush consumes one scripted op, like Writer.Flush, and applies the
// would-block wake rule.
func (w *NonblockWriter[W]) Flush() error {
	return scriptedFlush(w.inner, w.ops, w.delay, w.wake)
}

// Close consumes one scripted op, like Writer.Close, and applies the
// would-block wake rule.
func (w *NonblockWriter[W]) Close() error {
	return scriptedClose(w.inner, w.ops, w.delay, w.wake)
}

// Read forwards to the underlying stream unscripted when it is readable;
// otherwise it returns ErrInvalidArgument.
func (w *NonblockWriter[W]) Read(p []byte) (int, error) {
	if r, ok := any(w.inner).(io.Reader); ok {
		return r.Read(p)
	}
	return 0, ErrInvalidArgument
}

// SetOps discards any unconsumed scripted ops and installs a new source,
// effective from the next call. It returns the receiver for chaining.
func (w *NonblockWriter[W]) SetOps(ops iter.Seq[Op]) *NonblockWriter[W] {
	w.ops.replace(ops)
	return w
}

// Inner returns the underlying stream for direct access between scripted
// calls.
func (w *NonblockWriter[W]) Inner() W { return w.inner }

// Unwrap releases the script and returns the underlying stream. The
// wrapper must not be used afterwards.
func (w *NonblockWriter[W]) Unwrap() W {
	w.ops.stop()
	return w.inner
}
