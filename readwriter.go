// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partialio

import (
	"io"
	"iter"
	"time"
)

// ReadWriter is the synchronous duplex wrapper. Each direction owns its own
// independent script: read ordering and write ordering never interleave
// through a shared queue. Flush and Close consume from the write-side
// script, matching Writer. A nil source for either direction makes that
// direction pure pass-through, which reproduces the classic duplex layout of
// one scripted direction plus unscripted forwarding of the other.
type ReadWriter[RW io.ReadWriter] struct {
	inner RW
	rops  *script
	wops  *script
	delay time.Duration
}

// NewReadWriter wraps rw with one script per direction. Construction never
// fails.
func NewReadWriter[RW io.ReadWriter](rw RW, readOps, writeOps iter.Seq[Op], opts ...Option) *ReadWriter[RW] {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	return &ReadWriter[RW]{
		inner: rw,
		rops:  newScript(readOps, &o),
		wops:  newScript(writeOps, &o),
		delay: o.RetryDelay,
	}
}

// Read consumes one op from the read-side script; see Reader.Read.
func (rw *ReadWriter[RW]) Read(p []byte) (int, error) {
	return scriptedRead(rw.inner, rw.rops, rw.delay, nil, p)
}

// Write consumes one op from the write-side script; see Writer.Write.
func (rw *ReadWriter[RW]) Write(p []byte) (int, error) {
	return scriptedWrite(rw.inner, rw.wops, rw.delay, nil, p)
}

// Flush consumes one op from the write-side script; see Writer.Flush.
func (rw *ReadWriter[RW]) Flush() error {
	return scriptedFlush(rw.inner, rw.wops, rw.delay, nil)
}

// Close consumes one op from the write-side script; see Writer.Close.
func (rw *ReadWriter[RW]) Close() error {
	return scriptedClose(rw.inner, rw.wops, rw.delay, nil)
}

// SetReadOps replaces the read-side script, discarding unconsumed entries.
func (rw *ReadWriter[RW]) SetReadOps(ops iter.Seq[Op]) *ReadWriter[RW] {
	rw.rops.replace(ops)
	return rw
}

// SetWriteOps replaces the write-side script, discarding unconsumed entries.
func (rw *ReadWriter[RW]) SetWriteOps(ops iter.Seq[Op]) *ReadWriter[RW] {
	rw.wops.replace(ops)
	return rw
}

// Inner returns the underlying stream for direct access between scripted
// calls.
func (rw *ReadWriter[RW]) Inner() RW { return rw.inner }

// Unwrap releases both scripts and returns the underlying stream. The
// wrapper must not be used afterwards.
func (rw *ReadWriter[RW]) Unwrap() RW {
	rw.rops.stop()
	rw.wops.stop()
	return rw.inner
}

// NonblockReadWriter is the cooperative duplex wrapper: ReadWriter plus the
// would-block wake rule on both directions. Both directions share the one
// wake capability, because a single caller task drives the duplex stream.
type NonblockReadWriter[RW io.ReadWriter] struct {
	inner RW
	rops  *script
	wops  *script
	delay time.Duration
	wake  func()
}

// NewNonblockReadWriter wraps rw with one script per direction.
// Construction never fails.
func NewNonblockReadWriter[RW io.ReadWriter](rw RW, readOps, writeOps iter.Seq[Op], opts ...Option) *NonblockReadWriter[RW] {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	return &NonblockReadWriter[RW]{
		inner: rw,
		rops:  newScript(readOps, &o),
		wops:  newScript(writeOps, &o),
		delay: o.RetryDelay,
		wake:  o.Wake,
	}
}

// Read consumes one op from the read-side script and applies the
// would-block wake rule.
func (rw *NonblockReadWriter[RW]) Read(p []byte) (int, error) {
	return scriptedRead(rw.inner, rw.rops, rw.delay, rw.wake, p)
}

// Write consumes one op from the write-side script and applies the
// would-block wake rule.
func (rw *NonblockReadWriter[RW]) Write(p []byte) (int, error) {
	return scriptedWrite(rw.inner, rw.wops, rw.delay, rw.wake, p)
}

// Flush consumes one op from the write-side script and applies the
// would-block wake rule.
func (rw *NonblockReadWriter[RW]) Flush() error {
	return scriptedFlush(rw.inner, rw.wops, rw.delay, rw.wake)
}

// Close consumes one op from the write-side script and applies the
// would-block wake rule.
func (rw *NonblockReadWriter[RW]) Close() error {
	return scriptedClose(rw.inner, rw.wops, rw.delay, rw.wake)
}

// SetReadOps replaces the read-side script, discarding unconsumed entries.
func (rw *NonblockReadWriter[RW]) SetReadOps(ops iter.Seq[Op]) *NonblockReadWriter[RW] {
	rw.rops.replace(ops)
	return rw
}

// SetWriteOps replaces the write-side script, discarding unconsumed entries.
func (rw *NonblockReadWriter[RW]) SetWriteOps(ops iter.Seq[Op]) *NonblockReadWriter[RW] {
	rw.wops.replace(ops)
	return rw
}

// Inner returns the underlying stream for direct access between scripted
// calls.
func (rw *NonblockReadWriter[RW]) Inner() RW { return rw.inner }

// Unwrap releases both scripts and returns the underlying stream. The
// wrapper must not be used afterwards.
func (rw *NonblockReadWriter[RW]) Unwrap() RW {
	rw.rops.stop()
	rw.wops.stop()
	return rw.inner
}

// NewPipe returns a synchronous in-memory pipe with a scripted read end and
// a scripted write end. Closing the returned writer (a delegated scripted
// Close) closes the pipe so the read end observes io.EOF.
func NewPipe(readOps, writeOps iter.Seq[Op], opts ...Option) (*Reader[*io.PipeReader], *Writer[*io.PipeWriter]) {
	r, w := io.Pipe()
	return NewReader(r, readOps, opts...), NewWriter(w, writeOps, opts...)
}
