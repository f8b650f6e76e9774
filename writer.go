// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partialio

import (
	"io"
	"iter"
	"time"
)

// Flusher is the optional flushing capability of a wrapped stream, as
// implemented by bufio.Writer and most buffered transports.
type Flusher interface {
	Flush() error
}

// Writer is a synchronous sink wrapper: it owns an underlying io.Writer and
// a script, and answers each Write, Flush, and Close according to the next
// scripted op. All three call kinds consume from the same script, one op
// per call, in the order the calls are made.
type Writer[W io.Writer] struct {
	inner W
	ops   *script
	delay time.Duration
}

// NewWriter wraps wr with the given script. A nil ops source scripts
// nothing: every call passes through. Construction never fails.
func NewWriter[W io.Writer](wr W, ops iter.Seq[Op], opts ...Option) *Writer[W] {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	return &Writer[W]{inner: wr, ops: newScript(ops, &o), delay: o.RetryDelay}
}

// Write consumes one scripted op and acts on it: delegate in full, delegate
// only the first min(n, len(p)) bytes of p, or return the scripted error
// with the underlying writer never invoked.
//
// A Limited op deliberately produces a short count with a nil error so the
// caller's short-write handling can be exercised; bytes beyond the scripted
// limit are simply never forwarded.
func (w *Writer[W]) Write(p []byte) (int, error) {
	return scriptedWrite(w.inner, w.ops, w.delay, nil, p)
}

// Flush consumes one scripted op. Unlimited delegates to the underlying
// Flusher when the capability exists (and is a successful no-op otherwise);
// Limited is a successful no-op that never reaches the underlying stream;
// Fault returns the scripted error.
func (w *Writer[W]) Flush() error {
	return scriptedFlush(w.inner, w.ops, w.delay, nil)
}

// Close consumes one scripted op, with the same decision rules as Flush
// applied to the underlying io.Closer capability.
func (w *Writer[W]) Close() error {
	return scriptedClose(w.inner, w.ops, w.delay, nil)
}

// ReadFrom implements io.ReaderFrom by feeding chunks read from src through
// scripted writes.
//
// Each internal write consumes one scripted op, exactly as Write does, so
// the iox.Copy fast path observes the same fault sequence as a manual write
// loop. Scripted short writes are drained by issuing further scripted
// writes for the remainder. If a scripted or underlying error interrupts
// the transfer, ReadFrom returns immediately with the progress count (bytes
// accepted by the sink) and that error; ErrWouldBlock and ErrMore propagate
// unchanged.
func (w *Writer[W]) ReadFrom(src io.Reader) (int64, error) {
	var total int64
	var buf [32 * 1024]byte
	for {
		n, er := src.Read(buf[:])
		if n > 0 {
			off := 0
			for off < n {
				wn, we := w.Write(buf[off:n])
				if wn > 0 {
					total += int64(wn)
					off += wn
				}
				if we != nil {
					return total, we
				}
				if wn == 0 {
					// A Limited(0) op or a pathological writer made no
					// progress; stop rather than spin.
					return total, io.ErrShortWrite
				}
			}
		}
		if er != nil {
			if er == io.EOF {
				return total, nil
			}
			return total, er
		}
		if n == 0 {
			return total, nil
		}
	}
}

// SetOps discards any unconsumed scripted ops and installs a new source,
// effective from the next call. It returns the receiver for chaining.
func (w *Writer[W]) SetOps(ops iter.Seq[Op]) *Writer[W] {
	w.ops.replace(ops)
	return w
}

// Inner returns the underlying writer for direct access between scripted
// calls.
func (w *Writer[W]) Inner() W { return w.inner }

// Unwrap releases the script and returns the underlying writer. The
// wrapper must not be used afterwards.
func (w *Writer[W]) Unwrap() W {
	w.ops.stop()
	return w.inner
}
