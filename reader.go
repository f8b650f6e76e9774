// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partialio

import (
	"io"
	"iter"
	"time"
)

// Reader is a synchronous source wrapper: it owns an underlying io.Reader
// and a script, and answers each Read according to the next scripted op.
//
// The type parameter preserves the concrete stream type so Inner and Unwrap
// hand it back untyped-assertion-free. The zero value is not usable; use
// NewReader.
type Reader[R io.Reader] struct {
	inner R
	ops   *script
	delay time.Duration
}

// NewReader wraps rd with the given script. A nil ops source scripts
// nothing: every call passes through. Construction never fails.
func NewReader[R io.Reader](rd R, ops iter.Seq[Op], opts ...Option) *Reader[R] {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	return &Reader[R]{inner: rd, ops: newScript(ops, &o), delay: o.RetryDelay}
}

// Read consumes one scripted op and acts on it: delegate in full, delegate
// over at most the scripted number of bytes (only that prefix of p may be
// filled), or return the scripted error with p untouched and the underlying
// reader never invoked.
func (r *Reader[R]) Read(p []byte) (int, error) {
	return scriptedRead(r.inner, r.ops, r.delay, nil, p)
}

// WriteTo implements io.WriterTo by draining scripted reads into dst.
//
// Each internal read consumes one scripted op, exactly as Read does, so the
// iox.Copy fast path observes the same fault sequence as a manual read
// loop. If a scripted or underlying error interrupts the transfer, WriteTo
// returns immediately with the progress count (bytes written) and that
// error; ErrWouldBlock and ErrMore propagate unchanged. Short writes on dst
// are handled per io.Writer contract.
func (r *Reader[R]) WriteTo(dst io.Writer) (int64, error) {
	var total int64
	var buf [32 * 1024]byte
	for {
		n, err := r.Read(buf[:])
		if n > 0 {
			off := 0
			for off < n {
				wn, we := dst.Write(buf[off:n])
				if wn > 0 {
					total += int64(wn)
					off += wn
				}
				if we != nil {
					return total, we
				}
				if wn == 0 {
					// Avoid potential infinite loop on pathological writers.
					return total, io.ErrShortWrite
				}
			}
		}
		if err != nil {
			if err == io.EOF {
				return total, nil
			}
			return total, err
		}
		if n == 0 {
			// A (0, nil) read makes no progress; stop rather than spin.
			return total, nil
		}
	}
}

// SetOps discards any unconsumed scripted ops and installs a new source,
// effective from the next call. It returns the receiver for chaining.
func (r *Reader[R]) SetOps(ops iter.Seq[Op]) *Reader[R] {
	r.ops.replace(ops)
	return r
}

// Inner returns the underlying reader for direct access between scripted
// calls.
func (r *Reader[R]) Inner() R { return r.inner }

// Unwrap releases the script and returns the underlying reader. The
// wrapper must not be used afterwards.
func (r *Reader[R]) Unwrap() R {
	r.ops.stop()
	return r.inner
}
