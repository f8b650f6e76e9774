// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partialio

import (
	"errors"
	"io"
	"iter"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"code.hybscloud.com/partialio/internal/seq"
)

// call names used for decision tracing.
const (
	callRead  = "read"
	callWrite = "write"
	callFlush = "flush"
	callClose = "close"
)

// script owns one direction's ordered sequence of scripted ops and applies
// the per-call decision: how much of a sized call to forward, or which
// synthetic failure to return without touching the underlying stream.
//
// Exactly one op is pulled per logical call. An exhausted script keeps
// yielding Unlimited, i.e. pure pass-through.
type script struct {
	q   *seq.Queue[Op]
	log zerolog.Logger
}

func newScript(src iter.Seq[Op], o *Options) *script {
	return &script{q: seq.New(src), log: o.Logger}
}

func (s *script) replace(src iter.Seq[Op]) { s.q.Replace(src) }

func (s *script) stop() { s.q.Stop() }

// sized interprets the next op for a Read/Write of requested length n.
// It returns the effective length to forward, or a synthetic error, in
// which case nothing may be forwarded and no buffer byte may be touched.
func (s *script) sized(call string, n int) (limit int, err error) {
	op := s.q.Next(Unlimited())
	switch op.kind {
	case opLimited:
		limit = min(op.n, n)
		s.log.Trace().Str("call", call).Int("requested", n).Int("limit", limit).
			Msg("partialio: truncated")
		return limit, nil
	case opFault:
		s.log.Trace().Str("call", call).Int("requested", n).Err(op.err).
			Msg("partialio: fault")
		return 0, op.err
	default:
		return n, nil
	}
}

// unit interprets the next op for a Flush/Close. delegate reports whether
// the call reaches the underlying stream: a Limited op is a successful
// no-op because a unit call has no meaningful partial outcome.
func (s *script) unit(call string) (delegate bool, err error) {
	op := s.q.Next(Unlimited())
	switch op.kind {
	case opLimited:
		s.log.Trace().Str("call", call).Msg("partialio: skipped")
		return false, nil
	case opFault:
		s.log.Trace().Str("call", call).Err(op.err).Msg("partialio: fault")
		return false, op.err
	default:
		return true, nil
	}
}

// waitOnce applies the RetryDelay policy after an ErrWouldBlock.
// It reports whether the caller should retry the logical call.
func waitOnce(d time.Duration) bool {
	if d < 0 {
		return false
	}
	if d == 0 {
		runtime.Gosched()
		return true
	}
	time.Sleep(d)
	return true
}

// isWouldBlock classifies err as the retryable "not ready yet" signal.
// Any other error, scripted or genuine, is terminal for the call.
func isWouldBlock(err error) bool {
	return err == ErrWouldBlock || errors.Is(err, ErrWouldBlock)
}

// scriptedRead performs one logical scripted read. On a scripted
// would-block it signals wake (when non-nil) and, per the retry policy,
// either surfaces the error or retries; each retry consumes the next op.
// A would-block from the underlying stream follows the same retry policy
// but never signals wake: a real non-blocking source arranges its own
// readiness notification.
func scriptedRead(rd io.Reader, s *script, delay time.Duration, wake func(), p []byte) (int, error) {
	for {
		limit, err := s.sized(callRead, len(p))
		if err != nil {
			if isWouldBlock(err) {
				if wake != nil {
					wake()
				}
				if waitOnce(delay) {
					continue
				}
			}
			return 0, err
		}
		n, err := rd.Read(p[:limit])
		if n == 0 && err != nil && isWouldBlock(err) && waitOnce(delay) {
			continue
		}
		return n, err
	}
}

// scriptedWrite performs one logical scripted write. A Limited op makes the
// wrapper deliberately accept only a prefix and return the short count with
// a nil error, so callers' short-write handling can be exercised; this is
// the one place the library intentionally bends the io.Writer contract.
func scriptedWrite(wr io.Writer, s *script, delay time.Duration, wake func(), p []byte) (int, error) {
	for {
		limit, err := s.sized(callWrite, len(p))
		if err != nil {
			if isWouldBlock(err) {
				if wake != nil {
					wake()
				}
				if waitOnce(delay) {
					continue
				}
			}
			return 0, err
		}
		n, err := wr.Write(p[:limit])
		if n == 0 && err != nil && isWouldBlock(err) && waitOnce(delay) {
			continue
		}
		return n, err
	}
}

// scriptedFlush performs one logical scripted flush. When the underlying
// stream has no Flush, a delegated flush is a successful no-op: nothing is
// buffered below the wrapper.
func scriptedFlush(wr any, s *script, delay time.Duration, wake func()) error {
	for {
		delegate, err := s.unit(callFlush)
		if err != nil {
			if isWouldBlock(err) {
				if wake != nil {
					wake()
				}
				if waitOnce(delay) {
					continue
				}
			}
			return err
		}
		if !delegate {
			return nil
		}
		if f, ok := wr.(Flusher); ok {
			return f.Flush()
		}
		return nil
	}
}

// scriptedClose performs one logical scripted close. When the underlying
// stream has no Close, a delegated close is a successful no-op.
func scriptedClose(wr any, s *script, delay time.Duration, wake func()) error {
	for {
		delegate, err := s.unit(callClose)
		if err != nil {
			if isWouldBlock(err) {
				if wake != nil {
					wake()
				}
				if waitOnce(delay) {
					continue
				}
			}
			return err
		}
		if !delegate {
			return nil
		}
		if c, ok := wr.(io.Closer); ok {
			return c.Close()
		}
		return nil
	}
}
