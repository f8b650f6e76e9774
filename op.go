// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partialio

import (
	"fmt"
	"iter"
)

type opKind uint8

const (
	opUnlimited opKind = iota
	opLimited
	opFault
)

// Op is one scripted outcome for the next intercepted call.
//
// An Op is an immutable value. It is consumed exactly once: each logical
// Read, Write, Flush, or Close on a wrapper pulls exactly one Op from the
// wrapper's script.
type Op struct {
	kind opKind
	n    int
	err  error
}

// Unlimited scripts a full pass-through: the next call is delegated to the
// underlying stream unchanged. An exhausted script behaves as an infinite
// tail of Unlimited ops.
func Unlimited() Op { return Op{kind: opUnlimited} }

// Limited scripts a size-limited pass-through: the next sized call (Read or
// Write) is delegated with its length restricted to min(n, requested).
// For unit calls (Flush, Close) there is no meaningful partial outcome, so
// Limited is a successful no-op that never reaches the underlying stream.
// A negative n is treated as zero.
func Limited(n int) Op {
	if n < 0 {
		n = 0
	}
	return Op{kind: opLimited, n: n}
}

// Fault scripts a synthetic failure: the next call returns err verbatim
// without invoking the underlying stream at all. The error vocabulary is
// the caller's choice; typical values are iox.ErrWouldBlock, iox.ErrMore,
// io.ErrUnexpectedEOF, or a syscall errno. Fault(nil) scripts nothing and
// is equivalent to Unlimited.
func Fault(err error) Op {
	if err == nil {
		return Op{kind: opUnlimited}
	}
	return Op{kind: opFault, err: err}
}

// String returns a readable form of the op, e.g. "Limited(2)".
func (op Op) String() string {
	switch op.kind {
	case opLimited:
		return fmt.Sprintf("Limited(%d)", op.n)
	case opFault:
		return fmt.Sprintf("Fault(%v)", op.err)
	default:
		return "Unlimited"
	}
}

// Ops returns a finite script source yielding the given ops in order.
func Ops(ops ...Op) iter.Seq[Op] {
	return func(yield func(Op) bool) {
		for _, op := range ops {
			if !yield(op) {
				return
			}
		}
	}
}

// Repeat returns an unbounded script source cycling through the given ops
// forever. Repeat() with no ops returns nil, i.e. pure pass-through.
func Repeat(ops ...Op) iter.Seq[Op] {
	if len(ops) == 0 {
		return nil
	}
	return func(yield func(Op) bool) {
		for {
			for _, op := range ops {
				if !yield(op) {
					return
				}
			}
		}
	}
}
