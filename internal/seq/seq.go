// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package seq provides a single-consumption pull queue over a lazy sequence.
//
// A Queue is created from an iter.Seq source, which may be finite or
// unbounded. Entries are pulled one at a time and never revisited; once the
// source is exhausted, Next keeps returning the caller-supplied fallback
// value. The whole source can be swapped at any time, discarding entries
// that were never pulled.
package seq

import "iter"

// Queue pulls values from an owned lazy sequence, one at a time.
//
// A Queue never fails. It is not safe for simultaneous use from multiple
// goroutines; ownership may be transferred between goroutines as long as
// calls do not overlap.
type Queue[T any] struct {
	next func() (T, bool)
	stop func()
}

// New returns a Queue that consumes src. A nil src behaves as an already
// exhausted sequence.
func New[T any](src iter.Seq[T]) *Queue[T] {
	q := &Queue[T]{}
	q.Replace(src)
	return q
}

// Next pulls and returns the next value, advancing the source irreversibly.
// When the source is exhausted (or was nil), Next returns fallback.
func (q *Queue[T]) Next(fallback T) T {
	if q.next == nil {
		return fallback
	}
	v, ok := q.next()
	if !ok {
		// Release the finished pull iterator eagerly.
		q.Stop()
		return fallback
	}
	return v
}

// Replace discards the current source, including any entry not yet pulled,
// and installs src. It takes effect starting with the next call to Next.
func (q *Queue[T]) Replace(src iter.Seq[T]) {
	q.Stop()
	if src == nil {
		return
	}
	q.next, q.stop = iter.Pull(src)
}

// Stop releases the current source. Subsequent Next calls return the
// fallback value. Stop is idempotent.
func (q *Queue[T]) Stop() {
	if q.stop != nil {
		q.stop()
	}
	q.next, q.stop = nil, nil
}
