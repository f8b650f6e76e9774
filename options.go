// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partialio

import (
	"time"

	"github.com/rs/zerolog"
)

// Options configures wrapper behavior.
type Options struct {
	// Wake is the cooperative-scheduler wake capability injected by the
	// host runtime. Nonblock wrappers invoke it right before surfacing a
	// scripted ErrWouldBlock so the parked caller is re-polled. Nil skips
	// the signal. Synchronous wrappers ignore it.
	Wake func()

	// RetryDelay controls how a wrapper handles ErrWouldBlock, scripted or
	// coming from the underlying stream:
	//   - negative: nonblock, return ErrWouldBlock immediately
	//   - zero: yield (runtime.Gosched) and retry the logical call
	//   - positive: sleep for the duration and retry the logical call
	// Each retry is a fresh logical call and consumes the next scripted op.
	RetryDelay time.Duration

	// Logger receives a trace event for every scripted decision that
	// deviates from pass-through (Limited truncations and Faults).
	Logger zerolog.Logger
}

var defaultOptions = Options{
	Wake:       nil,
	RetryDelay: -1, // default: nonblock
	Logger:     zerolog.Nop(),
}

type Option func(*Options)

// WithWake injects the wake capability invoked on scripted would-block
// faults. The wrapper never implements scheduling itself; the callback is
// expected to re-arm whatever poller or event loop drives the caller.
func WithWake(wake func()) Option {
	return func(o *Options) { o.Wake = wake }
}

// WithRetryDelay sets the retry/wait policy applied on ErrWouldBlock.
func WithRetryDelay(d time.Duration) Option {
	return func(o *Options) { o.RetryDelay = d }
}

// WithBlock enables cooperative blocking (yield-and-retry) on ErrWouldBlock.
func WithBlock() Option {
	return func(o *Options) { o.RetryDelay = 0 }
}

// WithNonblock forces non-blocking behavior (return ErrWouldBlock immediately).
func WithNonblock() Option {
	return func(o *Options) { o.RetryDelay = -1 }
}

// WithLogger installs a structured logger for scripted-decision tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}
