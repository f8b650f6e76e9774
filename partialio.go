// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package partialio provides deterministic fault injection for byte-stream
// I/O, exposed via io.Reader and io.Writer wrappers.
//
// Semantics and design:
//   - Scripted outcomes: a wrapper owns an ordered script of ops (Unlimited,
//     Limited, Fault). Each logical Read/Write/Flush/Close consumes exactly
//     one op, which decides whether the call is delegated in full, delegated
//     with a truncated length, or answered with a synthetic error without
//     touching the underlying stream. An exhausted script means pure
//     pass-through, so a wrapper with an empty script is behaviorally
//     indistinguishable from the bare stream.
//   - Non-blocking first: a scripted Fault(ErrWouldBlock) is a control-flow
//     signal, not a failure. Nonblock wrappers additionally invoke the
//     injected wake capability (WithWake) before surfacing it, so a caller
//     parked on readiness gets re-polled; all other fault kinds are terminal
//     for that call and surface verbatim.
//   - io compatibility: wrappers are drop-in substitutes for the stream they
//     wrap. Reader implements io.WriterTo and Writer implements
//     io.ReaderFrom so iox.Copy fast paths stay scripted, honoring short
//     writes and propagating ErrWouldBlock/ErrMore with progress counts.
//
// Every fault is explicitly scripted in advance by the test author; the
// package performs no real I/O of its own, never retries on the caller's
// behalf unless WithBlock/WithRetryDelay opt in, and injects nothing at
// random.
package partialio
