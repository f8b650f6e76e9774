// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partialio_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"code.hybscloud.com/partialio"
)

func TestReadWriter_DirectionsOwnIndependentScripts(t *testing.T) {
	errRead := errors.New("read script")
	errWrite := errors.New("write script")
	under := newDuplex([]byte("abc"))
	rw := partialio.NewReadWriter(under,
		partialio.Ops(partialio.Fault(errRead)),
		partialio.Ops(partialio.Fault(errWrite)),
	)

	// Write first: must consume from the write-side script only.
	if _, err := rw.Write([]byte("x")); err != errWrite {
		t.Fatalf("write err=%v", err)
	}
	if _, err := rw.Read(make([]byte, 1)); err != errRead {
		t.Fatalf("read err=%v", err)
	}
	// Both scripts exhausted: pure pass-through in both directions.
	if n, err := rw.Write([]byte("out")); n != 3 || err != nil {
		t.Fatalf("pass-through write: n=%d err=%v", n, err)
	}
	buf := make([]byte, 8)
	if n, err := rw.Read(buf); n != 3 || err != nil || string(buf[:n]) != "abc" {
		t.Fatalf("pass-through read: n=%d err=%v buf=%q", n, err, buf[:n])
	}
}

func TestReadWriter_NilDirectionIsPassThrough(t *testing.T) {
	// Scripting only the read side reproduces the classic duplex layout:
	// scripted reads, unscripted write forwarding.
	under := newDuplex([]byte("abc"))
	rw := partialio.NewReadWriter(under, partialio.Ops(partialio.Limited(1)), nil)

	for i := 0; i < 5; i++ {
		if n, err := rw.Write([]byte("w")); n != 1 || err != nil {
			t.Fatalf("write[%d]: n=%d err=%v", i, n, err)
		}
	}
	buf := make([]byte, 8)
	if n, err := rw.Read(buf); n != 1 || err != nil {
		t.Fatalf("limited read: n=%d err=%v", n, err)
	}
}

func TestReadWriter_FlushCloseConsumeWriteScript(t *testing.T) {
	e1 := errors.New("flush fault")
	under := newDuplex([]byte("abc"))
	rw := partialio.NewReadWriter(under, nil, partialio.Ops(partialio.Fault(e1)))

	if err := rw.Flush(); err != e1 {
		t.Fatalf("flush err=%v", err)
	}
	// Read side unaffected by the consumed write-side entry.
	buf := make([]byte, 8)
	if n, err := rw.Read(buf); n != 3 || err != nil {
		t.Fatalf("read: n=%d err=%v", n, err)
	}
	if err := rw.Close(); err != nil || under.closed != 1 {
		t.Fatalf("close: err=%v closed=%d", err, under.closed)
	}
}

func TestReadWriter_SetOpsPerDirection(t *testing.T) {
	errNew := errors.New("new read script")
	under := newDuplex([]byte("abc"))
	rw := partialio.NewReadWriter(under, nil, nil)

	rw.SetReadOps(partialio.Ops(partialio.Fault(errNew))).
		SetWriteOps(partialio.Ops(partialio.Limited(1)))
	if _, err := rw.Read(make([]byte, 1)); err != errNew {
		t.Fatalf("read err=%v", err)
	}
	if n, err := rw.Write([]byte("xy")); n != 1 || err != nil {
		t.Fatalf("write: n=%d err=%v", n, err)
	}
	if rw.Inner() != under || rw.Unwrap() != under {
		t.Fatalf("accessors returned a different stream")
	}
}

func TestNonblockReadWriter_WakeOnBothDirections(t *testing.T) {
	woken := 0
	under := newDuplex([]byte("abc"))
	rw := partialio.NewNonblockReadWriter(under,
		partialio.Ops(partialio.Fault(partialio.ErrWouldBlock)),
		partialio.Ops(partialio.Fault(partialio.ErrWouldBlock)),
		partialio.WithWake(func() { woken++ }),
	)

	if _, err := rw.Read(make([]byte, 1)); !errors.Is(err, partialio.ErrWouldBlock) {
		t.Fatalf("read err=%v", err)
	}
	if _, err := rw.Write([]byte("x")); !errors.Is(err, partialio.ErrWouldBlock) {
		t.Fatalf("write err=%v", err)
	}
	if woken != 2 {
		t.Fatalf("woken=%d want=2", woken)
	}
	// Scripts exhausted: both directions pass through.
	if n, err := rw.Read(make([]byte, 8)); n != 3 || err != nil {
		t.Fatalf("read: n=%d err=%v", n, err)
	}
	if n, err := rw.Write([]byte("out")); n != 3 || err != nil {
		t.Fatalf("write: n=%d err=%v", n, err)
	}
	if err := rw.Flush(); err != nil || under.flushed != 1 {
		t.Fatalf("flush: err=%v flushed=%d", err, under.flushed)
	}
	if err := rw.Close(); err != nil || under.closed != 1 {
		t.Fatalf("close: err=%v closed=%d", err, under.closed)
	}
	if rw.SetReadOps(nil) != rw || rw.SetWriteOps(nil) != rw {
		t.Fatalf("SetOps must return the receiver for chaining")
	}
	if rw.Inner() != under || rw.Unwrap() != under {
		t.Fatalf("accessors returned a different stream")
	}
}

func TestNewPipe_ScriptedEnds(t *testing.T) {
	r, w := partialio.NewPipe(
		partialio.Ops(partialio.Limited(2)),
		nil,
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := w.Write([]byte("hello")); err != nil {
			t.Errorf("pipe write: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Errorf("pipe close: %v", err)
		}
	}()

	var got bytes.Buffer
	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		got.Write(buf[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("pipe read: %v", err)
		}
	}
	<-done
	if got.String() != "hello" {
		t.Fatalf("got=%q", got.String())
	}
}
