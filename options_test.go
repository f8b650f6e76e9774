// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partialio_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/partialio"
)

func TestOptions_Setters(t *testing.T) {
	var o partialio.Options

	partialio.WithRetryDelay(99 * time.Microsecond)(&o)
	assert.Equal(t, 99*time.Microsecond, o.RetryDelay)

	partialio.WithBlock()(&o)
	assert.Equal(t, time.Duration(0), o.RetryDelay)

	partialio.WithNonblock()(&o)
	assert.Negative(t, o.RetryDelay)

	called := false
	partialio.WithWake(func() { called = true })(&o)
	require.NotNil(t, o.Wake)
	o.Wake()
	assert.True(t, called)
}

func TestWithLogger_TracesScriptedDecisions(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs).Level(zerolog.TraceLevel)

	r := partialio.NewReader(bytes.NewReader([]byte("abcdef")),
		partialio.Ops(
			partialio.Limited(2),
			partialio.Fault(errBoom),
			partialio.Unlimited(),
		),
		partialio.WithLogger(logger),
	)

	buf := make([]byte, 4)
	_, _ = r.Read(buf)
	_, _ = r.Read(buf)
	_, _ = r.Read(buf)

	out := logs.String()
	assert.Contains(t, out, "partialio: truncated")
	assert.Contains(t, out, `"limit":2`)
	assert.Contains(t, out, "partialio: fault")
	assert.Contains(t, out, "boom")
	// Pass-through decisions stay silent; one line per deviation only.
	assert.Equal(t, 2, bytes.Count(logs.Bytes(), []byte("\n")))
}

func TestDefaults_NonblockAndSilent(t *testing.T) {
	// Default policy: a scripted would-block surfaces immediately (no
	// internal retry) and no trace output is produced anywhere.
	r := partialio.NewReader(bytes.NewReader([]byte("ab")),
		partialio.Ops(partialio.Fault(partialio.ErrWouldBlock)))

	start := time.Now()
	_, err := r.Read(make([]byte, 2))
	require.ErrorIs(t, err, partialio.ErrWouldBlock)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}
