package main

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJanitorStops(t *testing.T) {
	var sweeps int32
	stop := startJanitor(time.Millisecond, func(time.Time) {
		atomic.AddInt32(&sweeps, 1)
	})

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&sweeps) > 0 }, time.Second, time.Millisecond)

	stop()
	stop()
	after := atomic.LoadInt32(&sweeps)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&sweeps), "no sweeps after stop")
}
