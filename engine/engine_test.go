// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"cogentcore.org/ronin/config"
	"cogentcore.org/ronin/systems"
	"github.com/stretchr/testify/assert"
)

type countingSubsystem struct {
	name            string
	stopAt          int
	prepared, ticks int
	shutdown        bool
}

func (cs *countingSubsystem) String() string { return cs.name }
func (cs *countingSubsystem) Prepare()       { cs.prepared++ }
func (cs *countingSubsystem) Shutdown()      { cs.shutdown = true }

func (cs *countingSubsystem) Tick() bool {
	cs.ticks++
	return cs.stopAt == 0 || cs.ticks < cs.stopAt
}

func TestRunStopsOnFirstFalse(t *testing.T) {
	a := &countingSubsystem{name: "a"}
	b := &countingSubsystem{name: "b", stopAt: 7}
	en := newEngine(config.NewConfig(), systems.NewSupervisorOf(a, b), Options{})

	assert.Equal(t, 7, en.Run())
	assert.Equal(t, 1, a.prepared)
	assert.Equal(t, 7, a.ticks)
	assert.Equal(t, 7, b.ticks)

	en.Shutdown()
	assert.True(t, a.shutdown)
	assert.True(t, b.shutdown)
}

func TestRunFirstTickStops(t *testing.T) {
	a := &countingSubsystem{name: "a", stopAt: 1}
	en := newEngine(config.NewConfig(), systems.NewSupervisorOf(a), Options{})
	assert.Equal(t, 1, en.Run())
}

func TestRunMaxTicks(t *testing.T) {
	a := &countingSubsystem{name: "a"}
	en := newEngine(config.NewConfig(), systems.NewSupervisorOf(a), Options{MaxTicks: 12})
	assert.Equal(t, 12, en.Run())
	assert.Equal(t, 12, a.ticks)
	en.Shutdown()
}

func TestServiceRoutine(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ServiceRoutine(ctx, time.Millisecond, func(time.Time) { calls.Add(1) })
		close(done)
	}()
	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("service routine did not stop")
	}
}
