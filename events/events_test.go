// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"sync"
	"testing"

	"cogentcore.org/ronin/math32"
	"github.com/stretchr/testify/assert"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	assert.Nil(t, q.NextEvent())

	q.Send(NewKey(KeyDown, CodeW, 0))
	q.Send(NewMouse(MouseDown, Button2, math32.Vec2(3, 4), Shift))
	q.Send(NewWindow(WindowClose))
	assert.Equal(t, uint64(3), q.Len())

	var got []Types
	n := q.Drain(func(ev Event) { got = append(got, ev.Type()) })
	assert.Equal(t, 3, n)
	assert.Equal(t, []Types{KeyDown, MouseDown, WindowClose}, got)
	assert.Zero(t, q.Len())
	assert.Nil(t, q.NextEvent())
}

func TestQueueConcurrentSend(t *testing.T) {
	q := NewQueue()
	const senders, each = 8, 500
	var wg sync.WaitGroup
	for range senders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range each {
				q.Send(NewMouseMove(math32.Vec2(1, 1)))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, senders*each, q.Drain(func(Event) {}))
}

func TestQueueSendWhileDraining(t *testing.T) {
	var q Queue
	q.Send(NewKey(KeyDown, CodeW, 0))
	sent := false
	var got []Types
	n := q.Drain(func(ev Event) {
		got = append(got, ev.Type())
		if !sent {
			sent = true
			q.Send(NewWindow(WindowClose))
		}
	})
	assert.Equal(t, 2, n)
	assert.Equal(t, []Types{KeyDown, WindowClose}, got)
	assert.Zero(t, q.Len())

	q.Send(NewMouseMove(math32.Vec2(1, 2)))
	assert.Equal(t, MouseMove, q.NextEvent().Type())
	q.Send(NewKey(KeyUp, CodeA, 0))
	q.Init()
	assert.Zero(t, q.Len())
	assert.Zero(t, q.Drain(func(Event) {}))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "W", CodeW.String())
	assert.Equal(t, "7", Code7.String())
	assert.Equal(t, "Escape", CodeEscape.String())
	assert.Equal(t, "Button2", Right.String())
	assert.Equal(t, "WindowClose", WindowClose.String())
	assert.Equal(t, "KeyDown{Code: A, Mods: 0}", NewKey(KeyDown, CodeA, 0).String())
	assert.True(t, (Shift | Alt).HasFlag(Alt))
	assert.False(t, Shift.HasFlag(Control))
}
