// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "sync"

// Queue buffers input events between the window system callbacks that
// produce them and the platform subsystem that consumes them once per tick.
// Send may be called from any goroutine. The zero value is ready to use.
type Queue struct {
	mu sync.Mutex

	// pending holds events in arrival order, starting at index head.
	pending []Event
	head    int

	// spare is the buffer handed back by the last Drain, reused by the
	// next swap so steady-state ticks do not allocate.
	spare []Event
}

// NewQueue returns a new empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Init empties the queue.
func (q *Queue) Init() {
	q.mu.Lock()
	clear(q.pending)
	q.pending = q.pending[:0]
	q.head = 0
	q.mu.Unlock()
}

// Send appends ev to the back of the queue.
func (q *Queue) Send(ev Event) {
	q.mu.Lock()
	q.pending = append(q.pending, ev)
	q.mu.Unlock()
}

// NextEvent pops the oldest event, or returns nil when the queue is empty.
func (q *Queue) NextEvent() Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.head >= len(q.pending) {
		return nil
	}
	ev := q.pending[q.head]
	q.pending[q.head] = nil
	q.head++
	if q.head == len(q.pending) {
		q.pending = q.pending[:0]
		q.head = 0
	}
	return ev
}

// Len returns the number of events waiting in the queue.
func (q *Queue) Len() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return uint64(len(q.pending) - q.head)
}

// Drain hands every waiting event to fn, oldest first, and returns how many
// were handled. fn runs without the lock held, so it may Send; events it
// sends are handled by the same call after the current batch.
func (q *Queue) Drain(fn func(ev Event)) int {
	n := 0
	for {
		batch := q.swap()
		if len(batch) == 0 {
			q.recycle(batch)
			return n
		}
		for _, ev := range batch {
			fn(ev)
		}
		n += len(batch)
		q.recycle(batch)
	}
}

// swap takes the waiting events out of the queue in one step, leaving the
// spare buffer in their place.
func (q *Queue) swap() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	batch := q.pending[q.head:]
	q.pending = q.spare[:0]
	q.spare = nil
	q.head = 0
	return batch
}

func (q *Queue) recycle(batch []Event) {
	clear(batch)
	q.mu.Lock()
	if q.spare == nil {
		q.spare = batch[:0]
	}
	q.mu.Unlock()
}
