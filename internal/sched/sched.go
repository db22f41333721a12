// Package sched provides a single-threaded timer queue driven by an external
// monotonic clock. Hosts advance the clock once per tick; due callbacks run
// on the advancing goroutine in deadline order.
package sched

import (
	"container/heap"
	"time"
)

// TimerID identifies a scheduled callback. The zero value is never issued.
type TimerID uint64

type timer struct {
	id       TimerID
	due      time.Duration
	seq      uint64 // tie-break so equal deadlines fire in scheduling order
	fn       func()
	canceled bool
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due == h[j].due {
		return h[i].seq < h[j].seq
	}
	return h[i].due < h[j].due
}

func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *timerHeap) Push(x any) { *h = append(*h, x.(*timer)) }

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// Scheduler is a timer queue on a virtual clock. It is not safe for
// concurrent use.
type Scheduler struct {
	now     time.Duration
	queue   timerHeap
	pending map[TimerID]*timer
	nextID  TimerID
	seq     uint64
}

// New returns a scheduler whose clock starts at zero.
func New() *Scheduler {
	return &Scheduler{
		pending: make(map[TimerID]*timer),
	}
}

// Now returns the time of the most recent Advance.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once the clock reaches Now()+delay.
// A negative delay is treated as zero.
func (s *Scheduler) After(delay time.Duration, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	s.seq++
	t := &timer{
		id:  s.nextID,
		due: s.now + delay,
		seq: s.seq,
		fn:  fn,
	}
	heap.Push(&s.queue, t)
	s.pending[t.id] = t
	return t.id
}

// Cancel stops a pending timer. It reports whether the timer was still
// pending; cancelling a fired, cancelled or unknown timer is a no-op.
func (s *Scheduler) Cancel(id TimerID) bool {
	t, ok := s.pending[id]
	if !ok {
		return false
	}
	t.canceled = true
	delete(s.pending, id)
	return true
}

// Pending returns the number of timers that have neither fired nor been cancelled.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// Advance moves the clock to now and runs every timer due at or before it,
// including timers scheduled by callbacks during this call. Each callback
// runs with Now() at its own deadline, so a timer that reschedules itself
// fires once per elapsed period. The clock never moves backwards; an
// earlier now only flushes already-due timers.
// It returns the number of callbacks run.
func (s *Scheduler) Advance(now time.Duration) int {
	target := max(now, s.now)
	ran := 0
	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.due > target {
			break
		}
		heap.Pop(&s.queue)
		if next.canceled {
			continue
		}
		delete(s.pending, next.id)
		s.now = max(s.now, next.due)
		next.fn()
		ran++
	}
	s.now = target
	return ran
}
