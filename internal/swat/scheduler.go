package swat

import (
	"container/heap"
	"time"
)

// TimerID identifies a scheduled callback. The zero value is never issued.
type TimerID uint64

type timer struct {
	id    TimerID
	at    time.Duration
	fn    func()
	index int
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].id < h[j].id
}
func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Scheduler runs one-shot callbacks against a virtual clock that only moves
// when Advance is called. It is not safe for concurrent use.
type Scheduler struct {
	now   time.Duration
	seq   TimerID
	queue timerHeap
	byID  map[TimerID]*timer
}

func NewScheduler() *Scheduler {
	return &Scheduler{byID: make(map[TimerID]*timer)}
}

// Now is the virtual time elapsed since creation or the last Reset.
func (s *Scheduler) Now() time.Duration { return s.now }

// Pending is the number of timers not yet fired or cancelled.
func (s *Scheduler) Pending() int { return len(s.queue) }

// After schedules fn to run d from now. Negative d runs on the next Advance.
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &timer{id: s.seq, at: s.now + d, fn: fn}
	heap.Push(&s.queue, t)
	s.byID[t.id] = t
	return t.id
}

// Cancel drops a pending timer and reports whether it was still pending.
func (s *Scheduler) Cancel(id TimerID) bool {
	t, ok := s.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&s.queue, t.index)
	delete(s.byID, id)
	return true
}

// Advance moves the clock forward by dt and fires every timer that comes due,
// including ones scheduled by callbacks inside the window.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	for len(s.queue) > 0 && s.queue[0].at <= target {
		t := heap.Pop(&s.queue).(*timer)
		delete(s.byID, t.id)
		s.now = t.at
		t.fn()
	}
	s.now = target
}

// Reset drops every pending timer and rewinds the clock.
func (s *Scheduler) Reset() {
	s.queue = nil
	clear(s.byID)
	s.now = 0
}
