package engine

import (
	"container/heap"
	"time"
)

// Scheduler is a single-threaded cooperative scheduler running on a virtual
// clock. Tasks are callbacks due at a point in virtual time; each one is
// tagged with the generation it was spawned under and silently dropped if the
// generation has moved on by the time it comes due.
//
// Nothing runs until the owner calls Advance, so every task executes on the
// caller's goroutine and at most one grid mutation is ever in flight.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
	gen   func() uint64

	ran     uint64
	dropped uint64
}

type timer struct {
	due time.Duration
	seq uint64
	gen uint64
	fn  func()
}

// NewScheduler creates a scheduler. gen reports the current generation and is
// consulted whenever a task comes due.
func NewScheduler(gen func() uint64) *Scheduler {
	return &Scheduler{gen: gen}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run delay after the current virtual time under the
// given generation. Tasks due at the same instant run in scheduling order.
func (s *Scheduler) After(delay time.Duration, gen uint64, fn func()) {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	heap.Push(&s.queue, &timer{
		due: s.now + delay,
		seq: s.seq,
		gen: gen,
		fn:  fn,
	})
}

// Advance moves the clock forward by d, running every task that becomes due
// in due-time order. Tasks scheduled during the advance with a due time inside
// the window also run. Returns the number of tasks executed.
func (s *Scheduler) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	return s.runUntil(s.now + d)
}

func (s *Scheduler) runUntil(end time.Duration) int {
	ran := 0
	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.due > end {
			break
		}
		heap.Pop(&s.queue)
		s.now = next.due

		if next.gen != s.gen() {
			s.dropped++
			continue
		}
		next.fn()
		s.ran++
		ran++
	}
	s.now = end
	return ran
}

// Pending returns the number of queued tasks, stale ones included.
func (s *Scheduler) Pending() int {
	return s.queue.Len()
}

// Stats returns how many tasks ran and how many were dropped as stale.
func (s *Scheduler) Stats() (ran, dropped uint64) {
	return s.ran, s.dropped
}

// Purge discards every queued task whose generation is not current.
func (s *Scheduler) Purge() {
	current := s.gen()
	kept := s.queue[:0]
	for _, t := range s.queue {
		if t.gen == current {
			kept = append(kept, t)
		} else {
			s.dropped++
		}
	}
	for i := len(kept); i < len(s.queue); i++ {
		s.queue[i] = nil
	}
	s.queue = kept
	heap.Init(&s.queue)
}

// timerQueue is a min-heap of timers ordered by due time, then sequence.
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timerQueue) Push(x any) {
	*q = append(*q, x.(*timer))
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
