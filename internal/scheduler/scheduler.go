// Package scheduler runs scene tasks against a virtual clock.
//
// Every deferred action in the scene (element removal, hint removal, the
// repeating gust timer) is a task with a due time. The owner advances the
// clock explicitly: the UI by real frame deltas, tests by exact amounts.
package scheduler

import (
	"container/heap"
	"time"
)

// ID identifies a scheduled task
type ID uint64

type task struct {
	id     ID
	due    time.Duration
	seq    uint64 // insertion order, breaks due-time ties
	period time.Duration
	fn     func()
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due == q[j].due {
		return q[i].seq < q[j].seq
	}
	return q[i].due < q[j].due
}

func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *taskQueue) Push(x any) { *q = append(*q, x.(*task)) }

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}

// Scheduler is a single-threaded virtual-time task queue. It is not safe
// for concurrent use; the owning goroutine drives it.
type Scheduler struct {
	now     time.Duration
	queue   taskQueue
	live    map[ID]*task
	nextID  ID
	nextSeq uint64
}

// New creates a scheduler at virtual time zero
func New() *Scheduler {
	return &Scheduler{live: make(map[ID]*task)}
}

// Now returns the virtual time elapsed since the scheduler was created
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once, d from now
func (s *Scheduler) After(d time.Duration, fn func()) ID {
	return s.schedule(d, 0, fn)
}

// Every schedules fn to run every period, first at now+period.
// A non-positive period is treated as one nanosecond.
func (s *Scheduler) Every(period time.Duration, fn func()) ID {
	if period <= 0 {
		period = 1
	}
	return s.schedule(period, period, fn)
}

func (s *Scheduler) schedule(d, period time.Duration, fn func()) ID {
	if d < 0 {
		d = 0
	}
	s.nextID++
	s.nextSeq++
	t := &task{
		id:     s.nextID,
		due:    s.now + d,
		seq:    s.nextSeq,
		period: period,
		fn:     fn,
	}
	s.live[t.id] = t
	heap.Push(&s.queue, t)
	return t.id
}

// Cancel drops a pending task. Unknown or finished IDs are ignored.
func (s *Scheduler) Cancel(id ID) {
	delete(s.live, id)
}

// Pending reports how many tasks are still scheduled
func (s *Scheduler) Pending() int {
	return len(s.live)
}

// Advance moves the clock forward by d, running every task that falls due
// in order. The clock reads each task's due time while it runs, so tasks
// scheduled from inside a callback are timed relative to their parent.
func (s *Scheduler) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	target := s.now + d

	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.due > target {
			break
		}
		heap.Pop(&s.queue)

		if _, ok := s.live[next.id]; !ok {
			continue
		}
		s.now = next.due

		if next.period == 0 {
			delete(s.live, next.id)
			next.fn()
			continue
		}

		next.fn()
		// fn may have cancelled its own timer
		if _, ok := s.live[next.id]; ok {
			s.nextSeq++
			next.due += next.period
			next.seq = s.nextSeq
			heap.Push(&s.queue, next)
		}
	}

	s.now = target
}
