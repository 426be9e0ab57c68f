// Package sched implements a single-threaded, cooperative run loop with
// cancellable timers. All scheduled work executes from Pump, so callers that
// pump from one goroutine never need locking in their callbacks.
package sched

import (
	"container/heap"
	"sync"
	"time"
)

// Loop is a cooperative event loop: a FIFO run queue plus a timer heap.
// Callbacks only ever execute during Pump.
type Loop struct {
	mu     sync.Mutex
	clock  Clock
	queue  []func()
	timers timerHeap
	seq    uint64
}

// New creates a loop driven by the given clock.
func New(clock Clock) *Loop {
	return &Loop{clock: clock}
}

// Clock returns the clock the loop schedules against.
func (l *Loop) Clock() Clock {
	return l.clock
}

// Post enqueues fn to run on the next Pump.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queue = append(l.queue, fn)
}

// NextTick schedules fn to run on the next scheduling tick. Unlike Post, the
// returned timer can be cancelled before it fires.
func (l *Loop) NextTick(fn func()) *Timer {
	return l.After(0, fn)
}

// After schedules fn to run once d has elapsed. The returned timer can be
// cancelled with Stop while still pending.
func (l *Loop) After(d time.Duration, fn func()) *Timer {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	t := &Timer{
		loop: l,
		fn:   fn,
		due:  l.clock.Now().Add(d),
		seq:  l.seq,
	}
	heap.Push(&l.timers, t)
	return t
}

// Pump runs queued callbacks and due timers until neither has work left,
// and returns the number of callbacks executed. Work scheduled by a running
// callback is picked up within the same Pump once it is due.
func (l *Loop) Pump() int {
	ran := 0
	for {
		fn := l.next()
		if fn == nil {
			return ran
		}
		fn()
		ran++
	}
}

// PumpFor advances a manual clock through d, pumping at every timer due
// point along the way, so multi-step transitions settle in a single call.
// The clock ends up exactly d past where it started.
func (l *Loop) PumpFor(clock *Manual, d time.Duration) int {
	deadline := clock.Now().Add(d)
	ran := l.Pump()

	for {
		due, ok := l.NextDue()
		if !ok || due.After(deadline) {
			break
		}
		if due.After(clock.Now()) {
			clock.Advance(due.Sub(clock.Now()))
		}
		ran += l.Pump()
	}

	if deadline.After(clock.Now()) {
		clock.Advance(deadline.Sub(clock.Now()))
	}
	return ran + l.Pump()
}

// Pending reports whether any queued callback or timer (due or not) exists.
func (l *Loop) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue) > 0 || l.timers.Len() > 0
}

// NextDue returns the due time of the earliest pending timer. The second
// return is false when no timer is pending.
func (l *Loop) NextDue() (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.timers.Len() == 0 {
		return time.Time{}, false
	}
	return l.timers[0].due, true
}

// next pops one runnable callback: queued work first, then the earliest due
// timer. Returns nil when nothing is runnable right now.
func (l *Loop) next() func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.queue) > 0 {
		fn := l.queue[0]
		l.queue = l.queue[1:]
		return fn
	}

	now := l.clock.Now()
	for l.timers.Len() > 0 {
		t := l.timers[0]
		if t.stopped {
			heap.Pop(&l.timers)
			continue
		}
		if t.due.After(now) {
			return nil
		}
		heap.Pop(&l.timers)
		t.fired = true
		return t.fn
	}
	return nil
}

// Timer is a handle to a pending callback.
type Timer struct {
	loop    *Loop
	fn      func()
	due     time.Time
	seq     uint64
	index   int
	stopped bool
	fired   bool
}

// Stop cancels the timer. It reports whether the cancellation took effect;
// false means the callback already ran or the timer was already stopped.
func (t *Timer) Stop() bool {
	t.loop.mu.Lock()
	defer t.loop.mu.Unlock()

	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// timerHeap orders timers by due time, then by scheduling order.
type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*Timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
