// Package scheduler drives periodic item refreshes on a single
// cooperative timeline. All task functions run sequentially on the
// Run goroutine; a task can never overlap with itself or with any
// other task.
package scheduler

import (
	"context"
	"sync"
	"time"

	"codeberg.org/ashpool/sysbar/internal/errors"
)

// Clock abstracts the time source so tests can drive the timeline
// with simulated time.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// TaskFunc is one poll-and-update step. It must be bounded: long
// discovery work belongs in the discovery cache, not in a task.
type TaskFunc func()

type task struct {
	name     string
	interval time.Duration
	next     time.Time
	fn       TaskFunc
}

type Scheduler struct {
	clock Clock
	mu    sync.Mutex
	tasks map[string]*task
	order []string
	wake  chan struct{}
}

// New creates a scheduler using the given clock. A nil clock selects
// the wall clock.
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = realClock{}
	}
	return &Scheduler{
		clock: clock,
		tasks: make(map[string]*task),
		wake:  make(chan struct{}, 1),
	}
}

// Register schedules fn to run every interval, first firing one
// interval from now. Names must be unique.
func (s *Scheduler) Register(name string, interval time.Duration, fn TaskFunc) error {
	errFactory := errors.New()
	if interval <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, interval)
	}
	if fn == nil {
		return errFactory.WithMessage(errors.ErrInvalidArgument, "nil task function")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tasks[name]; exists {
		return errFactory.WithData(errors.ErrDuplicateTask, name)
	}
	s.tasks[name] = &task{
		name:     name,
		interval: interval,
		next:     s.clock.Now().Add(interval),
		fn:       fn,
	}
	s.order = append(s.order, name)
	s.notify()

	return nil
}

// Deregister cancels a pending task. Deregistering an unknown or
// already removed task is a no-op.
func (s *Scheduler) Deregister(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tasks[name]; !exists {
		return
	}
	delete(s.tasks, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.notify()
}

// Tick runs every task whose deadline has elapsed at now, once per
// elapsed interval, and reschedules each unconditionally. It returns
// the number of task invocations.
func (s *Scheduler) Tick(now time.Time) int {
	invocations := 0
	for {
		fn := s.takeDue(now)
		if fn == nil {
			return invocations
		}
		fn()
		invocations++
	}
}

// takeDue picks one due task, advances its deadline by one interval
// and returns its function. The function runs outside the lock so
// tasks may register or deregister from within their own body.
func (s *Scheduler) takeDue(now time.Time) TaskFunc {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range s.order {
		t := s.tasks[name]
		if t != nil && !t.next.After(now) {
			t.next = t.next.Add(t.interval)
			return t.fn
		}
	}
	return nil
}

func (s *Scheduler) nextDeadline() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var earliest time.Time
	found := false
	for _, t := range s.tasks {
		if !found || t.next.Before(earliest) {
			earliest = t.next
			found = true
		}
	}
	return earliest, found
}

func (s *Scheduler) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Run blocks, firing tasks as their deadlines elapse, until ctx is
// cancelled. Failed polls never stop the timeline: rescheduling is
// unconditional.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		deadline, ok := s.nextDeadline()
		if !ok {
			select {
			case <-ctx.Done():
				return nil
			case <-s.wake:
			}
			continue
		}

		if wait := deadline.Sub(s.clock.Now()); wait > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-s.wake:
				continue
			case <-s.clock.After(wait):
			}
		}

		s.Tick(s.clock.Now())
	}
}
