package autoplay

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	steps   []Direction
	blocked bool
}

func newTestScheduler(t *testing.T, clock *ManualClock, rec *recorder) *Scheduler {
	t.Helper()
	s, err := New(Config{
		Clock:    clock,
		Executor: Inline{},
		Step:     func(d Direction) { rec.steps = append(rec.steps, d) },
		Blocked:  func() bool { return rec.blocked },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestStartFiresEachInterval(t *testing.T) {
	clock := &ManualClock{}
	rec := &recorder{}
	s := newTestScheduler(t, clock, rec)

	if err := s.Start(2*time.Second, Forward); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !s.Active() {
		t.Fatal("expected active")
	}
	clock.Advance(1 * time.Second)
	if len(rec.steps) != 0 {
		t.Fatalf("fired early: %v", rec.steps)
	}
	clock.Advance(5 * time.Second)
	if len(rec.steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(rec.steps))
	}
	if clock.Pending() != 1 {
		t.Errorf("pending = %d, want 1", clock.Pending())
	}
}

func TestStartTwiceFails(t *testing.T) {
	s := newTestScheduler(t, &ManualClock{}, &recorder{})
	if err := s.Start(time.Second, Forward); err != nil {
		t.Fatal(err)
	}
	if err := s.Start(time.Second, Forward); !errors.Is(err, ErrAlreadyActive) {
		t.Errorf("second Start = %v, want ErrAlreadyActive", err)
	}
}

func TestStartRejectsBadInterval(t *testing.T) {
	s := newTestScheduler(t, &ManualClock{}, &recorder{})
	if err := s.Start(0, Forward); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("Start(0) = %v", err)
	}
	if s.Active() {
		t.Error("should not be active")
	}
	if err := s.SetInterval(-time.Second); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("SetInterval(-1s) = %v", err)
	}
}

func TestStopBeforeFirstFiring(t *testing.T) {
	clock := &ManualClock{}
	rec := &recorder{}
	s := newTestScheduler(t, clock, rec)
	if err := s.Start(time.Second, Forward); err != nil {
		t.Fatal(err)
	}
	s.Stop()
	s.Stop()
	clock.Advance(10 * time.Second)
	if len(rec.steps) != 0 {
		t.Errorf("steps after stop: %v", rec.steps)
	}
	if s.Active() || clock.Pending() != 0 {
		t.Error("scheduler should be fully stopped")
	}
}

func TestBlockedFiringsAreDropped(t *testing.T) {
	clock := &ManualClock{}
	rec := &recorder{blocked: true}
	s := newTestScheduler(t, clock, rec)
	if err := s.Start(time.Second, Forward); err != nil {
		t.Fatal(err)
	}
	clock.Advance(3 * time.Second)
	if len(rec.steps) != 0 {
		t.Fatalf("fired while blocked: %v", rec.steps)
	}
	rec.blocked = false
	clock.Advance(time.Second)
	if len(rec.steps) != 1 {
		t.Errorf("steps = %d, want 1 (no backlog)", len(rec.steps))
	}
}

func TestSetIntervalReschedules(t *testing.T) {
	clock := &ManualClock{}
	rec := &recorder{}
	s := newTestScheduler(t, clock, rec)
	if err := s.Start(10*time.Second, Reverse); err != nil {
		t.Fatal(err)
	}
	clock.Advance(5 * time.Second)
	if err := s.SetInterval(time.Second); err != nil {
		t.Fatal(err)
	}
	clock.Advance(time.Second)
	if len(rec.steps) != 1 || rec.steps[0] != Reverse {
		t.Errorf("steps = %v, want [reverse]", rec.steps)
	}
	if clock.Pending() != 1 {
		t.Errorf("pending = %d, want 1", clock.Pending())
	}
}

func TestSetIntervalWhileStopped(t *testing.T) {
	clock := &ManualClock{}
	s := newTestScheduler(t, clock, &recorder{})
	if err := s.SetInterval(3 * time.Second); err != nil {
		t.Fatal(err)
	}
	if s.Active() || clock.Pending() != 0 {
		t.Error("SetInterval must not start the scheduler")
	}
	if s.Interval() != 3*time.Second {
		t.Errorf("interval = %s", s.Interval())
	}
}

func TestToggleDirectionNextFiring(t *testing.T) {
	clock := &ManualClock{}
	rec := &recorder{}
	s := newTestScheduler(t, clock, rec)
	if err := s.Start(time.Second, Forward); err != nil {
		t.Fatal(err)
	}
	clock.Advance(time.Second)
	s.ToggleDirection()
	clock.Advance(time.Second)
	if len(rec.steps) != 2 || rec.steps[0] != Forward || rec.steps[1] != Reverse {
		t.Errorf("steps = %v", rec.steps)
	}
}

func TestStepCanStopScheduler(t *testing.T) {
	clock := &ManualClock{}
	var s *Scheduler
	fired := 0
	s, err := New(Config{
		Clock: clock,
		Step: func(Direction) {
			fired++
			s.Stop()
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Start(time.Second, Forward); err != nil {
		t.Fatal(err)
	}
	clock.Advance(5 * time.Second)
	if fired != 1 || s.Active() {
		t.Errorf("fired = %d active = %v", fired, s.Active())
	}
}

func TestStalePostedFiringIgnored(t *testing.T) {
	clock := &ManualClock{}
	var queued []func()
	rec := &recorder{}
	s, err := New(Config{
		Clock:    clock,
		Executor: postFunc(func(fn func()) { queued = append(queued, fn) }),
		Step:     func(d Direction) { rec.steps = append(rec.steps, d) },
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Start(time.Second, Forward); err != nil {
		t.Fatal(err)
	}
	clock.Advance(time.Second)
	if len(queued) != 1 {
		t.Fatalf("queued = %d", len(queued))
	}
	s.Stop()
	queued[0]()
	if len(rec.steps) != 0 {
		t.Errorf("stale firing ran: %v", rec.steps)
	}
}

type postFunc func(func())

func (p postFunc) Post(fn func()) { p(fn) }

func TestLoopSerializes(t *testing.T) {
	l := NewLoop()
	defer l.Close()

	var mu sync.Mutex
	running, overlap := 0, false
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go l.Post(func() {
			defer wg.Done()
			mu.Lock()
			running++
			if running > 1 {
				overlap = true
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			running--
			mu.Unlock()
		})
	}
	wg.Wait()
	if overlap {
		t.Error("posted functions overlapped")
	}

	ran := false
	if !l.Do(func() { ran = true }) || !ran {
		t.Error("Do did not run")
	}
}

func TestLoopPostAfterClose(t *testing.T) {
	l := NewLoop()
	l.Close()
	l.Close()
	l.Post(func() { t.Error("ran after close") })
	if l.Do(func() {}) {
		t.Error("Do after close should report false")
	}
}
