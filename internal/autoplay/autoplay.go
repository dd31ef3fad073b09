// Package autoplay advances a presentation on a fixed interval.
//
// A Scheduler is not safe for concurrent use. Its methods and its step
// callback all run on the goroutine that owns the presentation; timer
// expiry is handed to that goroutine through an Executor, so a firing never
// overlaps another firing or any other navigation call.
package autoplay

import (
	"errors"
	"fmt"
	"time"

	"slidedeck/internal/logging"
)

var (
	ErrAlreadyActive   = errors.New("autoplay already running")
	ErrInvalidInterval = errors.New("autoplay interval must be positive")
)

// Direction is the way each firing moves through the deck.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// Config wires a Scheduler to its host.
type Config struct {
	Clock    Clock
	Executor Executor
	// Step moves the presentation one step in the given direction.
	Step func(Direction)
	// Blocked reports whether a synchronous prompt is open. Firings that
	// land while it returns true are dropped, not queued.
	Blocked func() bool
	// Interval is used by the next Start. Zero means DefaultInterval.
	Interval time.Duration
}

// DefaultInterval is used when no interval is configured.
const DefaultInterval = 5 * time.Second

// Scheduler is a cancellable periodic trigger. Handle is non-nil exactly
// while the scheduler is active.
type Scheduler struct {
	clock    Clock
	exec     Executor
	step     func(Direction)
	blocked  func() bool
	interval time.Duration
	dir      Direction

	handle Timer
	// gen invalidates firings that were already posted when the
	// scheduler was stopped or rescheduled.
	gen uint64
}

// New returns a stopped Scheduler. Missing Clock, Executor and Blocked
// default to RealClock, Inline and never blocked.
func New(cfg Config) (*Scheduler, error) {
	if cfg.Step == nil {
		return nil, errors.New("autoplay: step callback required")
	}
	if cfg.Interval < 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, cfg.Interval)
	}
	s := &Scheduler{
		clock:    cfg.Clock,
		exec:     cfg.Executor,
		step:     cfg.Step,
		blocked:  cfg.Blocked,
		interval: cfg.Interval,
	}
	if s.clock == nil {
		s.clock = RealClock{}
	}
	if s.exec == nil {
		s.exec = Inline{}
	}
	if s.blocked == nil {
		s.blocked = func() bool { return false }
	}
	if s.interval == 0 {
		s.interval = DefaultInterval
	}
	return s, nil
}

// Active reports whether a firing is scheduled.
func (s *Scheduler) Active() bool { return s.handle != nil }

// Interval is the period used by the running or next schedule.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Direction is the way the next firing will step.
func (s *Scheduler) Direction() Direction { return s.dir }

// SetDirection sets the direction without restarting.
func (s *Scheduler) SetDirection(d Direction) { s.dir = d }

// Start begins firing every interval in direction dir.
func (s *Scheduler) Start(interval time.Duration, dir Direction) error {
	if s.Active() {
		return ErrAlreadyActive
	}
	if interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}
	s.interval = interval
	s.dir = dir
	s.schedule()
	return nil
}

// Stop cancels the pending firing. Calling it while stopped does nothing.
func (s *Scheduler) Stop() {
	if s.handle == nil {
		return
	}
	s.handle.Stop()
	s.handle = nil
	s.gen++
}

// SetInterval changes the period. An active scheduler is cancelled and
// rescheduled with the new interval, keeping its direction.
func (s *Scheduler) SetInterval(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}
	s.interval = interval
	if s.Active() {
		s.Stop()
		s.schedule()
	}
	return nil
}

// ToggleDirection flips the direction used from the next firing on.
func (s *Scheduler) ToggleDirection() Direction {
	if s.dir == Forward {
		s.dir = Reverse
	} else {
		s.dir = Forward
	}
	return s.dir
}

func (s *Scheduler) schedule() {
	gen := s.gen
	s.handle = s.clock.AfterFunc(s.interval, func() {
		s.exec.Post(func() { s.fire(gen) })
	})
}

func (s *Scheduler) fire(gen uint64) {
	if gen != s.gen || s.handle == nil {
		return
	}
	if s.blocked() {
		logging.Debug("autoplay: firing skipped, prompt open")
	} else {
		s.step(s.dir)
	}
	// step may have stopped or restarted the scheduler
	if gen != s.gen || s.handle == nil {
		return
	}
	s.schedule()
}
