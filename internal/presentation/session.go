// Package presentation ties a slide catalog, navigation state and autoplay
// scheduler into one session and drives the renderer and control panel.
//
// A Session is owned by a single goroutine. Every method must be called
// from it, and the session's Executor must run posted functions there too;
// that is how autoplay firings are serialized with user actions.
package presentation

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"slidedeck/internal/autoplay"
	"slidedeck/internal/catalog"
	"slidedeck/internal/logging"
	"slidedeck/internal/nav"
)

// ErrClosed is returned by operations on a closed session.
var ErrClosed = errors.New("presentation closed")

// Renderer displays frames. Release frees whatever the renderer owns; the
// session calls it exactly once.
type Renderer interface {
	Show(Frame) error
	Release() error
}

// ControlPanel reflects session settings.
type ControlPanel interface {
	Refresh(Status)
}

// Options configure a new Session.
type Options struct {
	Settings Settings
	// Autoplay starts the scheduler as soon as the session opens.
	Autoplay    bool
	NotesSuffix string

	Renderer  Renderer
	Panel     ControlPanel
	Inspector Inspector
	Clock     autoplay.Clock
	Executor  autoplay.Executor
}

// Session is one running presentation.
type Session struct {
	id          uuid.UUID
	nav         *nav.State
	auto        *autoplay.Scheduler
	settings    Settings
	notesSuffix string

	renderer  Renderer
	panel     ControlPanel
	inspector Inspector
	hooks     []func()

	frame     Frame
	prompting bool
	closed    bool
	closeOnce sync.Once
	closeErr  error
}

// Start opens a session at the first slide and renders it.
func Start(slides catalog.SlideSet, opts Options) (*Session, error) {
	if slides.Len() == 0 {
		return nil, catalog.ErrEmptyCatalog
	}
	set := opts.Settings
	if set.Interval == 0 {
		set.Interval = autoplay.DefaultInterval
	}
	if set.Interval < 0 {
		return nil, fmt.Errorf("%w: %s", autoplay.ErrInvalidInterval, set.Interval)
	}
	if !set.Layout.Valid() {
		return nil, &InvalidModeError{Layout: set.Layout}
	}

	s := &Session{
		id:          uuid.New(),
		nav:         nav.New(slides, set.Wrap, set.Layout),
		settings:    set,
		notesSuffix: opts.NotesSuffix,
		renderer:    opts.Renderer,
		panel:       opts.Panel,
		inspector:   opts.Inspector,
	}
	if s.renderer == nil {
		s.renderer = nopRenderer{}
	}
	if s.inspector == nil {
		s.inspector = noInspector{}
	}

	auto, err := autoplay.New(autoplay.Config{
		Clock:    opts.Clock,
		Executor: opts.Executor,
		Step:     s.step,
		Blocked:  s.Prompting,
		Interval: set.Interval,
	})
	if err != nil {
		return nil, err
	}
	auto.SetDirection(set.direction())
	s.auto = auto

	if err := s.render(); err != nil {
		s.abort()
		return nil, err
	}
	log.Printf("INFO: session %s started with %d slides", s.id, slides.Len())

	if opts.Autoplay {
		if err := s.StartAutoplay(); err != nil {
			s.abort()
			return nil, err
		}
	} else {
		s.refresh()
	}
	return s, nil
}

// abort tears down a session that failed to start.
func (s *Session) abort() {
	if err := s.Close(); err != nil {
		log.Printf("WARN: release after failed start: %v", err)
	}
}

// ID is the session's UUID, used to tell sessions apart in logs.
func (s *Session) ID() string { return s.id.String() }

// Frame returns the last frame handed to the renderer.
func (s *Session) Frame() Frame { return s.frame }

// Slides is the deck being presented.
func (s *Session) Slides() catalog.SlideSet { return s.nav.Slides() }

// Settings reports the current value of every user-adjustable setting.
func (s *Session) Settings() Settings {
	set := s.settings
	set.Wrap = s.nav.Wrap
	set.Layout = s.nav.Layout
	set.Interval = s.auto.Interval()
	set.Reverse = s.auto.Direction() == autoplay.Reverse
	return set
}

// Status is the snapshot the control panel receives.
func (s *Session) Status() Status {
	current, _ := s.nav.Current()
	return Status{
		SessionID: s.ID(),
		Index:     s.nav.Index(),
		Count:     s.nav.Len(),
		Slide:     current,
		Settings:  s.Settings(),
		Autoplay:  s.auto.Active(),
		Prompting: s.prompting,
	}
}

// OnRendered registers a hook run once after every slide render.
func (s *Session) OnRendered(fn func()) {
	s.hooks = append(s.hooks, fn)
}

func (s *Session) render() error {
	f, err := compose(s.nav, s.Settings(), s.inspector, s.notesSuffix)
	if err != nil {
		return err
	}
	if err := s.renderer.Show(f); err != nil {
		return fmt.Errorf("render %s: %w", f.Slide, err)
	}
	s.frame = f
	for _, fn := range s.hooks {
		fn()
	}
	return nil
}

func (s *Session) refresh() {
	if s.panel != nil {
		s.panel.Refresh(s.Status())
	}
}

// commit re-renders after a state change. If the renderer rejects the
// frame, undo restores the previous state so the session keeps describing
// what is on screen. The control panel is refreshed either way.
func (s *Session) commit(undo func()) error {
	err := s.render()
	if err != nil && undo != nil {
		undo()
	}
	s.refresh()
	return err
}

// move applies a navigation step and re-renders if a target existed. A
// failed render leaves the index where it was.
func (s *Session) move(fn func() bool) (bool, error) {
	if s.closed {
		return false, ErrClosed
	}
	prev := s.nav.Index()
	if !fn() {
		return false, nil
	}
	if err := s.commit(func() { s.nav.GoTo(prev) }); err != nil {
		return false, err
	}
	return true, nil
}

// Next advances one layout step. At the end of a non-wrapping show it
// returns false and changes nothing.
func (s *Session) Next() (bool, error) { return s.move(s.nav.Advance) }

// Prev retreats one layout step; at the start of a non-wrapping show it
// is a no-op.
func (s *Session) Prev() (bool, error) { return s.move(s.nav.Retreat) }

// First jumps to the first slide.
func (s *Session) First() (bool, error) { return s.move(s.nav.First) }

// Last jumps to the last slide.
func (s *Session) Last() (bool, error) { return s.move(s.nav.Last) }

// GoTo jumps to slide i. Out-of-range indices report false.
func (s *Session) GoTo(i int) (bool, error) { return s.move(func() bool { return s.nav.GoTo(i) }) }

func (s *Session) step(d autoplay.Direction) {
	var err error
	if d == autoplay.Reverse {
		_, err = s.Prev()
	} else {
		_, err = s.Next()
	}
	if err != nil {
		log.Printf("ERROR: autoplay step: %v", err)
	}
}

// SetWrap turns wrap-around at either end of the deck on or off.
func (s *Session) SetWrap(on bool) error {
	if s.closed {
		return ErrClosed
	}
	prev := s.nav.Wrap
	s.nav.Wrap = on
	return s.commit(func() { s.nav.Wrap = prev })
}

// SetPreview shows or hides the look-ahead preview.
func (s *Session) SetPreview(on bool) error {
	if s.closed {
		return ErrClosed
	}
	prev := s.settings.Preview
	s.settings.Preview = on
	return s.commit(func() { s.settings.Preview = prev })
}

// SetAtomicLandscape controls whether a landscape image hides its partner
// in the sliding-window layout.
func (s *Session) SetAtomicLandscape(on bool) error {
	if s.closed {
		return ErrClosed
	}
	prev := s.settings.AtomicLandscape
	s.settings.AtomicLandscape = on
	return s.commit(func() { s.settings.AtomicLandscape = prev })
}

// SetLayout switches layout without touching the current index. An
// unknown layout is rejected and the session keeps its previous one.
func (s *Session) SetLayout(l nav.Layout) error {
	if s.closed {
		return ErrClosed
	}
	if !l.Valid() {
		return &InvalidModeError{Layout: l}
	}
	prev := s.nav.Layout
	s.nav.Layout = l
	return s.commit(func() { s.nav.Layout = prev })
}

// CycleLayout switches to the next layout in Single, ChunkTwo, SlidingWindow order.
func (s *Session) CycleLayout() error {
	return s.SetLayout(s.nav.Layout.Next())
}

// SetInterval sets the autoplay period in seconds.
func (s *Session) SetInterval(seconds float64) error {
	if s.closed {
		return ErrClosed
	}
	d := time.Duration(seconds * float64(time.Second))
	if err := s.auto.SetInterval(d); err != nil {
		return err
	}
	s.settings.Interval = d
	log.Printf("INFO: autoplay interval set to %s", d)
	s.refresh()
	return nil
}

// SetReverse sets the autoplay direction from the next firing on.
func (s *Session) SetReverse(on bool) error {
	if s.closed {
		return ErrClosed
	}
	dir := autoplay.Forward
	if on {
		dir = autoplay.Reverse
	}
	s.auto.SetDirection(dir)
	s.settings.Reverse = on
	s.refresh()
	return nil
}

// ToggleDirection flips the autoplay direction.
func (s *Session) ToggleDirection() error {
	return s.SetReverse(s.auto.Direction() == autoplay.Forward)
}

// Autoplaying reports whether the autoplay scheduler is running.
func (s *Session) Autoplaying() bool { return s.auto.Active() }

// StartAutoplay starts firing at the current interval and direction.
func (s *Session) StartAutoplay() error {
	if s.closed {
		return ErrClosed
	}
	if err := s.auto.Start(s.auto.Interval(), s.auto.Direction()); err != nil {
		return err
	}
	log.Printf("INFO: autoplay started (%s, %s)", s.auto.Interval(), s.auto.Direction())
	s.refresh()
	return nil
}

// StopAutoplay cancels the pending firing. It does nothing when stopped.
func (s *Session) StopAutoplay() {
	if !s.auto.Active() {
		return
	}
	s.auto.Stop()
	log.Printf("INFO: autoplay stopped")
	s.refresh()
}

// ToggleAutoplay starts or stops autoplay and reports whether it is now on.
func (s *Session) ToggleAutoplay() (bool, error) {
	if s.auto.Active() {
		s.StopAutoplay()
		return false, nil
	}
	if err := s.StartAutoplay(); err != nil {
		return false, err
	}
	return true, nil
}

// BeginPrompt marks a synchronous prompt as open. Autoplay firings are
// dropped until EndPrompt.
func (s *Session) BeginPrompt() {
	s.prompting = true
	s.refresh()
}

// EndPrompt lets autoplay firings through again.
func (s *Session) EndPrompt() {
	s.prompting = false
	s.refresh()
}

// Prompting reports whether a prompt is open.
func (s *Session) Prompting() bool { return s.prompting }

// Restart replaces the slide set, e.g. after the deck changed on disk.
// The current slide is kept when it still exists; otherwise the show
// restarts at index 0. An empty set is rejected and the old show stays.
func (s *Session) Restart(slides catalog.SlideSet) error {
	if s.closed {
		return ErrClosed
	}
	if slides.Len() == 0 {
		return catalog.ErrEmptyCatalog
	}
	current, _ := s.nav.Current()
	next := nav.New(slides, s.nav.Wrap, s.nav.Layout)
	if i, ok := slides.Index(current); ok {
		next.GoTo(i)
	}
	prev := s.nav
	s.nav = next
	if err := s.commit(func() { s.nav = prev }); err != nil {
		return err
	}
	logging.Debug("session %s restarted with %d slides at %d", s.id, slides.Len(), next.Index())
	return nil
}

// Close stops autoplay and then releases the renderer. It is safe to call
// more than once; later calls return the first result.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.auto.Stop()
		s.closed = true
		s.closeErr = s.renderer.Release()
		log.Printf("INFO: session %s closed", s.id)
	})
	return s.closeErr
}

// Closed reports whether Close has run.
func (s *Session) Closed() bool { return s.closed }

type nopRenderer struct{}

func (nopRenderer) Show(Frame) error { return nil }
func (nopRenderer) Release() error   { return nil }
