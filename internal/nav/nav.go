// Package nav holds the current position within a deck and the index
// arithmetic for moving through it.
package nav

import "slidedeck/internal/catalog"

// State is the navigation position over a fixed SlideSet.
//
// The index always satisfies 0 <= index < Len() for a non-empty set.
type State struct {
	slides catalog.SlideSet
	index  int

	Wrap   bool
	Layout Layout
}

// New creates a State at index 0.
func New(slides catalog.SlideSet, wrap bool, layout Layout) *State {
	return &State{slides: slides, Wrap: wrap, Layout: layout}
}

// Slides is the deck being navigated.
func (s *State) Slides() catalog.SlideSet { return s.slides }

// Len is the number of slides.
func (s *State) Len() int { return s.slides.Len() }

// Index is the current position.
func (s *State) Index() int { return s.index }

// Current returns the path of the current slide.
func (s *State) Current() (string, bool) {
	if s.slides.Len() == 0 {
		return "", false
	}
	return s.slides.At(s.index), true
}

// offset applies delta to the current index under the wrap policy.
func (s *State) offset(delta int) (int, bool) {
	n := s.slides.Len()
	if n == 0 {
		return 0, false
	}
	idx := s.index + delta
	if s.Wrap {
		return ((idx % n) + n) % n, true
	}
	if idx < 0 || idx >= n {
		return 0, false
	}
	return idx, true
}

// NextIndex is the index an advance would move to, if any.
func (s *State) NextIndex() (int, bool) {
	return s.offset(StepSize(s.Layout))
}

// PrevIndex is the index a retreat would move to, if any.
func (s *State) PrevIndex() (int, bool) {
	return s.offset(-StepSize(s.Layout))
}

// PeekIndex looks ahead by a raw slide count, ignoring the layout step.
func (s *State) PeekIndex(offset int) (int, bool) {
	return s.offset(offset)
}

// Peek returns the slide path at PeekIndex(offset).
func (s *State) Peek(offset int) (string, bool) {
	i, ok := s.PeekIndex(offset)
	if !ok {
		return "", false
	}
	return s.slides.At(i), true
}

// Advance moves forward one step and reports whether a next index existed.
// At the end of a non-wrapping deck it does nothing.
func (s *State) Advance() bool {
	i, ok := s.NextIndex()
	if !ok {
		return false
	}
	s.index = i
	return true
}

// Retreat moves back one step, doing nothing at the start of a
// non-wrapping deck.
func (s *State) Retreat() bool {
	i, ok := s.PrevIndex()
	if !ok {
		return false
	}
	s.index = i
	return true
}

// GoTo jumps to index i. Out-of-range indices are ignored.
func (s *State) GoTo(i int) bool {
	if i < 0 || i >= s.slides.Len() {
		return false
	}
	s.index = i
	return true
}

// First jumps to index 0.
func (s *State) First() bool { return s.GoTo(0) }

// Last jumps to the final index.
func (s *State) Last() bool { return s.GoTo(s.slides.Len() - 1) }
