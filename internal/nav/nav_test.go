package nav

import (
	"errors"
	"fmt"
	"testing"

	"slidedeck/internal/catalog"
)

func deck(n int) catalog.SlideSet {
	paths := make([]string, n)
	for i := range paths {
		paths[i] = fmt.Sprintf("s%02d.md", i)
	}
	return catalog.NewSlideSet(paths...)
}

func TestStepSize(t *testing.T) {
	if got := StepSize(Single); got != 1 {
		t.Errorf("Single step = %d", got)
	}
	if got := StepSize(ChunkTwo); got != 2 {
		t.Errorf("ChunkTwo step = %d", got)
	}
	if got := StepSize(SlidingWindow); got != 1 {
		t.Errorf("SlidingWindow step = %d", got)
	}
}

func TestWrapAroundReturnsHome(t *testing.T) {
	for n := 1; n <= 7; n++ {
		for _, layout := range []Layout{Single, SlidingWindow} {
			for start := 0; start < n; start++ {
				s := New(deck(n), true, layout)
				s.GoTo(start)
				for i := 0; i < n; i++ {
					s.Advance()
				}
				if s.Index() != start {
					t.Errorf("n=%d layout=%s start=%d: ended at %d", n, layout, start, s.Index())
				}
			}
		}
	}
}

func TestBoundaryNoOps(t *testing.T) {
	for _, layout := range []Layout{Single, ChunkTwo, SlidingWindow} {
		s := New(deck(4), false, layout)
		if s.Retreat() {
			t.Errorf("%s: retreat at 0 should be a no-op", layout)
		}
		if s.Index() != 0 {
			t.Errorf("%s: index moved to %d", layout, s.Index())
		}
		s.Last()
		if s.Advance() {
			t.Errorf("%s: advance at end should be a no-op", layout)
		}
		if s.Index() != 3 {
			t.Errorf("%s: index moved to %d", layout, s.Index())
		}
	}
}

func TestChunkTwoVisits(t *testing.T) {
	s := New(deck(5), false, ChunkTwo)
	visited := []int{s.Index()}
	for i := 0; i < 4; i++ {
		if s.Advance() {
			visited = append(visited, s.Index())
		}
	}
	want := []int{0, 2, 4}
	if fmt.Sprint(visited) != fmt.Sprint(want) {
		t.Errorf("visited %v, want %v", visited, want)
	}
}

func TestScenarios(t *testing.T) {
	t.Run("wrap single from last", func(t *testing.T) {
		s := New(catalog.NewSlideSet("a", "b", "c"), true, Single)
		s.GoTo(2)
		s.Advance()
		if s.Index() != 0 {
			t.Errorf("index = %d, want 0", s.Index())
		}
	})
	t.Run("chunk-two no next at penultimate", func(t *testing.T) {
		s := New(catalog.NewSlideSet("a", "b", "c", "d"), false, ChunkTwo)
		s.GoTo(2)
		if _, ok := s.NextIndex(); ok {
			t.Error("expected no next index")
		}
		s.Advance()
		if s.Index() != 2 {
			t.Errorf("index = %d, want 2", s.Index())
		}
	})
	t.Run("wrap retreat from zero", func(t *testing.T) {
		s := New(catalog.NewSlideSet("a", "b", "c"), true, ChunkTwo)
		i, ok := s.PrevIndex()
		if !ok || i != 1 {
			t.Errorf("PrevIndex = %d,%v want 1,true", i, ok)
		}
	})
}

func TestSingleSlideDeck(t *testing.T) {
	s := New(deck(1), true, Single)
	if i, ok := s.NextIndex(); !ok || i != 0 {
		t.Errorf("wrap NextIndex = %d,%v", i, ok)
	}
	if i, ok := s.PrevIndex(); !ok || i != 0 {
		t.Errorf("wrap PrevIndex = %d,%v", i, ok)
	}

	s.Wrap = false
	if _, ok := s.NextIndex(); ok {
		t.Error("non-wrap NextIndex should be absent")
	}
	if _, ok := s.PrevIndex(); ok {
		t.Error("non-wrap PrevIndex should be absent")
	}
}

func TestPeekIgnoresLayout(t *testing.T) {
	s := New(deck(5), false, ChunkTwo)
	s.GoTo(1)
	for offset, want := range map[int]int{1: 2, 2: 3, 3: 4} {
		if i, ok := s.PeekIndex(offset); !ok || i != want {
			t.Errorf("PeekIndex(%d) = %d,%v want %d", offset, i, ok, want)
		}
	}
	s.GoTo(3)
	if _, ok := s.PeekIndex(2); ok {
		t.Error("PeekIndex past end should be absent")
	}
	s.Wrap = true
	if i, ok := s.PeekIndex(3); !ok || i != 1 {
		t.Errorf("wrapped PeekIndex(3) = %d,%v want 1", i, ok)
	}
}

func TestLayoutChangeKeepsIndex(t *testing.T) {
	s := New(deck(6), false, Single)
	s.GoTo(3)
	s.Layout = ChunkTwo
	if s.Index() != 3 {
		t.Fatalf("index reset to %d", s.Index())
	}
	s.Advance()
	if s.Index() != 5 {
		t.Errorf("index = %d, want 5", s.Index())
	}
}

func TestGoTo(t *testing.T) {
	s := New(deck(3), false, Single)
	if s.GoTo(-1) || s.GoTo(3) {
		t.Error("out of range GoTo should fail")
	}
	if !s.GoTo(2) || s.Index() != 2 {
		t.Error("GoTo(2) failed")
	}
	if p, _ := s.Current(); p != "s02.md" {
		t.Errorf("Current = %q", p)
	}
}

func TestParseLayout(t *testing.T) {
	for _, l := range []Layout{Single, ChunkTwo, SlidingWindow} {
		got, err := ParseLayout(l.String())
		if err != nil || got != l {
			t.Errorf("ParseLayout(%q) = %v, %v", l.String(), got, err)
		}
	}
	if _, err := ParseLayout("grid"); !errors.Is(err, ErrUnknownLayout) {
		t.Errorf("expected ErrUnknownLayout, got %v", err)
	}
	if Layout(9).Valid() {
		t.Error("Layout(9) should be invalid")
	}
	if SlidingWindow.Next() != Single {
		t.Error("layout cycle should wrap to Single")
	}
}
