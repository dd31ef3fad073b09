package nav

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLayout is returned for a layout name or value outside the
// known set.
var ErrUnknownLayout = errors.New("unknown layout mode")

// Layout controls how many slides are on screen and how far a step moves.
type Layout int

const (
	Single Layout = iota
	ChunkTwo
	SlidingWindow
)

var layoutNames = map[Layout]string{
	Single:        "single",
	ChunkTwo:      "chunk-two",
	SlidingWindow: "sliding-window",
}

// String returns the name used in config and on the control panel.
func (l Layout) String() string {
	if name, ok := layoutNames[l]; ok {
		return name
	}
	return fmt.Sprintf("layout(%d)", int(l))
}

// Valid reports whether l is one of the defined layouts.
func (l Layout) Valid() bool {
	_, ok := layoutNames[l]
	return ok
}

// Next cycles Single -> ChunkTwo -> SlidingWindow -> Single.
func (l Layout) Next() Layout {
	switch l {
	case Single:
		return ChunkTwo
	case ChunkTwo:
		return SlidingWindow
	default:
		return Single
	}
}

// ParseLayout accepts the names produced by String, plus a few aliases.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "":
		return Single, nil
	case "chunk-two", "chunk", "chunk2", "two":
		return ChunkTwo, nil
	case "sliding-window", "sliding", "window":
		return SlidingWindow, nil
	}
	return Single, fmt.Errorf("%w: %q", ErrUnknownLayout, s)
}

// StepSize is the distance one advance or retreat moves under l.
func StepSize(l Layout) int {
	switch l {
	case ChunkTwo:
		return 2
	case Single, SlidingWindow:
		return 1
	default:
		return 1
	}
}
