package presentation

import (
	"fmt"
	"log"

	"slidedeck/internal/catalog"
	"slidedeck/internal/nav"
)

// InvalidModeError is returned when render dispatch meets a layout it does
// not know.
type InvalidModeError struct {
	Layout nav.Layout
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid layout mode %s", e.Layout)
}

func (e *InvalidModeError) Unwrap() error { return nav.ErrUnknownLayout }

// Slot is a slide position that may be empty.
type Slot struct {
	Path string
	OK   bool
}

func slot(path string, ok bool) Slot { return Slot{Path: path, OK: ok} }

// Preview is what the look-ahead window shows.
type Preview struct {
	Enabled bool
	// End is set when there is no next slide; only an end-of-show marker
	// is shown.
	End    bool
	Slides []Slot
}

// Frame is one instruction to the renderer.
type Frame struct {
	Index  int
	Count  int
	Layout nav.Layout
	Slide  string
	// Split is set when the layout shows a second pane. Partner may still
	// be empty, which is drawn as a blank pane.
	Split   bool
	Partner Slot
	// Landscape is set when the current slide suppressed its partner.
	Landscape bool

	Notes    string
	HasNotes bool

	Preview Preview
}

// Inspector classifies slide content.
type Inspector interface {
	Landscape(path string) bool
}

type noInspector struct{}

func (noInspector) Landscape(string) bool { return false }

// compose decides what to show for the current navigation state.
func compose(st *nav.State, set Settings, insp Inspector, notesSuffix string) (Frame, error) {
	current, ok := st.Current()
	if !ok {
		return Frame{}, catalog.ErrEmptyCatalog
	}
	f := Frame{
		Index:  st.Index(),
		Count:  st.Len(),
		Layout: st.Layout,
		Slide:  current,
	}

	step := nav.StepSize(st.Layout)
	switch st.Layout {
	case nav.Single:
		f.Preview = singlePreview(st, step)
	case nav.ChunkTwo:
		f.Split = true
		f.Partner = slot(st.Peek(1))
		first, second := slot(st.Peek(step)), slot(st.Peek(step+1))
		if first.OK {
			f.Preview = Preview{Slides: []Slot{first, second}}
		} else {
			f.Preview = Preview{End: true}
		}
	case nav.SlidingWindow:
		if set.AtomicLandscape && insp.Landscape(current) {
			f.Landscape = true
		} else {
			f.Split = true
			f.Partner = slot(st.Peek(1))
		}
		f.Preview = singlePreview(st, step)
	default:
		return Frame{}, &InvalidModeError{Layout: st.Layout}
	}
	f.Preview.Enabled = set.Preview

	notes, has, err := catalog.Notes(current, notesSuffix)
	if err != nil {
		log.Printf("WARN: notes for %s unreadable, showing none: %v", current, err)
		notes, has = "", false
	}
	f.Notes, f.HasNotes = notes, has
	return f, nil
}

func singlePreview(st *nav.State, step int) Preview {
	next := slot(st.Peek(step))
	if !next.OK {
		return Preview{End: true}
	}
	return Preview{Slides: []Slot{next}}
}
