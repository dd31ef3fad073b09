package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"slidedeck/internal/inspect"
	"slidedeck/internal/nav"
	"slidedeck/internal/presentation"
)

var errReleased = errors.New("screen released")

var (
	paneStyle     = lipgloss.NewStyle().Padding(0, 1)
	dividerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Bold(true)
	endStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	panelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1)
	panelOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Background(lipgloss.Color("236"))
	panelOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Background(lipgloss.Color("236"))
)

// ScreenOptions configure slide rendering.
type ScreenOptions struct {
	Title    string
	Style    string
	WordWrap int
	Images   *inspect.Images
}

// Screen is the terminal renderer and control panel for a session. It
// records what the session asks for; the bubbletea model draws it.
type Screen struct {
	title    string
	content  *content
	frame    presentation.Frame
	status   presentation.Status
	shown    int
	released bool
}

func NewScreen(opts ScreenOptions) *Screen {
	images := opts.Images
	if images == nil {
		images = inspect.NewImages()
	}
	return &Screen{
		title:   opts.Title,
		content: newContent(opts.Style, opts.WordWrap, images),
	}
}

// Images is the dimension cache shared with the session's inspector.
func (s *Screen) Images() *inspect.Images { return s.content.images }

// Show implements presentation.Renderer.
func (s *Screen) Show(f presentation.Frame) error {
	if s.released {
		return errReleased
	}
	s.frame = f
	s.shown++
	return nil
}

// Release implements presentation.Renderer.
func (s *Screen) Release() error {
	if s.released {
		return errReleased
	}
	s.released = true
	s.content.reset()
	return nil
}

// Refresh implements presentation.ControlPanel.
func (s *Screen) Refresh(st presentation.Status) {
	s.status = st
}

// body draws the current slide, and its partner for split layouts.
func (s *Screen) body(width, height int) string {
	f := s.frame
	switch f.Layout {
	case nav.Single, nav.ChunkTwo, nav.SlidingWindow:
	default:
		return fit(fmt.Sprintf("Error: %v", &presentation.InvalidModeError{Layout: f.Layout}), width, height)
	}
	if !f.Split {
		return s.pane(f.Slide, true, width, height)
	}
	left := (width - 1) / 2
	right := width - 1 - left
	divider := dividerStyle.Render(strings.TrimRight(strings.Repeat("│\n", height), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.pane(f.Slide, true, left, height),
		divider,
		s.pane(f.Partner.Path, f.Partner.OK, right, height),
	)
}

func (s *Screen) pane(path string, ok bool, width, height int) string {
	inner := width - 2
	if !ok || inner <= 0 {
		return lipgloss.NewStyle().Width(width).Render(fit("", width, height))
	}
	return paneStyle.Width(width).Render(fit(s.content.render(path, inner), inner, height))
}

// preview draws the look-ahead strip, or the end-of-show marker.
func (s *Screen) preview(width, height int) string {
	p := s.frame.Preview
	header := headerStyle.Render("Next")
	rows := height - 1
	if rows <= 0 {
		return header
	}
	if p.End || len(p.Slides) == 0 {
		marker := lipgloss.PlaceHorizontal(width, lipgloss.Center, endStyle.Render("— end of show —"))
		return header + "\n" + fit(marker, width, rows)
	}
	n := len(p.Slides)
	panes := make([]string, 0, n)
	used := 0
	for i, slot := range p.Slides {
		w := width / n
		if i == n-1 {
			w = width - used
		}
		used += w
		panes = append(panes, s.pane(slot.Path, slot.OK, w, rows))
	}
	return header + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, panes...)
}

func onOff(on bool, label string) string {
	if on {
		return panelOnStyle.Render(label + " on")
	}
	return panelOffStyle.Render(label + " off")
}

// panel is the one-line control panel reflecting session settings.
func (s *Screen) panel(width int) string {
	st := s.status
	set := st.Settings
	sep := panelOffStyle.Render(" │ ")

	play := panelOffStyle.Render("autoplay ■")
	if st.Autoplay {
		play = panelOnStyle.Render("autoplay ▶")
	}
	dir := "fwd"
	if set.Reverse {
		dir = "rev"
	}
	auto := play + panelOffStyle.Render(fmt.Sprintf(" %gs %s", set.Interval.Seconds(), dir))

	parts := []string{
		panelOnStyle.Render("layout " + set.Layout.String()),
		onOff(set.Wrap, "wrap"),
		onOff(set.Preview, "preview"),
		auto,
		onOff(set.AtomicLandscape, "atomic"),
	}
	if s.frame.HasNotes {
		parts = append(parts, panelOnStyle.Render("notes"))
	}
	return panelStyle.Width(width).MaxWidth(width).MaxHeight(1).Render(strings.Join(parts, sep))
}

// statusLine is the bottom bar: position on the left, title on the right.
func (s *Screen) statusLine(width int, message string) string {
	f := s.frame
	left := fmt.Sprintf("Slide %d/%d", f.Index+1, f.Count)
	if f.Layout == nav.ChunkTwo && f.Partner.OK && f.Index+1 < f.Count {
		left = fmt.Sprintf("Slides %d-%d/%d", f.Index+1, f.Index+2, f.Count)
	}
	if message != "" {
		left = message
	}

	right := s.title
	if right == "" {
		right = "Slidedeck"
	}

	statusStyle := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("240")).
		Foreground(lipgloss.Color("15")).
		Padding(0, 1)

	available := width - 4
	leftWidth := runewidth.StringWidth(left)
	if leftWidth+runewidth.StringWidth(right) > available {
		maxTitle := available - leftWidth - 4
		if maxTitle < 10 {
			right = ""
			left = runewidth.Truncate(left, available, "...")
		} else {
			right = runewidth.Truncate(right, maxTitle, "...")
		}
	}

	gap := available - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	var line string
	if gap > 0 {
		line = left + strings.Repeat(" ", gap+2) + right
	} else {
		line = left + " " + right
	}
	return statusStyle.Render(line)
}
