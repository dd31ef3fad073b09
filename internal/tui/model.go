// Package tui is the terminal front end: it renders presentation frames
// and routes keys and autoplay firings into the session.
package tui

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"slidedeck/internal/catalog"
	"slidedeck/internal/presentation"
)

// ReloadMsg asks the model to rebuild the catalog and restart the session.
type ReloadMsg struct{}

// Model is the bubbletea model driving one presentation session.
type Model struct {
	session *presentation.Session
	screen  *Screen
	reload  func() (catalog.SlideSet, error)

	keys      keyMap
	help      help.Model
	progress  progress.Model
	notes     viewport.Model
	input     textinput.Model
	width     int
	height    int
	showNotes bool
	message   string
	dirty     bool
}

// New wraps a started session. reload may be nil when the deck cannot be
// rebuilt (e.g. a list read from stdin).
func New(session *presentation.Session, screen *Screen, reload func() (catalog.SlideSet, error)) *Model {
	input := textinput.New()
	input.Prompt = "interval (seconds): "
	input.CharLimit = 16

	m := &Model{
		session:  session,
		screen:   screen,
		reload:   reload,
		keys:     newKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient()),
		notes:    viewport.New(0, 0),
		input:    input,
		dirty:    true,
	}
	session.OnRendered(func() { m.dirty = true })
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.sync()
}

// sync pushes a freshly rendered frame into the progress bar and notes view.
func (m *Model) sync() tea.Cmd {
	if !m.dirty {
		return nil
	}
	m.dirty = false
	f := m.screen.frame
	m.notes.SetContent(f.Notes)
	m.notes.GotoTop()
	if f.Count == 0 {
		return nil
	}
	return m.progress.SetPercent(float64(f.Index+1) / float64(f.Count))
}

func (m *Model) report(err error) {
	if err == nil {
		return
	}
	m.message = "Error: " + err.Error()
	log.Printf("ERROR: %v", err)
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	if err := m.session.Close(); err != nil {
		log.Printf("ERROR: close session: %v", err)
	}
	return m, tea.Quit
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 4 // Leave some margin
		m.help.Width = msg.Width
		m.notes.Width = msg.Width
		return m, nil

	case runMsg:
		msg()
		return m, m.sync()

	case ReloadMsg:
		if m.reload == nil {
			return m, nil
		}
		slides, err := m.reload()
		if err != nil {
			log.Printf("WARN: deck reload skipped: %v", err)
			m.message = "Reload skipped: " + err.Error()
			return m, nil
		}
		m.screen.content.reset()
		m.report(m.session.Restart(slides))
		return m, m.sync()

	// FrameMsg is sent when the progress bar wants to animate itself
	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case tea.KeyMsg:
		if m.session.Prompting() {
			return m.updatePrompt(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	s := m.session
	var err error

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Next):
		_, err = s.Next()
	case key.Matches(msg, m.keys.Prev):
		_, err = s.Prev()
	case key.Matches(msg, m.keys.First):
		_, err = s.First()
	case key.Matches(msg, m.keys.Last):
		_, err = s.Last()
	case key.Matches(msg, m.keys.Wrap):
		err = s.SetWrap(!s.Settings().Wrap)
	case key.Matches(msg, m.keys.Layout):
		err = s.CycleLayout()
	case key.Matches(msg, m.keys.Preview):
		err = s.SetPreview(!s.Settings().Preview)
	case key.Matches(msg, m.keys.Landscape):
		err = s.SetAtomicLandscape(!s.Settings().AtomicLandscape)
	case key.Matches(msg, m.keys.Autoplay):
		_, err = s.ToggleAutoplay()
	case key.Matches(msg, m.keys.Direction):
		err = s.ToggleDirection()
	case key.Matches(msg, m.keys.Interval):
		s.BeginPrompt()
		m.input.SetValue(strconv.FormatFloat(s.Settings().Interval.Seconds(), 'g', -1, 64))
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Notes):
		m.showNotes = !m.showNotes
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		if m.showNotes {
			var cmd tea.Cmd
			m.notes, cmd = m.notes.Update(msg)
			return m, cmd
		}
	}
	m.report(err)
	return m, m.sync()
}

// updatePrompt handles keys while the interval prompt is open. The session
// drops autoplay firings for as long as the prompt stays open.
func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m.quit()
	case tea.KeyEsc:
		m.closePrompt()
		return m, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		m.closePrompt()
		seconds, err := strconv.ParseFloat(value, 64)
		if err != nil {
			m.report(fmt.Errorf("interval %q is not a number", value))
			return m, nil
		}
		m.report(m.session.SetInterval(seconds))
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.input.Blur()
	m.session.EndPrompt()
}

func (m *Model) View() string {
	if m.session.Closed() {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading slides...\n\nPress 'q' to quit."
	}

	// bottom: control panel or prompt, status line, progress bar
	var bottom []string
	if m.session.Prompting() {
		bottom = append(bottom, m.input.View())
	} else {
		bottom = append(bottom, m.screen.panel(m.width))
	}
	bottom = append(bottom, m.screen.statusLine(m.width, m.message), m.progress.View())

	var extras []string
	if m.help.ShowAll {
		extras = append(extras, m.help.View(m.keys))
	}

	reserved := len(bottom)
	for _, e := range extras {
		reserved += lipgloss.Height(e)
	}
	avail := m.height - reserved

	var sections []string
	notesHeight, previewHeight := 0, 0
	if m.showNotes {
		notesHeight = clampSection(avail / 4)
	}
	if m.screen.frame.Preview.Enabled {
		previewHeight = clampSection(avail / 3)
	}
	bodyHeight := avail - notesHeight - previewHeight
	if bodyHeight < 1 {
		bodyHeight, notesHeight, previewHeight = avail, 0, 0
	}

	sections = append(sections, m.screen.body(m.width, bodyHeight))
	if previewHeight > 0 {
		sections = append(sections, m.screen.preview(m.width, previewHeight))
	}
	if notesHeight > 0 {
		sections = append(sections, m.notesView(notesHeight))
	}
	sections = append(sections, extras...)
	sections = append(sections, bottom...)
	return strings.Join(sections, "\n")
}

func clampSection(h int) int {
	if h < 3 {
		return 3
	}
	return h
}

func (m *Model) notesView(height int) string {
	header := headerStyle.Render("Notes")
	if !m.screen.frame.HasNotes {
		return header + "\n" + fit(endStyle.Render("no notes for this slide"), m.width, height-1)
	}
	m.notes.Height = height - 1
	return header + "\n" + m.notes.View()
}
