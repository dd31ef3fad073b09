package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"

	"slidedeck/internal/inspect"
)

// maxTextBytes caps how much of a plain-text slide is read.
const maxTextBytes = 256 << 10

// content turns slide files into terminal text. Rendered slides are cached
// per path and width until reset.
type content struct {
	style     string
	wordWrap  int
	images    *inspect.Images
	renderers map[int]*glamour.TermRenderer
	cache     map[cacheKey]string
}

type cacheKey struct {
	path  string
	width int
}

func newContent(style string, wordWrap int, images *inspect.Images) *content {
	return &content{
		style:     style,
		wordWrap:  wordWrap,
		images:    images,
		renderers: make(map[int]*glamour.TermRenderer),
		cache:     make(map[cacheKey]string),
	}
}

func (c *content) reset() {
	c.cache = make(map[cacheKey]string)
	c.images.Forget()
}

func (c *content) renderer(width int) (*glamour.TermRenderer, error) {
	wrap := width
	if c.wordWrap > 0 && c.wordWrap < wrap {
		wrap = c.wordWrap
	}
	if r, ok := c.renderers[wrap]; ok {
		return r, nil
	}
	styleOpt := glamour.WithAutoStyle()
	if c.style != "" && c.style != "auto" {
		styleOpt = glamour.WithStandardStyle(c.style)
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(wrap))
	if err != nil {
		return nil, err
	}
	c.renderers[wrap] = r
	return r, nil
}

// render returns the slide at path laid out for a pane of the given width.
func (c *content) render(path string, width int) string {
	key := cacheKey{path: path, width: width}
	if s, ok := c.cache[key]; ok {
		return s
	}
	s := c.load(path, width)
	c.cache[key] = s
	return s
}

func (c *content) load(path string, width int) string {
	name := filepath.Base(path)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return fmt.Sprintf("Error: %v", err)
		}
		return fmt.Sprintf("%s/\n\n%d entries", name, len(entries))
	}

	if inspect.IsImage(path) {
		dim, err := c.images.Dimensions(path)
		if err != nil {
			return fmt.Sprintf("[image] %s\n\nunreadable: %v", name, err)
		}
		orientation := "portrait"
		if dim.Landscape() {
			orientation = "landscape"
		}
		return fmt.Sprintf("[image] %s\n\n%s %s", name, dim, orientation)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxTextBytes))
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	if info.Size() > maxTextBytes {
		data = trimPartialRune(data)
	}
	if !utf8.Valid(data) {
		return fmt.Sprintf("[binary] %s\n\n%d bytes", name, info.Size())
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		r, err := c.renderer(width)
		if err != nil {
			return string(data)
		}
		rendered, err := r.Render(string(data))
		if err != nil {
			return "Error rendering markdown: " + err.Error()
		}
		return rendered
	}
	return string(data)
}

// trimPartialRune drops an incomplete UTF-8 sequence left at the end of a
// truncated read.
func trimPartialRune(data []byte) []byte {
	for i := 1; i <= utf8.UTFMax-1 && i <= len(data); i++ {
		c := data[len(data)-i]
		if utf8.RuneStart(c) {
			if !utf8.FullRune(data[len(data)-i:]) {
				return data[:len(data)-i]
			}
			break
		}
	}
	return data
}

// fit clips text to width x height, padding with blank lines so panes line
// up when joined.
func fit(text string, width, height int) string {
	if height <= 0 || width <= 0 {
		return ""
	}
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		line = strings.ReplaceAll(line, "\t", "    ")
		if ansi.StringWidth(line) > width {
			line = ansi.Truncate(line, width, "")
		}
		lines[i] = line
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
