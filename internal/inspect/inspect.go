// Package inspect classifies slide content without rendering it.
package inspect

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// IsImage reports whether path has a known image extension.
func IsImage(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

// Dimensions holds the pixel size of an image slide.
type Dimensions struct {
	Width, Height int
}

func (d Dimensions) Landscape() bool { return d.Width > d.Height }

func (d Dimensions) String() string { return fmt.Sprintf("%dx%d", d.Width, d.Height) }

// Images decodes image headers and caches the result per path.
type Images struct {
	mu    sync.Mutex
	cache map[string]cached
}

type cached struct {
	dim Dimensions
	err error
}

func NewImages() *Images {
	return &Images{cache: make(map[string]cached)}
}

// Dimensions reads the image header of path.
func (i *Images) Dimensions(path string) (Dimensions, error) {
	i.mu.Lock()
	if c, ok := i.cache[path]; ok {
		i.mu.Unlock()
		return c.dim, c.err
	}
	i.mu.Unlock()

	dim, err := decode(path)

	i.mu.Lock()
	i.cache[path] = cached{dim: dim, err: err}
	i.mu.Unlock()
	return dim, err
}

// Landscape reports whether path is an image wider than it is tall.
// Non-image files and unreadable images are never landscape.
func (i *Images) Landscape(path string) bool {
	if !IsImage(path) {
		return false
	}
	dim, err := i.Dimensions(path)
	if err != nil {
		return false
	}
	return dim.Landscape()
}

// Forget drops cached results, e.g. after the deck changed on disk.
func (i *Images) Forget() {
	i.mu.Lock()
	i.cache = make(map[string]cached)
	i.mu.Unlock()
}

func decode(path string) (Dimensions, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dimensions{}, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Dimensions{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}
