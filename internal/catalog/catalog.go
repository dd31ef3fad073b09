// Package catalog builds the ordered list of slide paths for a deck.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// ErrEmptyCatalog is returned when filtering leaves no slides.
var ErrEmptyCatalog = errors.New("no slides found")

// DefaultIgnore matches dotfiles.
var DefaultIgnore = regexp.MustCompile(`^\.`)

// DefaultNotesSuffix is appended to a slide path to locate its speaker notes.
const DefaultNotesSuffix = ".notes"

// Kind records whether an entry is a directory, when that is known.
type Kind int

const (
	KindUnknown Kind = iota
	KindFile
	KindDir
)

// Entry is one candidate slide from a source.
type Entry struct {
	Path string
	Kind Kind
}

// Source yields candidate entries.
type Source interface {
	Entries() ([]Entry, error)
}

// Dir scans the immediate children of a directory.
type Dir string

func (d Dir) Entries() ([]Entry, error) {
	items, err := os.ReadDir(string(d))
	if err != nil {
		return nil, fmt.Errorf("read deck dir: %w", err)
	}
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		kind := KindFile
		if item.IsDir() {
			kind = KindDir
		} else if item.Type()&os.ModeSymlink != 0 {
			// follow links so a linked directory is still treated as one
			if info, err := os.Stat(filepath.Join(string(d), item.Name())); err == nil && info.IsDir() {
				kind = KindDir
			}
		}
		entries = append(entries, Entry{Path: filepath.Join(string(d), item.Name()), Kind: kind})
	}
	return entries, nil
}

// List is a pre-enumerated set of entries, such as a filtered view the
// caller already narrowed. The directory filter only applies to entries
// whose Kind is known.
type List []Entry

func (l List) Entries() ([]Entry, error) {
	out := make([]Entry, len(l))
	copy(out, l)
	return out, nil
}

// Paths wraps plain path strings as a List. Each path is stat'ed so the
// directory filter can apply; paths that cannot be stat'ed keep KindUnknown.
func Paths(paths []string) List {
	l := make(List, 0, len(paths))
	for _, p := range paths {
		kind := KindUnknown
		if info, err := os.Stat(p); err == nil {
			kind = KindFile
			if info.IsDir() {
				kind = KindDir
			}
		}
		l = append(l, Entry{Path: p, Kind: kind})
	}
	return l
}

// Options control filtering and ordering.
type Options struct {
	// IgnorePattern is matched against base names. Nil disables it.
	IgnorePattern      *regexp.Regexp
	IncludeDirectories bool
	// NotesSuffix marks speaker-notes files, which are never slides.
	NotesSuffix string
	// Less orders slide paths. Nil means Lexical.
	Less func(a, b string) bool
}

// DefaultOptions returns the stock filter settings.
func DefaultOptions() Options {
	return Options{
		IgnorePattern: DefaultIgnore,
		NotesSuffix:   DefaultNotesSuffix,
		Less:          Lexical,
	}
}

// Build filters and sorts the entries of src into a SlideSet.
func Build(src Source, opts Options) (SlideSet, error) {
	entries, err := src.Entries()
	if err != nil {
		return SlideSet{}, err
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Kind == KindDir && !opts.IncludeDirectories {
			continue
		}
		if opts.NotesSuffix != "" && strings.HasSuffix(e.Path, opts.NotesSuffix) {
			continue
		}
		if opts.IgnorePattern != nil && opts.IgnorePattern.MatchString(filepath.Base(e.Path)) {
			continue
		}
		paths = append(paths, e.Path)
	}

	if len(paths) == 0 {
		return SlideSet{}, ErrEmptyCatalog
	}

	less := opts.Less
	if less == nil {
		less = Lexical
	}
	sort.SliceStable(paths, func(i, j int) bool { return less(paths[i], paths[j]) })

	return SlideSet{paths: paths}, nil
}
