package catalog

// SlideSet is an ordered, immutable list of slide paths.
type SlideSet struct {
	paths []string
}

// NewSlideSet wraps paths as-is, without filtering or sorting.
func NewSlideSet(paths ...string) SlideSet {
	p := make([]string, len(paths))
	copy(p, paths)
	return SlideSet{paths: p}
}

func (s SlideSet) Len() int { return len(s.paths) }

// At returns the path at index i. It panics if i is out of range.
func (s SlideSet) At(i int) string { return s.paths[i] }

// Paths returns a copy of the ordered paths.
func (s SlideSet) Paths() []string {
	out := make([]string, len(s.paths))
	copy(out, s.paths)
	return out
}

// Index returns the position of path, or false if it is not in the set.
func (s SlideSet) Index(path string) (int, bool) {
	for i, p := range s.paths {
		if p == path {
			return i, true
		}
	}
	return 0, false
}
