package catalog

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeDeck(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(name), 0o644))
	}
	return dir
}

func basenames(s SlideSet) []string {
	out := make([]string, 0, s.Len())
	for _, p := range s.Paths() {
		out = append(out, filepath.Base(p))
	}
	return out
}

func TestBuildDirDefaults(t *testing.T) {
	dir := writeDeck(t, "02-body.md", "01-intro.md", ".hidden.md", "01-intro.md.notes", "03-end.png")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "assets"), 0o755))

	set, err := Build(Dir(dir), DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, []string{"01-intro.md", "02-body.md", "03-end.png"}, basenames(set))
	require.Equal(t, filepath.Join(dir, "01-intro.md"), set.At(0))
}

func TestBuildIncludeDirectories(t *testing.T) {
	dir := writeDeck(t, "b.md")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a-dir"), 0o755))

	opts := DefaultOptions()
	opts.IncludeDirectories = true
	set, err := Build(Dir(dir), opts)
	require.NoError(t, err)
	require.Equal(t, []string{"a-dir", "b.md"}, basenames(set))
}

func TestBuildNotesNeverSlides(t *testing.T) {
	dir := writeDeck(t, "x.md", "x.md.notes", "orphan.notes")
	opts := DefaultOptions()
	opts.IgnorePattern = nil
	set, err := Build(Dir(dir), opts)
	require.NoError(t, err)
	require.Equal(t, []string{"x.md"}, basenames(set))
}

func TestBuildEmpty(t *testing.T) {
	dir := writeDeck(t, ".a", ".b", "c.notes")
	_, err := Build(Dir(dir), DefaultOptions())
	require.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = Build(List(nil), DefaultOptions())
	require.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestBuildMissingDir(t *testing.T) {
	_, err := Build(Dir(filepath.Join(t.TempDir(), "nope")), DefaultOptions())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrEmptyCatalog)
}

func TestBuildListSkipsScan(t *testing.T) {
	list := List{
		{Path: "/deck/c.md"},
		{Path: "/deck/a.md"},
		{Path: "/deck/a.md.notes"},
		{Path: "/deck/.git"},
		{Path: "/deck/sub", Kind: KindDir},
		{Path: "/deck/maybe-dir"},
	}
	set, err := Build(list, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, []string{"/deck/a.md", "/deck/c.md", "/deck/maybe-dir"}, set.Paths())
}

func TestBuildCustomIgnoreAndOrder(t *testing.T) {
	dir := writeDeck(t, "slide10.md", "slide2.md", "slide1.md", "draft-slide3.md")
	opts := DefaultOptions()
	opts.IgnorePattern = regexp.MustCompile(`^draft-`)
	opts.Less = Natural
	set, err := Build(Dir(dir), opts)
	require.NoError(t, err)
	require.Equal(t, []string{"slide1.md", "slide2.md", "slide10.md"}, basenames(set))
}

func TestPathsStatsEntries(t *testing.T) {
	dir := writeDeck(t, "a.md")
	missing := filepath.Join(dir, "gone.md")
	l := Paths([]string{filepath.Join(dir, "a.md"), dir, missing})
	require.Equal(t, KindFile, l[0].Kind)
	require.Equal(t, KindDir, l[1].Kind)
	require.Equal(t, KindUnknown, l[2].Kind)

	set, err := Build(l, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())
}

func TestSlideSetIndexAndCopy(t *testing.T) {
	set := NewSlideSet("a", "b", "c")
	i, ok := set.Index("c")
	require.True(t, ok)
	require.Equal(t, 2, i)
	_, ok = set.Index("z")
	require.False(t, ok)

	p := set.Paths()
	p[0] = "mutated"
	require.Equal(t, "a", set.At(0))
}

func TestNotes(t *testing.T) {
	dir := writeDeck(t, "a.md")
	slide := filepath.Join(dir, "a.md")

	text, ok, err := Notes(slide, ".notes")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, text)

	require.NoError(t, os.WriteFile(slide+".notes", []byte("say hello"), 0o644))
	text, ok, err = Notes(slide, ".notes")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "say hello", text)

	_, ok, err = Notes(slide, "")
	require.NoError(t, err)
	require.False(t, ok)
}
