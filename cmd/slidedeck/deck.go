package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"slidedeck/internal/catalog"
)

// deck describes where slides come from. dir is empty when the slides were
// named explicitly, in which case the deck cannot be watched.
type deck struct {
	dir    string
	source catalog.Source
}

// resolveDeck maps the command arguments onto a slide source: no argument
// means the current directory, one directory argument is listed, "-" reads
// paths from stdin one per line, and anything else is an explicit list.
func resolveDeck(args []string, stdin io.Reader) (deck, error) {
	switch {
	case len(args) == 0:
		return deck{dir: ".", source: catalog.Dir(".")}, nil
	case len(args) == 1 && args[0] == "-":
		paths, err := readLines(stdin)
		if err != nil {
			return deck{}, fmt.Errorf("read slide list: %w", err)
		}
		return deck{source: catalog.Paths(paths)}, nil
	case len(args) == 1:
		info, err := os.Stat(args[0])
		if err != nil {
			return deck{}, err
		}
		if info.IsDir() {
			return deck{dir: args[0], source: catalog.Dir(args[0])}, nil
		}
	}
	return deck{source: catalog.Paths(args)}, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

// deckTitle picks the status bar title: configured title, then the first
// line of a .title file in the deck directory, then the directory name.
func deckTitle(configured, dir string) string {
	if configured != "" {
		return configured
	}
	if dir == "" {
		return ""
	}
	if data, err := os.ReadFile(filepath.Join(dir, ".title")); err == nil {
		if title, _, _ := strings.Cut(strings.TrimSpace(string(data)), "\n"); title != "" {
			return strings.TrimSpace(title)
		}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return filepath.Base(dir)
	}
	return filepath.Base(abs)
}
