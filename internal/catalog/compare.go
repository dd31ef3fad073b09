package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Lexical orders paths byte-wise ascending.
func Lexical(a, b string) bool { return a < b }

// Natural orders paths byte-wise except that runs of digits compare by
// numeric value, so "slide2" sorts before "slide10".
func Natural(a, b string) bool {
	for a != "" && b != "" {
		if isDigit(a[0]) && isDigit(b[0]) {
			na, ra := splitDigits(a)
			nb, rb := splitDigits(b)
			if c := compareDigits(na, nb); c != 0 {
				return c < 0
			}
			a, b = ra, rb
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func splitDigits(s string) (string, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// compareDigits compares two digit runs numerically. Equal values with
// different zero padding fall back to the shorter run first.
func compareDigits(a, b string) int {
	ta := strings.TrimLeft(a, "0")
	tb := strings.TrimLeft(b, "0")
	if len(ta) != len(tb) {
		if len(ta) < len(tb) {
			return -1
		}
		return 1
	}
	if c := strings.Compare(ta, tb); c != 0 {
		return c
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// Collated orders paths by the collation rules of lang, with numeric
// ordering of digit runs. Ties fall back to Lexical so the order stays total.
func Collated(lang string) (func(a, b string) bool, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("collation language %q: %w", lang, err)
	}
	c := collate.New(tag, collate.Numeric)
	return func(a, b string) bool {
		if r := c.CompareString(a, b); r != 0 {
			return r < 0
		}
		return a < b
	}, nil
}

// Comparator resolves a sort name ("lexical", "natural", "collate").
func Comparator(name, lang string) (func(a, b string) bool, error) {
	switch strings.ToLower(name) {
	case "", "lexical":
		return Lexical, nil
	case "natural":
		return Natural, nil
	case "collate":
		return Collated(lang)
	default:
		return nil, fmt.Errorf("unknown sort %q", name)
	}
}
