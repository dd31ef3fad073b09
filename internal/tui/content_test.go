package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slidedeck/internal/inspect"
)

func TestLoadLongTextCutInsideRune(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "big.txt")
	// the limit falls between the two bytes of "é"
	body := strings.Repeat("a", maxTextBytes-1) + "é"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	c := newContent("notty", 80, inspect.NewImages())
	got := c.load(p, 80)
	if strings.HasPrefix(got, "[binary]") {
		t.Fatalf("long text slide classified as binary")
	}
	if len(got) != maxTextBytes-1 {
		t.Errorf("len = %d, want %d", len(got), maxTextBytes-1)
	}
}

func TestLoadBinary(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "blob.bin")
	if err := os.WriteFile(p, []byte{0xff, 0xfe, 0x00, 0x81}, 0o644); err != nil {
		t.Fatal(err)
	}
	c := newContent("notty", 80, inspect.NewImages())
	if got := c.load(p, 80); !strings.HasPrefix(got, "[binary] blob.bin") {
		t.Errorf("load = %q", got)
	}
}

func TestTrimPartialRune(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc", "abc"},
		{"ab\xc3", "ab"},
		{"ab\xe2\x82", "ab"},
		{"ab€", "ab€"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := string(trimPartialRune([]byte(tt.in))); got != tt.want {
			t.Errorf("trimPartialRune(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
