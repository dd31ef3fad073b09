package watch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncedChange(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	fired := make(chan struct{}, 4)

	w, err := New(dir, 150*time.Millisecond, func() {
		calls.Add(1)
		fired <- struct{}{}
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Stop()

	for i := 0; i < 5; i++ {
		name := filepath.Join(dir, "slide.md")
		if err := os.WriteFile(name, []byte{byte('a' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
	time.Sleep(400 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, 10*time.Millisecond, func() { t.Error("called after stop") })
	if err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()
	if err := os.WriteFile(filepath.Join(dir, "x.md"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)
}

func TestMissingDir(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing"), 0, func() {}); err == nil {
		t.Error("expected error for missing directory")
	}
}
