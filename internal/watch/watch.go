// Package watch notices changes to a deck directory.
package watch

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"slidedeck/internal/logging"
)

// DefaultDebounce is the quiet period before a burst of events is reported.
const DefaultDebounce = 300 * time.Millisecond

// DeckWatcher calls onChange after the watched directory settles.
type DeckWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	done     chan struct{}
	debounce time.Duration
	onChange func()
	timer    *time.Timer
}

// New starts watching dir. onChange runs on a timer goroutine; callers
// that own single-threaded state must hand it off themselves.
func New(dir string, debounce time.Duration, onChange func()) (*DeckWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	dw := &DeckWatcher{
		watcher:  w,
		done:     make(chan struct{}),
		debounce: debounce,
		onChange: onChange,
	}
	log.Printf("INFO: Watching %s for deck changes", dir)

	go dw.loop(w)
	return dw, nil
}

func (dw *DeckWatcher) loop(w *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			logging.Debug("deck change: %s %s", event.Op, filepath.Base(event.Name))
			dw.kick()

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("ERROR: Deck watcher error: %v", err)

		case <-dw.done:
			return
		}
	}
}

func (dw *DeckWatcher) kick() {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	select {
	case <-dw.done:
		return
	default:
	}
	if dw.timer != nil {
		dw.timer.Stop()
	}
	dw.timer = time.AfterFunc(dw.debounce, func() {
		select {
		case <-dw.done:
		default:
			dw.onChange()
		}
	})
}

// Stop ends the watch. Pending notifications are dropped.
func (dw *DeckWatcher) Stop() {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	if dw.watcher == nil {
		return
	}
	close(dw.done)
	if dw.timer != nil {
		dw.timer.Stop()
	}
	dw.watcher.Close()
	dw.watcher = nil
	log.Printf("INFO: Deck watcher stopped")
}
