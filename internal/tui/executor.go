package tui

import (
	"log"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// runMsg carries a function onto the bubbletea event loop.
type runMsg func()

// Executor hands autoplay firings to the program's Update loop so they run
// on the same goroutine as key handling.
type Executor struct {
	program atomic.Pointer[tea.Program]
}

// Attach must be called before the program starts.
func (e *Executor) Attach(p *tea.Program) {
	e.program.Store(p)
}

func (e *Executor) Post(fn func()) {
	p := e.program.Load()
	if p == nil {
		log.Printf("WARN: dropping posted call, no program attached")
		return
	}
	p.Send(runMsg(fn))
}
