package autoplay

import "sync"

// Executor runs functions on the single thread that owns presentation
// state. Post must be safe to call from any goroutine.
type Executor interface {
	Post(fn func())
}

// Inline runs posted functions immediately on the caller's goroutine. It
// is only safe when the clock also fires on the owning goroutine, as
// ManualClock does.
type Inline struct{}

func (Inline) Post(fn func()) { fn() }

// Loop is a standalone serial executor for embedding the scheduler in a
// host that has no event loop of its own, such as a daemon or a test
// harness with a real clock. Pass it as Config.Executor and route every
// other call on the owning state through Do or Post so it runs on the
// loop goroutine.
type Loop struct {
	queue chan func()
	done  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
}

// NewLoop starts the loop goroutine. Close stops it.
func NewLoop() *Loop {
	l := &Loop{
		queue: make(chan func(), 16),
		done:  make(chan struct{}),
	}
	l.wg.Add(1)
	go l.run()
	return l
}

func (l *Loop) run() {
	defer l.wg.Done()
	for {
		select {
		case fn := <-l.queue:
			fn()
		case <-l.done:
			return
		}
	}
}

// Post queues fn. After Close it is dropped.
func (l *Loop) Post(fn func()) {
	select {
	case l.queue <- fn:
	case <-l.done:
	}
}

// Do runs fn on the loop and waits for it. It returns false if the loop
// was closed before fn ran.
func (l *Loop) Do(fn func()) bool {
	ran := make(chan struct{})
	l.Post(func() {
		fn()
		close(ran)
	})
	select {
	case <-ran:
		return true
	case <-l.done:
		return false
	}
}

// Close stops the loop and waits for the function in flight, if any.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
	l.wg.Wait()
}
