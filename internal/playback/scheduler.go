package playback

import (
	"sync"
	"time"
)

// Scheduler arms a repeating callback. The returned cancel func must be safe
// to call more than once and must not block on an in-flight callback.
type Scheduler interface {
	Every(d time.Duration, fn func()) (cancel func())
}

// TickerScheduler runs each timer on its own goroutine driven by a
// time.Ticker.
type TickerScheduler struct{}

func (TickerScheduler) Every(d time.Duration, fn func()) func() {
	t := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-t.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.Stop()
			close(done)
		})
	}
}

// ManualScheduler fires timers only when told to. Headless drivers and tests
// use it to step autoplay deterministically.
type ManualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	fn        func()
	cancelled bool
}

func (m *ManualScheduler) Every(_ time.Duration, fn func()) func() {
	t := &manualTimer{fn: fn}
	m.mu.Lock()
	m.timers = append(m.timers, t)
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		t.cancelled = true
		m.mu.Unlock()
	}
}

// Tick fires every live timer once.
func (m *ManualScheduler) Tick() {
	for _, fn := range m.collect(false) {
		fn()
	}
}

// FireStale fires every timer that has been cancelled, as if its tick had
// already been in flight when it was cancelled.
func (m *ManualScheduler) FireStale() {
	for _, fn := range m.collect(true) {
		fn()
	}
}

// Active returns the number of live timers.
func (m *ManualScheduler) Active() int {
	return len(m.collect(false))
}

func (m *ManualScheduler) collect(cancelled bool) []func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	var fns []func()
	for _, t := range m.timers {
		if t.cancelled == cancelled {
			fns = append(fns, t.fn)
		}
	}
	return fns
}
