// Package playback drives a trace as a finite-state machine over
// {Idle, Playing, Paused, Finished} with an autoplay timer.
//
// Every operation is synchronous and O(1). Invalid operations are rejected
// by returning false; they never panic and never change state. Autoplay
// ticks carry the epoch they were armed in and are ignored once a newer
// Play, Pause, Stop, Seek or Load has happened.
package playback

import (
	"sync"
	"time"

	"github.com/san-kum/algoviz/internal/trace"
)

const DefaultInterval = time.Second

type Controller struct {
	mu       sync.Mutex
	tr       *trace.Trace
	pos      int
	mode     Mode
	interval time.Duration
	sched    Scheduler
	cancel   func()
	epoch    uint64
	onChange func(Status)
}

// New returns an Idle controller with no trace. A nil scheduler selects
// TickerScheduler; a non-positive interval selects DefaultInterval.
func New(interval time.Duration, sched Scheduler) *Controller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if sched == nil {
		sched = TickerScheduler{}
	}
	return &Controller{pos: -1, mode: Idle, interval: interval, sched: sched}
}

// OnChange registers fn to be called after every state transition. fn runs
// without the controller lock held and may call back into the controller.
func (c *Controller) OnChange(fn func(Status)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// SetInterval changes the tick period used by the next Play.
func (c *Controller) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.interval = d
	c.mu.Unlock()
}

func (c *Controller) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// Load stops playback and replaces the trace in one critical section.
func (c *Controller) Load(tr *trace.Trace) {
	c.mu.Lock()
	c.stopLocked()
	c.tr = tr
	c.commit()
}

// Play starts autoplay from Idle, Paused or Finished; Finished restarts
// from the beginning. Playing again is a no-op.
func (c *Controller) Play() bool {
	c.mu.Lock()
	if c.mode == Playing || c.tr.Len() == 0 {
		c.mu.Unlock()
		return false
	}
	if c.mode == Finished {
		c.pos = -1
	}
	c.mode = Playing
	c.epoch++
	epoch := c.epoch
	c.cancel = c.sched.Every(c.interval, func() { c.tick(epoch) })
	c.commit()
	return true
}

func (c *Controller) Pause() bool {
	c.mu.Lock()
	if c.mode != Playing {
		c.mu.Unlock()
		return false
	}
	c.cancelLocked()
	c.mode = Paused
	c.commit()
	return true
}

// Stop cancels autoplay and rewinds to before the first step. It is valid
// in every mode.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.stopLocked()
	c.commit()
}

func (c *Controller) StepForward() bool {
	c.mu.Lock()
	if c.mode == Playing || c.pos >= c.tr.Len()-1 {
		c.mu.Unlock()
		return false
	}
	c.pos++
	c.mode = c.restingMode()
	c.commit()
	return true
}

func (c *Controller) StepBackward() bool {
	c.mu.Lock()
	if c.mode == Playing || c.pos <= -1 {
		c.mu.Unlock()
		return false
	}
	c.pos--
	c.mode = c.restingMode()
	c.commit()
	return true
}

// Seek clamps k to [-1, Len()-1] and jumps there, cancelling autoplay.
func (c *Controller) Seek(k int) {
	c.mu.Lock()
	c.cancelLocked()
	c.pos = min(max(k, -1), c.tr.Len()-1)
	c.mode = c.restingMode()
	c.commit()
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Controller) Position() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos
}

func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tr.Len()
}

func (c *Controller) Percent() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Percent(c.pos, c.tr.Len())
}

func (c *Controller) Trace() *trace.Trace {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tr
}

// CurrentStep returns the step at the playhead, or nil before the first
// step.
func (c *Controller) CurrentStep() *trace.Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked().Step
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

func (c *Controller) tick(epoch uint64) {
	c.mu.Lock()
	if epoch != c.epoch || c.mode != Playing {
		c.mu.Unlock()
		return
	}
	if c.pos+1 > c.tr.Len()-1 {
		c.cancelLocked()
		c.mode = Finished
	} else {
		c.pos++
	}
	c.commit()
}

func (c *Controller) restingMode() Mode {
	switch c.pos {
	case -1:
		return Idle
	case c.tr.Len() - 1:
		return Finished
	}
	return Paused
}

func (c *Controller) stopLocked() {
	c.cancelLocked()
	c.pos = -1
	c.mode = Idle
}

// cancelLocked disarms the timer and invalidates any tick already in
// flight.
func (c *Controller) cancelLocked() {
	c.epoch++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) statusLocked() Status {
	n := c.tr.Len()
	st := Status{Mode: c.mode, Position: c.pos, Len: n, Percent: Percent(c.pos, n)}
	if c.pos >= 0 {
		s := c.tr.At(c.pos)
		st.Step = &s
	}
	return st
}

// commit releases the lock taken by the caller and notifies the listener.
func (c *Controller) commit() {
	st := c.statusLocked()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn(st)
	}
}
