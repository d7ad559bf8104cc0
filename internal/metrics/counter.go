package metrics

import "github.com/san-kum/algoviz/internal/trace"

// Counter counts the steps of one event kind.
type Counter struct {
	name  string
	event Event
	cls   Classifier
	count int
}

func NewComparisons() *Counter { return &Counter{name: "comparisons", event: EventCompare} }
func NewSwaps() *Counter       { return &Counter{name: "swaps", event: EventSwap} }
func NewWrites() *Counter      { return &Counter{name: "writes", event: EventWrite} }
func NewVisits() *Counter      { return &Counter{name: "visits", event: EventVisit} }

func (c *Counter) Name() string { return c.name }

func (c *Counter) Observe(step trace.Step) {
	if c.cls.Next(step) == c.event {
		c.count++
	}
}

func (c *Counter) Value() float64 { return float64(c.count) }

func (c *Counter) Reset() {
	c.cls.Reset()
	c.count = 0
}

// Steps counts every step, start and terminal included.
type Steps struct {
	count int
}

func NewSteps() *Steps { return &Steps{} }

func (s *Steps) Name() string       { return "steps" }
func (s *Steps) Observe(trace.Step) { s.count++ }
func (s *Steps) Value() float64     { return float64(s.count) }
func (s *Steps) Reset()             { s.count = 0 }
