package playback

import "github.com/san-kum/algoviz/internal/trace"

// Mode is the playback state.
type Mode int

const (
	Idle Mode = iota
	Playing
	Paused
	Finished
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Status is a consistent view of a controller at one instant.
type Status struct {
	Mode     Mode
	Position int
	Len      int
	Percent  int
	// Step is the step at Position, nil before the first step.
	Step *trace.Step
}

// Percent is round((position+1)/n*100), and 0 for an empty trace.
func Percent(position, n int) int {
	if n == 0 {
		return 0
	}
	return int(float64(position+1)/float64(n)*100 + 0.5)
}
