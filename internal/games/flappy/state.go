package flappy

import "time"

// Status is the engine's state-machine variable.
type Status int

const (
	StatusIdle Status = iota
	StatusPlaying
	StatusPaused
	StatusGameOver
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// Bird is the controllable body. X is a fixed column; Y grows downward.
type Bird struct {
	X        float64
	Y        float64
	Velocity float64 // Positive is downward
	Rotation float64 // Degrees, cosmetic only
}

// Pipe is a vertical obstacle with a gap centred on GapY.
type Pipe struct {
	ID     uint64  // Stable across the pipe's lifetime, reused with the record
	X      float64 // Left edge
	GapY   float64 // Gap centre, fixed at spawn
	Passed bool    // Set once the scoring line is crossed
}

// State is the full session snapshot.
type State struct {
	Bird       Bird
	Pipes      []*Pipe // Spawn order, oldest first
	Score      int
	HighScore  int
	Status     Status
	LastUpdate time.Time
}
