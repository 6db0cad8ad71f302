package core

// RuntimeConfig holds host-side settings that are not part of the simulation
// tuning: how often the host ticks and which seed drives the pipe heights.
type RuntimeConfig struct {
	TickRate int    // Simulation ticks per second (default 60)
	Seed     int64  // RNG seed for deterministic gameplay
	Player   string // Name recorded with finished rounds
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		Player:   "local",
	}
}

// TickMillis returns the nominal tick length in milliseconds.
func (c RuntimeConfig) TickMillis() float64 {
	if c.TickRate <= 0 {
		return 1000.0 / 60
	}
	return 1000.0 / float64(c.TickRate)
}
