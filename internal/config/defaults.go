package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default engine configuration.
// Physics constants are tuned for a 60 Hz host tick.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: FlappyPhysics{
			Gravity:       0.6,
			JumpImpulse:   -10,
			MaxVelocity:   10,
			RotationScale: 3,
			MinRotation:   -30,
			MaxRotation:   90,
		},
		Pipes: FlappyPipes{
			Speed:           2,
			Gap:             150,
			Width:           60,
			SpawnIntervalMs: 2000,
			MinHeight:       50,
			MaxOnScreen:     4,
			PoolSize:        10,
		},
		Bird: FlappyBird{
			X:    80,
			Size: 34,
		},
		Canvas: FlappyCanvas{
			Width:  400,
			Height: 600,
		},
	}
}
